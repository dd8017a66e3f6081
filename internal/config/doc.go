// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for slashdeck.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, validation, and live reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - PickerConfig: Debounce timing and result layout
//   - GiphyConfig / GitHubConfig: Provider credentials
//   - Watcher: fsnotify-based hot reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SLASHDECK_*)
//   - ~/.slashdeck/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	delay := time.Duration(cfg.Picker.SearchDebounceMS) * time.Millisecond
//	key := cfg.Giphy.APIKey
package config
