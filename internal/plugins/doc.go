// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plugins provides the built-in slash commands.
//
// # Commands
//
//   - CommandList: the internal "_commands" pseudo-command that lists and
//     filters registered commands when the typed name matches nothing
//   - Giphy: GIF search backed by the Giphy API (grid view, cached)
//   - Emoji: static emoji table (list view, no network)
//   - Linker: formats a pasted URL into markdown variants (no network)
//   - Checks: CI workflow artifact search backed by the GitHub API
//
// # Usage
//
// Register the built-ins against a command registry:
//
//	reg := command.NewRegistry()
//	reloaders := plugins.RegisterBuiltins(reg, cfg, store)
//
// The returned reloaders should be handed to the config watcher so new
// API keys take effect without restarting.
package plugins
