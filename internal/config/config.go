// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for slashdeck.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.slashdeck/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete slashdeck configuration.
type Config struct {
	// Picker configuration
	Picker PickerConfig `toml:"picker"`

	// Giphy provider configuration
	Giphy GiphyConfig `toml:"giphy"`

	// GitHub provider configuration
	GitHub GitHubConfig `toml:"github"`

	// Cache configuration
	Cache CacheConfig `toml:"cache"`

	// Log configuration
	Log LogConfig `toml:"log"`
}

// PickerConfig contains picker behavior configuration.
type PickerConfig struct {
	// SearchDebounceMS is the delay in milliseconds before a typed query
	// is sent to a command's search hook.
	SearchDebounceMS int `toml:"search_debounce_ms"`
	// SuggestDebounceMS is the delay in milliseconds before a typed query
	// is sent to a command's suggestion hook.
	SuggestDebounceMS int `toml:"suggest_debounce_ms"`
	// GridColumns is the number of columns used for grid-mode results.
	GridColumns int `toml:"grid_columns"`
	// MaxItems caps how many results are shown per query.
	MaxItems int `toml:"max_items"`
}

// GiphyConfig contains Giphy API configuration.
type GiphyConfig struct {
	// APIKey is the Giphy API key. Empty means the gif command shows setup.
	APIKey string `toml:"api_key"`
	// Rating is the maximum content rating for results: "g", "pg", "pg-13", "r"
	Rating string `toml:"rating"`
}

// GitHubConfig contains GitHub API configuration.
type GitHubConfig struct {
	// Token is the GitHub API token. Empty means the checks command shows setup.
	Token string `toml:"token"`
	// APIURL is the GitHub API base URL (override for GitHub Enterprise).
	APIURL string `toml:"api_url"`
	// Repository is the default "owner/repo" the checks command queries.
	Repository string `toml:"repository"`
}

// CacheConfig contains result cache configuration.
type CacheConfig struct {
	// Enabled controls whether result caching is active
	Enabled bool `toml:"enabled"`
	// Path is the cache database path (empty = default ~/.slashdeck/cache.db)
	Path string `toml:"path"`
	// TTLHours is the time-to-live for cache entries in hours
	TTLHours int `toml:"ttl_hours"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `toml:"level"`
	// Path is the log file path (empty = stderr)
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Picker: PickerConfig{
			SearchDebounceMS:  260,
			SuggestDebounceMS: 180,
			GridColumns:       3,
			MaxItems:          24,
		},

		Giphy: GiphyConfig{
			APIKey: "",
			Rating: "g",
		},

		GitHub: GitHubConfig{
			Token:  "",
			APIURL: "https://api.github.com",
		},

		Cache: CacheConfig{
			Enabled:  true,
			TTLHours: 24,
		},

		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the slashdeck configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".slashdeck"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CachePath returns the cache database path for the given config.
func CachePath(cfg *Config) (string, error) {
	if cfg != nil && cfg.Cache.Path != "" {
		return cfg.Cache.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// Config files should be 0600 (owner read/write only) to protect API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := decodeTOML(cfg, path); err != nil {
				loadErr = fmt.Errorf("failed to load config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				cfg.SetDefaults()
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("invalid config: %w", err)
				}
				return cfg, nil
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := decodeTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// decodeTOML loads configuration from a TOML file.
// Checks and fixes file permissions on load.
func decodeTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# slashdeck configuration file")
	fmt.Fprintln(file, "# Generated by slashdeck - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Picker.SearchDebounceMS < 0 || c.Picker.SearchDebounceMS > 5000 {
		errs = append(errs, ValidationError{
			Field:   "picker.search_debounce_ms",
			Message: fmt.Sprintf("must be 0-5000, got %d", c.Picker.SearchDebounceMS),
		})
	}
	if c.Picker.SuggestDebounceMS < 0 || c.Picker.SuggestDebounceMS > 5000 {
		errs = append(errs, ValidationError{
			Field:   "picker.suggest_debounce_ms",
			Message: fmt.Sprintf("must be 0-5000, got %d", c.Picker.SuggestDebounceMS),
		})
	}
	if c.Picker.GridColumns < 1 || c.Picker.GridColumns > 8 {
		errs = append(errs, ValidationError{
			Field:   "picker.grid_columns",
			Message: fmt.Sprintf("must be 1-8, got %d", c.Picker.GridColumns),
		})
	}
	if c.Picker.MaxItems < 1 || c.Picker.MaxItems > 200 {
		errs = append(errs, ValidationError{
			Field:   "picker.max_items",
			Message: fmt.Sprintf("must be 1-200, got %d", c.Picker.MaxItems),
		})
	}

	if c.Giphy.Rating != "" {
		validRatings := map[string]bool{"g": true, "pg": true, "pg-13": true, "r": true}
		if !validRatings[strings.ToLower(c.Giphy.Rating)] {
			errs = append(errs, ValidationError{
				Field:   "giphy.rating",
				Message: fmt.Sprintf("invalid rating '%s', must be one of: g, pg, pg-13, r", c.Giphy.Rating),
			})
		}
	}

	if c.GitHub.APIURL != "" {
		if _, err := url.Parse(c.GitHub.APIURL); err != nil {
			errs = append(errs, ValidationError{
				Field:   "github.api_url",
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
		}
	}
	if c.GitHub.Repository != "" && strings.Count(c.GitHub.Repository, "/") != 1 {
		errs = append(errs, ValidationError{
			Field:   "github.repository",
			Message: fmt.Sprintf("must be 'owner/repo', got '%s'", c.GitHub.Repository),
		})
	}

	if c.Cache.TTLHours < 0 {
		errs = append(errs, ValidationError{
			Field:   "cache.ttl_hours",
			Message: "must be non-negative",
		})
	}

	if c.Log.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Log.Level)] {
			errs = append(errs, ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Picker.SearchDebounceMS == 0 {
		c.Picker.SearchDebounceMS = defaults.Picker.SearchDebounceMS
	}
	if c.Picker.SuggestDebounceMS == 0 {
		c.Picker.SuggestDebounceMS = defaults.Picker.SuggestDebounceMS
	}
	if c.Picker.GridColumns == 0 {
		c.Picker.GridColumns = defaults.Picker.GridColumns
	}
	if c.Picker.MaxItems == 0 {
		c.Picker.MaxItems = defaults.Picker.MaxItems
	}

	if c.Giphy.Rating == "" {
		c.Giphy.Rating = defaults.Giphy.Rating
	}

	if c.GitHub.APIURL == "" {
		c.GitHub.APIURL = defaults.GitHub.APIURL
	}

	if c.Cache.TTLHours == 0 {
		c.Cache.TTLHours = defaults.Cache.TTLHours
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - SLASHDECK_GIPHY_KEY: overrides giphy.api_key
//   - SLASHDECK_GIPHY_RATING: overrides giphy.rating
//   - SLASHDECK_GITHUB_TOKEN: overrides github.token
//   - SLASHDECK_GITHUB_API: overrides github.api_url
//   - SLASHDECK_REPO: overrides github.repository
//   - SLASHDECK_SEARCH_DEBOUNCE_MS: overrides picker.search_debounce_ms
//   - SLASHDECK_SUGGEST_DEBOUNCE_MS: overrides picker.suggest_debounce_ms
//   - SLASHDECK_CACHE: set to "0" or "false" to disable caching
//   - SLASHDECK_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("SLASHDECK_GIPHY_KEY"); key != "" {
		c.Giphy.APIKey = key
	}
	if rating := os.Getenv("SLASHDECK_GIPHY_RATING"); rating != "" {
		c.Giphy.Rating = rating
	}
	if token := os.Getenv("SLASHDECK_GITHUB_TOKEN"); token != "" {
		c.GitHub.Token = token
	}
	if api := os.Getenv("SLASHDECK_GITHUB_API"); api != "" {
		c.GitHub.APIURL = api
	}
	if repo := os.Getenv("SLASHDECK_REPO"); repo != "" {
		c.GitHub.Repository = repo
	}
	if ms := os.Getenv("SLASHDECK_SEARCH_DEBOUNCE_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil {
			c.Picker.SearchDebounceMS = v
		}
	}
	if ms := os.Getenv("SLASHDECK_SUGGEST_DEBOUNCE_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil {
			c.Picker.SuggestDebounceMS = v
		}
	}
	if cache := os.Getenv("SLASHDECK_CACHE"); cache != "" {
		c.Cache.Enabled = cache != "0" && strings.ToLower(cache) != "false"
	}
	if level := os.Getenv("SLASHDECK_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
