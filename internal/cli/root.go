// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/slashdeck/internal/cache"
	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/config"
	"github.com/jeranaias/slashdeck/internal/logging"
	"github.com/jeranaias/slashdeck/internal/picker"
	"github.com/jeranaias/slashdeck/internal/plugins"
	"github.com/jeranaias/slashdeck/internal/ui"
	"github.com/jeranaias/slashdeck/internal/ui/styles"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

// configWatchDebounce coalesces bursts of file events from editors
// that save via truncate-then-write.
const configWatchDebounce = 300 * time.Millisecond

// NewRootCommand builds the slashdeck command tree. The root command
// itself starts the demo editor.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "slashdeck",
		Short: "Slash-command palette for markdown text fields",
		Long: `slashdeck opens a demo markdown editor wired to the slash-command
palette. Type "/" at a word boundary to open the command popup; press
Ctrl+S for plugin settings and Ctrl+C to quit.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEditor(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.slashdeck/config.toml)")

	rootCmd.AddCommand(newConfigCommand(&configPath))
	rootCmd.AddCommand(newCacheCommand(&configPath))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig resolves the effective configuration, honoring --config.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

// =============================================================================
// DEMO EDITOR
// =============================================================================

// runEditor wires the full stack and runs the bubbletea program until
// the user quits.
func runEditor(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.SetGlobal(cfg)

	if err := logging.Configure(cfg.Log.Level, cfg.Log.Path); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	store := openCache(cfg)
	if store != nil {
		defer store.Close()
	}

	reg := command.NewRegistry()
	reloaders := plugins.RegisterBuiltins(reg, cfg, store)

	theme := styles.NewTheme()
	popup := ui.NewPopup(theme, 64)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	machine := picker.New(ctx, reg, popup, picker.Options{
		SearchDelay:  time.Duration(cfg.Picker.SearchDebounceMS) * time.Millisecond,
		SuggestDelay: time.Duration(cfg.Picker.SuggestDebounceMS) * time.Millisecond,
		MaxItems:     cfg.Picker.MaxItems,
	})
	defer machine.Close()

	if watcher := watchConfig(configPath, reloaders, machine); watcher != nil {
		defer watcher.Close()
	}

	model := ui.NewEditor(machine, popup, theme)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// openCache opens the result cache when enabled. Cache failures
// degrade to uncached operation rather than aborting startup.
func openCache(cfg *config.Config) *cache.Store {
	if !cfg.Cache.Enabled {
		return nil
	}

	path, err := config.CachePath(cfg)
	if err != nil {
		logging.Warn("Cache disabled", "error", err)
		return nil
	}

	store, err := cache.Open(path)
	if err != nil {
		logging.Warn("Cache disabled", "error", err)
		return nil
	}
	return store
}

// watchConfig starts the config hot-reload watcher. A saved config
// re-arms the API plugins and retries any pending setup screen. Watch
// failures are non-fatal; editing config then requires a restart.
func watchConfig(configPath string, reloaders []plugins.ConfigReloader, machine *picker.Machine) *config.Watcher {
	path := configPath
	if path == "" {
		var err error
		path, err = config.ConfigPath()
		if err != nil {
			logging.Warn("Config watch disabled", "error", err)
			return nil
		}
	}

	watcher, err := config.NewWatcher(path, configWatchDebounce, func(next *config.Config) {
		config.SetGlobal(next)
		for _, r := range reloaders {
			r.UpdateConfig(next)
		}
		machine.SetupComplete()
		logging.Info("Configuration reloaded", "path", path)
	})
	if err != nil {
		logging.Warn("Config watch disabled", "error", err)
		return nil
	}
	if err := watcher.Watch(); err != nil {
		logging.Warn("Config watch disabled", "error", err)
		watcher.Close()
		return nil
	}
	return watcher
}
