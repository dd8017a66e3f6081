// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jeranaias/slashdeck/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// newConfigCommand prints the effective configuration: file values
// merged with env overrides and defaults, secrets redacted.
func newConfigCommand(configPath *string) *cobra.Command {
	var showSecrets bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration slashdeck would run with: the config file
(if any) merged with environment overrides and built-in defaults.
API keys are redacted unless --show-secrets is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			if !showSecrets {
				cfg.Giphy.APIKey = redact(cfg.Giphy.APIKey)
				cfg.GitHub.Token = redact(cfg.GitHub.Token)
			}

			if path, err := config.ConfigPath(); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}

	configCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print API keys in full")

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	return configCmd
}

// redact keeps enough of a secret to recognize it without exposing it.
func redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
