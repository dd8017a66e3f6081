// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/slashdeck/internal/cache"
	"github.com/jeranaias/slashdeck/internal/config"
)

// =============================================================================
// CACHE COMMAND
// =============================================================================

// newCacheCommand manages the on-disk API result cache.
func newCacheCommand(configPath *string) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API result cache",
	}

	var all bool
	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete expired cached results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			path, err := config.CachePath(cfg)
			if err != nil {
				return err
			}
			store, err := cache.Open(path)
			if err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			defer store.Close()

			maxAge := time.Duration(cfg.Cache.TTLHours) * time.Hour
			if all {
				maxAge = 0
			}
			pruned, err := store.Prune(maxAge)
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d cached result(s) from %s\n", pruned, path)
			return nil
		},
	}
	pruneCmd.Flags().BoolVar(&all, "all", false, "Delete every cached result regardless of age")

	cacheCmd.AddCommand(pruneCmd)
	return cacheCmd
}
