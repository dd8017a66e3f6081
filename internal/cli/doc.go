// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the cobra command tree for slashdeck.
//
// The root command launches the demo editor TUI with every built-in
// slash command registered. Subcommands cover the supporting chores:
//
//   - config: print the effective configuration after env overrides
//   - cache prune: delete expired cached API results
//   - version: show version information
//
// # Usage
//
//	root := cli.NewRootCommand()
//	if err := root.Execute(); err != nil {
//	    os.Exit(1)
//	}
package cli
