// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command provides the slash command core for slashdeck.
//
// This package defines the plugin contract implemented by every slash
// command, the process-wide registry that maps command names to plugins,
// and the line parser that decides which command (if any) owns the text
// around the cursor.
//
// # Key Types
//
//   - Token: Parsed slash command (name, query, slash offset)
//   - Plugin: Contract implemented by each slash command
//   - Registry: Name -> plugin table with visibility rules
//   - Result: Items and suggestions returned by plugin searches
//
// # Usage
//
// Parse the cursor line on every keystroke:
//
//	tok := command.ParseLine(line)
//	if tok != nil {
//	    plugin := registry.Get(tok.Name)
//	    // ...
//	}
//
// Register a plugin at startup:
//
//	registry.Register(giphy.New(client, cache))
package command
