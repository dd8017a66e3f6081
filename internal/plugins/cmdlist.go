// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugins

import (
	"context"
	"strings"

	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/field"
	"github.com/jeranaias/slashdeck/internal/picker"
)

// =============================================================================
// COMMAND LIST
// =============================================================================

// CommandList is the internal pseudo-command backing the picker when the
// typed name matches no registered command. Its query is the partial
// name; selecting an entry rewrites the trigger to "/name ", which
// re-parses and activates the real command.
type CommandList struct {
	reg *command.Registry
}

// NewCommandList creates the command list plugin over reg.
func NewCommandList(reg *command.Registry) *CommandList {
	return &CommandList{reg: reg}
}

// Name implements command.Plugin.
func (c *CommandList) Name() string { return picker.ListCommand }

// Description implements command.Plugin.
func (c *CommandList) Description() string { return "List available commands" }

// Preflight implements command.Plugin. The list is always ready.
func (c *CommandList) Preflight(ctx context.Context) (command.Preflight, error) {
	return command.Preflight{}, nil
}

// EmptyState lists every visible command.
func (c *CommandList) EmptyState(ctx context.Context) (command.Result, error) {
	return command.Result{Items: c.match("")}, nil
}

// Search filters visible commands by the partial name.
func (c *CommandList) Search(ctx context.Context, query string) (command.Result, error) {
	return command.Result{Items: c.match(query)}, nil
}

// match returns visible commands whose name contains partial, prefix
// matches first.
func (c *CommandList) match(partial string) []command.Item {
	partial = strings.ToLower(strings.TrimSpace(partial))

	var prefixed, contained []command.Item
	for _, p := range c.reg.Visible() {
		name := p.Name()
		item := command.Item{
			ID:      name,
			Title:   "/" + name,
			Preview: p.Description(),
		}
		switch {
		case partial == "" || strings.HasPrefix(name, partial):
			prefixed = append(prefixed, item)
		case strings.Contains(name, partial):
			contained = append(contained, item)
		}
	}
	return append(prefixed, contained...)
}

// Select rewrites the trigger text to the chosen command, leaving the
// cursor ready for a query. The rewrite re-triggers parsing, so the
// picker reopens with the chosen command active.
func (c *CommandList) Select(item command.Item, f field.Editor, slashOffset, end int) {
	field.ReplaceRange(f, slashOffset, end, "/"+item.ID+" ")
}

// Columns implements command.Plugin; the list renders flat.
func (c *CommandList) Columns() int { return 0 }

// NoResultsMessage implements command.NoResultsMessenger.
func (c *CommandList) NoResultsMessage() string { return "No matching commands" }
