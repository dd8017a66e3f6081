// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command provides the slash command core for slashdeck.
package command

import (
	"context"

	"github.com/jeranaias/slashdeck/internal/field"
)

// =============================================================================
// ITEMS AND RESULTS
// =============================================================================

// Item is a single selectable result offered by a plugin.
type Item struct {
	// ID uniquely identifies the item within one result set.
	ID string

	// Title is the text shown in the picker.
	Title string

	// Preview is optional secondary text (URL, emoji glyph, size).
	Preview string

	// Insert is the markdown written into the field on selection.
	Insert string
}

// Result is the outcome of an empty-state or search call.
type Result struct {
	// Items to render; an empty slice with no Err means "no results".
	Items []Item

	// Suggest holds optional query suggestion chips.
	Suggest []string

	// SuggestTitle labels the suggestion row.
	SuggestTitle string

	// Err is a plugin-reported error message, shown verbatim. A
	// non-empty Err takes precedence over Items.
	Err string
}

// Preflight is the outcome of a plugin readiness check.
type Preflight struct {
	// ShowSetup requests the one-time setup view before the plugin
	// can be used (e.g. a missing API key).
	ShowSetup bool

	// Message explains what the setup view should say.
	Message string
}

// =============================================================================
// PLUGIN CONTRACT
// =============================================================================

// Plugin is the contract every slash command implements. All methods
// taking a context may block on network calls; the picker calls them
// off the UI path and discards stale results itself.
type Plugin interface {
	// Name is the registration name, lower-case, no slash. Names
	// prefixed with InternalPrefix are hidden from listings.
	Name() string

	// Description is shown next to the name in the command list.
	Description() string

	// Preflight reports whether the plugin is ready for use.
	Preflight(ctx context.Context) (Preflight, error)

	// EmptyState returns the zero-query default view.
	EmptyState(ctx context.Context) (Result, error)

	// Search returns results for a non-empty query.
	Search(ctx context.Context, query string) (Result, error)

	// Select commits an item to the field. The trigger text (from the
	// slash through the cursor) has already been located by the
	// picker; the plugin decides what replaces it.
	Select(item Item, f field.Editor, slashOffset, end int)

	// Columns is the grid width for rendering, or 0 for a flat list.
	Columns() int
}

// Suggester is implemented by plugins offering query autocomplete.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}

// NoResultsMessenger customizes the empty search result message.
type NoResultsMessenger interface {
	NoResultsMessage() string
}

// SettingsPanel is implemented by plugins contributing to the shared
// settings view.
type SettingsPanel interface {
	Settings() string
}
