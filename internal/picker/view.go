// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker provides the active-command state machine for slashdeck.
package picker

import "github.com/jeranaias/slashdeck/internal/command"

// =============================================================================
// PRESENTATION SURFACE
// =============================================================================

// Surface is the presentation collaborator the machine renders into.
// Implementations only draw; they never mutate picker state directly.
// User interaction flows back through the machine's own entry points
// (HandleInput, HandleKey, Hover).
type Surface interface {
	// Show makes the picker visible for the bound field.
	Show()

	// Hide removes the picker.
	Hide()

	// SetHeader updates the picker title row.
	SetHeader(title, subtitle string)

	// RenderLoading shows the loading view.
	RenderLoading()

	// RenderMessage shows a single message line (errors, no-results).
	RenderMessage(text string)

	// RenderItems shows the result set. columns is 0 for a flat list,
	// otherwise the grid width. suggest carries optional query chips.
	RenderItems(items []command.Item, columns int, suggest []string, suggestTitle string)

	// RenderSetup shows a plugin's one-time setup view.
	RenderSetup(message string)

	// RenderSettings shows the shared settings panel.
	RenderSettings(sections []string)

	// SetSelected highlights the item at index.
	SetSelected(index int)
}

// =============================================================================
// VIEW SNAPSHOT
// =============================================================================

// viewKind tags the variants of the derived picker view.
type viewKind int

const (
	viewNone viewKind = iota
	viewLoading
	viewMessage
	viewItems
	viewSetup
)

// view is a renderable snapshot of the picker body. The machine keeps
// the last applied view so the settings panel can suspend and later
// restore exactly what was on screen.
type view struct {
	kind         viewKind
	message      string
	items        []command.Item
	columns      int
	suggest      []string
	suggestTitle string
	title        string
	subtitle     string
}
