// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the slashdeck TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// EDITOR STYLES
	// ==========================================================================

	EditorBox   lipgloss.Style
	EditorTitle lipgloss.Style
	HelpText    lipgloss.Style

	// ==========================================================================
	// POPUP STYLES
	// ==========================================================================

	PopupBox       lipgloss.Style
	PopupHeader    lipgloss.Style
	PopupSubtitle  lipgloss.Style
	PopupSeparator lipgloss.Style

	// ==========================================================================
	// RESULT ITEM STYLES
	// ==========================================================================

	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemTitle    lipgloss.Style
	ItemPreview  lipgloss.Style

	// ==========================================================================
	// SUGGESTION CHIP STYLES
	// ==========================================================================

	SuggestTitle lipgloss.Style
	SuggestChip  lipgloss.Style

	// ==========================================================================
	// MESSAGE AND STATE STYLES
	// ==========================================================================

	Loading  lipgloss.Style
	Message  lipgloss.Style
	SetupBox lipgloss.Style
	Settings lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Editor
	t.EditorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.EditorTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HelpText = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Popup
	t.PopupBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.PopupHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.PopupSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.PopupSeparator = lipgloss.NewStyle().
		Foreground(Overlay)

	// Items
	t.Item = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ItemSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse)

	t.ItemTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ItemPreview = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Suggestions
	t.SuggestTitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SuggestChip = lipgloss.NewStyle().
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	// Messages and states
	t.Loading = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Message = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SetupBox = lipgloss.NewStyle().
		Foreground(Amber)

	t.Settings = lipgloss.NewStyle().
		Foreground(TextPrimary)
}
