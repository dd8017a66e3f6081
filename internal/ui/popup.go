// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the bubbletea presentation layer for slashdeck.
package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/ui/styles"
)

// =============================================================================
// POPUP SURFACE
// =============================================================================

// popupKind tags what the popup body currently shows.
type popupKind int

const (
	popupNone popupKind = iota
	popupLoading
	popupMessage
	popupItems
	popupSetup
	popupSettings
)

// Popup implements picker.Surface for the terminal. The machine calls
// it from its own goroutines, so all state is mutex-guarded; the
// bubbletea view goroutine only ever reads a rendered snapshot.
type Popup struct {
	mu    sync.Mutex
	theme *styles.Theme
	width int

	visible  bool
	title    string
	subtitle string

	kind         popupKind
	message      string
	items        []command.Item
	columns      int
	suggest      []string
	suggestTitle string
	sections     []string
	selected     int
}

// NewPopup creates a popup rendering with theme at the given width.
func NewPopup(theme *styles.Theme, width int) *Popup {
	if width < 30 {
		width = 30
	}
	return &Popup{theme: theme, width: width}
}

// SetWidth adjusts the popup width (terminal resize).
func (p *Popup) SetWidth(width int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if width < 30 {
		width = 30
	}
	p.width = width
}

// Show implements picker.Surface.
func (p *Popup) Show() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = true
}

// Hide implements picker.Surface.
func (p *Popup) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = false
	p.kind = popupNone
	p.items = nil
	p.suggest = nil
	p.sections = nil
	p.selected = 0
}

// SetHeader implements picker.Surface.
func (p *Popup) SetHeader(title, subtitle string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
	p.subtitle = subtitle
}

// RenderLoading implements picker.Surface.
func (p *Popup) RenderLoading() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kind = popupLoading
}

// RenderMessage implements picker.Surface.
func (p *Popup) RenderMessage(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kind = popupMessage
	p.message = text
}

// RenderItems implements picker.Surface.
func (p *Popup) RenderItems(items []command.Item, columns int, suggest []string, suggestTitle string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kind = popupItems
	p.items = items
	p.columns = columns
	p.suggest = suggest
	p.suggestTitle = suggestTitle
	p.selected = 0
}

// RenderSetup implements picker.Surface.
func (p *Popup) RenderSetup(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kind = popupSetup
	p.message = message
}

// RenderSettings implements picker.Surface.
func (p *Popup) RenderSettings(sections []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kind = popupSettings
	p.sections = sections
}

// SetSelected implements picker.Surface.
func (p *Popup) SetSelected(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = index
}

// Visible reports whether the popup should be drawn.
func (p *Popup) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the popup to a string, empty when hidden.
func (p *Popup) View() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.visible || p.kind == popupNone {
		return ""
	}

	inner := p.width - 4
	var rows []string

	header := p.theme.PopupHeader.Render(truncate(p.title, inner))
	if p.subtitle != "" {
		header += " " + p.theme.PopupSubtitle.Render(truncate(p.subtitle, inner-runewidth.StringWidth(p.title)-1))
	}
	rows = append(rows, header)
	rows = append(rows, p.theme.PopupSeparator.Render(strings.Repeat("-", inner)))

	switch p.kind {
	case popupLoading:
		rows = append(rows, p.theme.Loading.Render("Loading..."))

	case popupMessage:
		rows = append(rows, p.theme.Message.Render(truncate(p.message, inner)))

	case popupSetup:
		rows = append(rows, p.theme.SetupBox.Render(wrap(p.message, inner)))
		rows = append(rows, "")
		rows = append(rows, p.theme.HelpText.Render("Press Esc to close"))

	case popupSettings:
		for _, section := range p.sections {
			rows = append(rows, p.theme.Settings.Render(truncate(section, inner)))
		}
		if len(p.sections) == 0 {
			rows = append(rows, p.theme.Message.Render("Nothing to configure"))
		}

	case popupItems:
		rows = append(rows, p.renderSuggestRow(inner)...)
		if p.columns > 1 {
			rows = append(rows, p.renderGrid(inner)...)
		} else {
			rows = append(rows, p.renderList(inner)...)
		}
	}

	return p.theme.PopupBox.Width(p.width - 2).Render(strings.Join(rows, "\n"))
}

func (p *Popup) renderSuggestRow(inner int) []string {
	if len(p.suggest) == 0 {
		return nil
	}

	var chips []string
	if p.suggestTitle != "" {
		chips = append(chips, p.theme.SuggestTitle.Render(p.suggestTitle+":"))
	}
	for _, s := range p.suggest {
		chips = append(chips, p.theme.SuggestChip.Render(s))
	}
	return []string{truncate(strings.Join(chips, " "), inner), ""}
}

// renderList draws items one per row: title, then dimmed preview.
func (p *Popup) renderList(inner int) []string {
	rows := make([]string, 0, len(p.items))
	for i, item := range p.items {
		marker := "  "
		if i == p.selected {
			marker = "> "
		}

		title := p.theme.ItemTitle.Render(item.Title)
		line := marker + title
		if item.Preview != "" {
			used := runewidth.StringWidth(marker + item.Title)
			avail := inner - used - 2
			if avail > 6 {
				line += "  " + p.theme.ItemPreview.Render(truncate(item.Preview, avail))
			}
		}

		if i == p.selected {
			line = p.theme.ItemSelected.Render(truncate(marker+item.Title, inner))
			if item.Preview != "" {
				line += "  " + p.theme.ItemPreview.Render(truncate(item.Preview, inner-runewidth.StringWidth(marker+item.Title)-2))
			}
		}
		rows = append(rows, line)
	}
	return rows
}

// renderGrid draws items in fixed-width cells, p.columns per row.
func (p *Popup) renderGrid(inner int) []string {
	cellWidth := inner/p.columns - 1
	if cellWidth < 8 {
		cellWidth = 8
	}

	var rows []string
	for start := 0; start < len(p.items); start += p.columns {
		end := start + p.columns
		if end > len(p.items) {
			end = len(p.items)
		}

		var cells []string
		for i := start; i < end; i++ {
			label := truncate(p.items[i].Title, cellWidth-2)
			cell := "  " + label
			if i == p.selected {
				cell = p.theme.ItemSelected.Render("> " + label)
			} else {
				cell = p.theme.Item.Render(cell)
			}
			cells = append(cells, padRight(cell, cellWidth, lipgloss.Width(cell)))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return rows
}

// =============================================================================
// TEXT HELPERS
// =============================================================================

// truncate shortens s to maxWidth display cells with an ellipsis.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// wrap breaks s into lines no wider than width, on spaces.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var out strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+w > width {
			out.WriteByte('\n')
			lineWidth = 0
		} else if lineWidth > 0 {
			out.WriteByte(' ')
			lineWidth++
		}
		out.WriteString(word)
		lineWidth += w
	}
	return out.String()
}

// padRight pads rendered (whose display width is visible) to width cells.
func padRight(rendered string, width, visible int) string {
	if visible >= width {
		return rendered
	}
	return rendered + strings.Repeat(" ", width-visible)
}
