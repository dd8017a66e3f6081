// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/slashdeck/internal/picker"
	"github.com/jeranaias/slashdeck/internal/ui/styles"
)

// =============================================================================
// DEMO EDITOR MODEL
// =============================================================================

// refreshInterval paces re-renders while async picker work completes.
const refreshInterval = 80 * time.Millisecond

// refreshMsg asks the editor to redraw the popup snapshot.
type refreshMsg struct{}

// EditorModel is the demo bubbletea model: a markdown textarea with the
// slash-command picker attached. Keys are routed to the picker first
// while it is visible; everything else flows into the textarea.
type EditorModel struct {
	ta      textarea.Model
	adapter *FieldAdapter
	machine *picker.Machine
	popup   *Popup
	theme   *styles.Theme
	help    string

	width  int
	height int
}

// NewEditor assembles the demo editor around machine and popup. The
// textarea lives inside the model so the field adapter can hold a
// stable pointer to it across bubbletea updates.
func NewEditor(machine *picker.Machine, popup *Popup, theme *styles.Theme) *EditorModel {
	m := &EditorModel{
		machine: machine,
		popup:   popup,
		theme:   theme,
		help:    renderHelp(),
	}

	m.ta = textarea.New()
	m.ta.Placeholder = "Write some markdown... type / for commands"
	m.ta.CharLimit = 0
	m.ta.SetHeight(8)
	m.ta.Focus()

	m.adapter = NewFieldAdapter(&m.ta)
	m.adapter.OnChange(func() { machine.HandleInput(m.adapter) })
	return m
}

// Init implements tea.Model.
func (m *EditorModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.refresh())
}

func (m *EditorModel) refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// Update implements tea.Model.
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, m.refresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ta.SetWidth(msg.Width - 4)
		m.popup.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			m.machine.OpenSettings()
			return m, nil
		}

		if key, ok := pickerKey(msg.String()); ok && m.popup.Visible() {
			if m.machine.HandleKey(key) {
				return m, nil
			}
		}
	}

	before := m.ta.Value()
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	if m.ta.Value() != before {
		m.adapter.Notify()
	} else if _, isKey := msg.(tea.KeyMsg); isKey {
		// Cursor-only movement still re-parses the current line.
		m.adapter.Notify()
	}
	return m, cmd
}

// pickerKey maps a bubbletea key name to a picker key.
func pickerKey(name string) (picker.Key, bool) {
	switch name {
	case "up":
		return picker.KeyUp, true
	case "down":
		return picker.KeyDown, true
	case "left":
		return picker.KeyLeft, true
	case "right":
		return picker.KeyRight, true
	case "enter":
		return picker.KeyEnter, true
	case "esc":
		return picker.KeyEscape, true
	}
	return 0, false
}

// View implements tea.Model.
func (m *EditorModel) View() string {
	parts := []string{
		m.theme.EditorTitle.Render("slashdeck"),
		m.theme.EditorBox.Render(m.ta.View()),
	}

	if popup := m.popup.View(); popup != "" {
		parts = append(parts, popup)
	} else {
		parts = append(parts, m.help)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
