// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"

	"github.com/jeranaias/slashdeck/internal/field"
)

// =============================================================================
// TEXTAREA FIELD ADAPTER
// =============================================================================

// FieldAdapter bridges a bubbles textarea to field.Editor. The textarea
// tracks the cursor as row/column; the picker wants a byte offset into
// the joined value, so the adapter converts both ways.
type FieldAdapter struct {
	ta        *textarea.Model
	listeners []func()
}

// NewFieldAdapter wraps ta. The textarea stays owned by the caller's
// bubbletea model; the adapter only reads and repositions it.
func NewFieldAdapter(ta *textarea.Model) *FieldAdapter {
	return &FieldAdapter{ta: ta}
}

// OnChange registers a listener invoked by Notify.
func (a *FieldAdapter) OnChange(fn func()) {
	a.listeners = append(a.listeners, fn)
}

// Value implements field.Editor.
func (a *FieldAdapter) Value() string { return a.ta.Value() }

// SetValue implements field.Editor. The textarea leaves the cursor at
// the end of the new value; SetCursor repositions it afterwards.
func (a *FieldAdapter) SetValue(s string) { a.ta.SetValue(s) }

// Cursor implements field.Editor, converting the textarea's row/column
// position to a byte offset.
func (a *FieldAdapter) Cursor() int {
	rows := strings.Split(a.ta.Value(), "\n")
	row := a.ta.Line()
	if row >= len(rows) {
		row = len(rows) - 1
	}

	li := a.ta.LineInfo()
	col := li.StartColumn + li.ColumnOffset

	offset := 0
	for i := 0; i < row; i++ {
		offset += len(rows[i]) + 1
	}

	runes := []rune(rows[row])
	if col > len(runes) {
		col = len(runes)
	}
	return offset + len(string(runes[:col]))
}

// SetCursor implements field.Editor, converting a byte offset back to
// the textarea's row/column position.
func (a *FieldAdapter) SetCursor(pos int) {
	value := a.ta.Value()
	if pos < 0 {
		pos = 0
	}
	if pos > len(value) {
		pos = len(value)
	}

	row := strings.Count(value[:pos], "\n")
	lineStart := strings.LastIndexByte(value[:pos], '\n') + 1
	col := len([]rune(value[lineStart:pos]))

	for a.ta.Line() > row {
		a.ta.CursorUp()
	}
	for a.ta.Line() < row {
		a.ta.CursorDown()
	}
	a.ta.SetCursor(col)
}

// Notify implements field.Editor.
func (a *FieldAdapter) Notify() {
	for _, fn := range a.listeners {
		fn()
	}
}

var _ field.Editor = (*FieldAdapter)(nil)
