// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package field abstracts the editable text field the picker is bound to.
package field

import "strings"

// =============================================================================
// EDITOR INTERFACE
// =============================================================================

// Editor is the minimal surface of an editable text field. The picker
// only ever reads and writes the value and cursor position, and calls
// Notify after a mutation so other listeners on the field observe the
// change.
type Editor interface {
	// Value returns the full field content.
	Value() string

	// SetValue replaces the full field content.
	SetValue(s string)

	// Cursor returns the byte offset of the cursor within Value.
	Cursor() int

	// SetCursor moves the cursor, clamped to the value bounds.
	SetCursor(pos int)

	// Notify dispatches a synthetic change event to field listeners.
	Notify()
}

// =============================================================================
// CURSOR LINE HELPERS
// =============================================================================

// CurrentLine returns the text of the line the cursor sits on, up to
// the cursor, together with the byte offset of the line start. The
// parser runs against this slice so a command is only recognized when
// the cursor is on (or right after) it.
func CurrentLine(e Editor) (line string, lineStart int) {
	value := e.Value()
	cur := clamp(e.Cursor(), 0, len(value))

	lineStart = strings.LastIndexByte(value[:cur], '\n') + 1
	return value[lineStart:cur], lineStart
}

// ReplaceRange replaces value[start:end] with text, places the cursor
// after the inserted text, and notifies listeners.
func ReplaceRange(e Editor, start, end int, text string) {
	value := e.Value()
	start = clamp(start, 0, len(value))
	end = clamp(end, start, len(value))

	e.SetValue(value[:start] + text + value[end:])
	e.SetCursor(start + len(text))
	e.Notify()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// IN-MEMORY BUFFER
// =============================================================================

// Buffer is an in-memory Editor. The TUI adapter embeds one behind a
// textarea; tests drive it directly.
type Buffer struct {
	value    string
	cursor   int
	onChange []func()
}

// NewBuffer creates a Buffer with the given initial content, cursor at
// the end.
func NewBuffer(value string) *Buffer {
	return &Buffer{value: value, cursor: len(value)}
}

// OnChange registers a listener invoked by Notify.
func (b *Buffer) OnChange(fn func()) {
	b.onChange = append(b.onChange, fn)
}

// Value returns the buffer content.
func (b *Buffer) Value() string { return b.value }

// SetValue replaces the buffer content, clamping the cursor.
func (b *Buffer) SetValue(s string) {
	b.value = s
	b.cursor = clamp(b.cursor, 0, len(s))
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int { return b.cursor }

// SetCursor moves the cursor, clamped to the value bounds.
func (b *Buffer) SetCursor(pos int) {
	b.cursor = clamp(pos, 0, len(b.value))
}

// Notify invokes the registered change listeners.
func (b *Buffer) Notify() {
	for _, fn := range b.onChange {
		fn()
	}
}

// Type appends text at the cursor, the way a user typing would, and
// notifies listeners.
func (b *Buffer) Type(text string) {
	b.value = b.value[:b.cursor] + text + b.value[b.cursor:]
	b.cursor += len(text)
	b.Notify()
}
