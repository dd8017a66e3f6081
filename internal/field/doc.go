// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package field abstracts the editable text field the picker is bound to.
//
// Any text input exposing a value, a cursor offset, and a change
// notification can host the slash command picker. The picker reads the
// cursor line through CurrentLine and mutates the field through
// ReplaceRange, which dispatches a synthetic change event so other
// listeners on the field observe the edit.
//
// # Key Types
//
//   - Editor: Minimal interface the picker binds to
//   - Buffer: In-memory Editor used by tests and the TUI adapter
package field
