// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker provides the active-command state machine for slashdeck.
//
// The machine tracks which slash command currently owns the picker for
// a field, re-evaluates that decision on every keystroke, and drives
// the debounced search pipeline feeding the presentation surface.
//
// # States
//
// Idle (no picker), Resolving (preflight pending), Setup (one-time
// configuration required), Empty (zero-query view), Searching (debounce
// pending or request in flight), Error (recoverable plugin error), and
// Settings (shared panel suspending the command view).
//
// # Pipeline
//
// Two independent debounce lanes run per field session: the search lane
// (260ms, single-flight via an in-flight flag) and the suggestion lane
// (180ms, last call wins). Both are torn down when the picker hides or
// the active command changes, so a stale timer from one command never
// fires into another command's render path. In-flight fetches cannot be
// aborted; their results are validated against current state on
// completion and discarded if stale.
//
// # Usage
//
//	machine := picker.New(ctx, registry, surface, picker.Options{})
//	buf.OnChange(func() { machine.HandleInput(buf) })
package picker
