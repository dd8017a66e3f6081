// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker provides the active-command state machine for slashdeck.
package picker

import (
	"github.com/google/uuid"

	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/field"
)

// =============================================================================
// STATES
// =============================================================================

// State is the machine state for a field session.
type State int

const (
	// StateIdle means no picker is open. Sessions never carry this
	// state; a session in any other state exists, Idle means nil.
	StateIdle State = iota

	// StateResolving means a command was identified and preflight is
	// pending.
	StateResolving

	// StateSetup means the command needs one-time configuration.
	StateSetup

	// StateEmpty means the command is showing its zero-query view.
	StateEmpty

	// StateSearching means a debounce timer is pending or a search is
	// in flight for a non-empty query.
	StateSearching

	// StateError means the command reported a recoverable error.
	StateError

	// StateSettings means the shared settings panel suspends the
	// command view.
	StateSettings
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateSetup:
		return "setup"
	case StateEmpty:
		return "empty"
	case StateSearching:
		return "searching"
	case StateError:
		return "error"
	case StateSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// =============================================================================
// FIELD SESSION
// =============================================================================

// session is the per-field picker state. It is created when a command
// match is first detected and disposed entirely when the picker hides.
// Only the machine mutates it, always under the machine mutex.
type session struct {
	id    string
	field field.Editor

	// Active command.
	plugin     command.Plugin
	pluginName string

	// Header shown while this command drives the picker.
	title    string
	subtitle string

	// Trigger geometry: absolute offset of the slash, and the line
	// start, within the field value.
	slashOffset int
	lineStart   int

	// query is the latest query derived from the cursor line.
	query string

	// lastSearched is the last query actually handed to Search; the
	// idempotence guard compares against it.
	lastSearched string

	// lastSuggested is the last trimmed query scheduled on the
	// suggestion lane.
	lastSuggested string

	// inFlight guards against overlapping main searches.
	inFlight bool

	// Current result set and selection.
	items        []command.Item
	suggest      []string
	suggestTitle string
	selected     int

	state State

	// lastView is the most recent body render, restored when the
	// settings panel closes.
	lastView view

	// emptyView caches the command's zero-query view so deleting the
	// query restores it without a second fetch; emptyRequested keeps
	// the fetch from running twice while it is in flight.
	emptyView      *view
	emptyRequested bool

	// saved holds the suspended state while settings are open.
	savedState State

	// gen invalidates async work: bumped on command switch, reset,
	// and disposal. Async completions compare their captured value.
	gen uint64

	searchLane  lane
	suggestLane lane
}

func newSession(f field.Editor) *session {
	return &session{
		id:    uuid.NewString(),
		field: f,
	}
}

// setState records a state transition. While the settings panel
// suspends the command view, transitions land in the suspended slot so
// closing settings restores the state the pipeline advanced to.
func (s *session) setState(st State) {
	if s.state == StateSettings {
		s.savedState = st
		return
	}
	s.state = st
}

// effectiveState is the command state, seeing through the settings
// suspension.
func (s *session) effectiveState() State {
	if s.state == StateSettings {
		return s.savedState
	}
	return s.state
}

// dispose cancels both debounce lanes and invalidates in-flight work.
func (s *session) dispose() {
	s.searchLane.Cancel()
	s.suggestLane.Cancel()
	s.gen++
}

// resetCommandState clears all per-command memory when the active
// command changes, so stale results from the old command never render
// under the new one.
func (s *session) resetCommandState() {
	s.searchLane.Cancel()
	s.suggestLane.Cancel()
	s.gen++
	s.lastSearched = ""
	s.lastSuggested = ""
	s.inFlight = false
	s.items = nil
	s.suggest = nil
	s.suggestTitle = ""
	s.selected = 0
	s.emptyView = nil
	s.emptyRequested = false
	s.lastView = view{}
}
