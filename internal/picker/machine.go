// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker provides the active-command state machine for slashdeck.
package picker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/field"
	"github.com/jeranaias/slashdeck/internal/logging"
)

// ListCommand is the registration name of the internal pseudo-command
// that lists available commands. Unknown or partial command names are
// routed to it.
const ListCommand = command.InternalPrefix + "commands"

// genericErrorMessage is shown when a plugin hook fails unexpectedly.
// Plugin-reported error strings are shown verbatim instead.
const genericErrorMessage = "Something went wrong"

// noResultsMessage is the fallback for empty search results.
const noResultsMessage = "No results found"

// =============================================================================
// OPTIONS
// =============================================================================

// Options tunes the machine's debounce lanes and result limits.
type Options struct {
	// SearchDelay is the main search debounce (default 260ms).
	SearchDelay time.Duration

	// SuggestDelay is the suggestion debounce (default 180ms).
	SuggestDelay time.Duration

	// MaxItems caps rendered result sets (default 24).
	MaxItems int
}

func (o Options) withDefaults() Options {
	if o.SearchDelay <= 0 {
		o.SearchDelay = 260 * time.Millisecond
	}
	if o.SuggestDelay <= 0 {
		o.SuggestDelay = 180 * time.Millisecond
	}
	if o.MaxItems <= 0 {
		o.MaxItems = 24
	}
	return o
}

// =============================================================================
// KEYS
// =============================================================================

// Key identifies the navigation keys the machine handles.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// =============================================================================
// MACHINE
// =============================================================================

// Machine decides, on every keystroke, which command owns the cursor
// context, drives preflight and the debounced search pipeline, and
// coordinates keyboard navigation over the result set.
//
// The machine owns at most one session at a time: the field whose
// cursor line last matched a command. All session mutation happens
// under the machine mutex; plugin hooks run outside it and their
// results are re-validated before they are applied.
type Machine struct {
	mu      sync.Mutex
	ctx     context.Context
	reg     *command.Registry
	surface Surface
	opts    Options
	log     *log.Logger

	session *session
}

// New creates a machine over the given registry and surface.
func New(ctx context.Context, reg *command.Registry, surface Surface, opts Options) *Machine {
	return &Machine{
		ctx:     ctx,
		reg:     reg,
		surface: surface,
		opts:    opts.withDefaults(),
		log:     logging.New("picker"),
	}
}

// =============================================================================
// INPUT EVENTS
// =============================================================================

// HandleInput re-evaluates the command context for f. It is called on
// every input or keyup event in a bound field.
func (m *Machine) HandleInput(f field.Editor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	line, lineStart := field.CurrentLine(f)
	tok := command.ParseLine(line)
	if tok == nil {
		if m.session != nil && m.session.field == f {
			m.closeLocked()
		}
		return
	}

	name, query, plugin := m.resolve(tok)
	if plugin == nil {
		if m.session != nil && m.session.field == f {
			m.closeLocked()
		}
		return
	}

	s := m.session
	if s != nil && s.field != f {
		// Another field owns the picker; hand it over.
		m.closeLocked()
		s = nil
	}
	if s == nil {
		s = newSession(f)
		m.session = s
		m.surface.Show()
		m.log.Debug("session opened", "id", s.id)
	}

	s.lineStart = lineStart
	s.slashOffset = lineStart + tok.SlashOffset
	s.query = query

	if s.pluginName != name {
		s.resetCommandState()
		s.plugin = plugin
		s.pluginName = name
		s.setState(StateResolving)
		m.setHeader(s)
		m.render(s, view{kind: viewLoading})
		m.startPreflight(s)
		return
	}

	if st := s.effectiveState(); st == StateResolving || st == StateSetup {
		// Preflight pending or setup incomplete; the query is kept
		// and acted on once the command is ready.
		return
	}
	m.advanceQuery(s)
}

// resolve maps a token to the plugin that owns it. Unknown and empty
// names fall back to the command-list pseudo-command, filtered by the
// partial name typed.
func (m *Machine) resolve(tok *command.Token) (name, query string, p command.Plugin) {
	if p = m.reg.Get(tok.Name); p != nil {
		return tok.Name, tok.Query, p
	}
	if p = m.reg.Get(ListCommand); p != nil {
		return ListCommand, tok.Name, p
	}
	return "", "", nil
}

func (m *Machine) setHeader(s *session) {
	if s.pluginName == ListCommand {
		s.title, s.subtitle = "Commands", ""
	} else {
		s.title, s.subtitle = "/"+s.pluginName, s.plugin.Description()
	}
	if s.state == StateSettings {
		// The settings header stays up; CloseSettings restores this one.
		return
	}
	m.surface.SetHeader(s.title, s.subtitle)
}

// =============================================================================
// PREFLIGHT
// =============================================================================

func (m *Machine) startPreflight(s *session) {
	g := s.gen
	go func() {
		pf, err := m.callPreflight(s.plugin)

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.session != s || s.gen != g {
			return
		}
		if err != nil {
			m.log.Error("preflight failed", "command", s.pluginName, "err", err)
			s.setState(StateError)
			m.render(s, view{kind: viewMessage, message: genericErrorMessage})
			return
		}
		if pf.ShowSetup {
			s.setState(StateSetup)
			m.render(s, view{kind: viewSetup, message: pf.Message})
			return
		}
		m.advanceQuery(s)
	}()
}

// SetupComplete re-enters the resolving state after a plugin's setup
// flow signals completion. Cache invalidation is the plugin's own
// responsibility.
func (m *Machine) SetupComplete() {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || s.effectiveState() != StateSetup {
		return
	}
	s.setState(StateResolving)
	m.render(s, view{kind: viewLoading})
	m.startPreflight(s)
}

// =============================================================================
// QUERY PIPELINE
// =============================================================================

// advanceQuery routes the current query into the empty-state or the
// debounced search lanes. Caller holds the machine mutex.
func (m *Machine) advanceQuery(s *session) {
	if s.query == "" {
		s.setState(StateEmpty)
		m.startEmptyState(s)
		return
	}

	s.setState(StateSearching)

	// Suggestion lane: separately debounced, last call wins, no
	// in-flight guard since suggestion calls are cheap.
	if sg, ok := s.plugin.(command.Suggester); ok {
		trimmed := strings.TrimSpace(s.query)
		if trimmed != s.lastSuggested {
			s.lastSuggested = trimmed
			g := s.gen
			s.suggestLane.Schedule(m.opts.SuggestDelay, func() {
				m.fireSuggest(s, sg, trimmed, g)
			})
		}
	}

	// Main lane: skip entirely when the query matches the last one
	// searched; the rendered results already correspond to it.
	if s.query == s.lastSearched {
		s.searchLane.Cancel()
		return
	}
	if s.items == nil && s.lastView.kind != viewMessage {
		m.render(s, view{kind: viewLoading})
	}
	q := s.query
	g := s.gen
	s.searchLane.Schedule(m.opts.SearchDelay, func() {
		m.fireSearch(s, q, g)
	})
}

func (m *Machine) startEmptyState(s *session) {
	if s.emptyView != nil {
		s.items = s.emptyView.items
		s.suggest = s.emptyView.suggest
		s.suggestTitle = s.emptyView.suggestTitle
		s.selected = 0
		m.render(s, *s.emptyView)
		if s.state != StateSettings {
			m.surface.SetSelected(0)
		}
		return
	}
	if s.emptyRequested {
		return
	}
	s.emptyRequested = true
	m.render(s, view{kind: viewLoading})

	g := s.gen
	go func() {
		res, err := m.callEmptyState(s.plugin)

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.session != s || s.gen != g {
			return
		}
		if err != nil {
			m.log.Error("empty state failed", "command", s.pluginName, "err", err)
			s.setState(StateError)
			s.emptyRequested = false
			m.render(s, view{kind: viewMessage, message: genericErrorMessage})
			return
		}
		if res.Err != "" {
			s.setState(StateError)
			s.emptyRequested = false
			m.render(s, view{kind: viewMessage, message: res.Err})
			return
		}

		v := view{
			kind:         viewItems,
			items:        capItems(res.Items, m.opts.MaxItems),
			columns:      s.plugin.Columns(),
			suggest:      res.Suggest,
			suggestTitle: res.SuggestTitle,
		}
		s.emptyView = &v
		if s.query != "" {
			// The user typed ahead while the empty state loaded; the
			// cached view stays available but the search lane owns
			// the screen now.
			m.advanceQuery(s)
			return
		}
		s.items = v.items
		s.suggest = v.suggest
		s.suggestTitle = v.suggestTitle
		s.selected = 0
		m.render(s, v)
		if s.state != StateSettings {
			m.surface.SetSelected(0)
		}
	}()
}

func (m *Machine) fireSearch(s *session, q string, g uint64) {
	m.mu.Lock()
	if m.session != s || s.gen != g {
		m.mu.Unlock()
		return
	}
	if s.inFlight {
		// A search is already running for this field; this fire is
		// dropped, not queued.
		m.mu.Unlock()
		return
	}
	s.inFlight = true
	s.lastSearched = q
	plugin := s.plugin
	m.mu.Unlock()

	res, err := m.callSearch(plugin, q)

	m.mu.Lock()
	defer m.mu.Unlock()
	s.inFlight = false
	if m.session != s || s.gen != g {
		return
	}
	if s.query != q {
		// The field moved on while the request ran. Drop the result
		// and forget the query so retyping it searches again.
		s.lastSearched = ""
		return
	}

	if err != nil {
		m.log.Error("search failed", "command", s.pluginName, "query", q, "err", err)
		s.setState(StateError)
		m.render(s, view{kind: viewMessage, message: genericErrorMessage})
		return
	}
	if res.Err != "" {
		s.setState(StateError)
		m.render(s, view{kind: viewMessage, message: res.Err})
		return
	}
	if len(res.Items) == 0 {
		// Not a terminal error: typing continues to re-trigger search.
		s.setState(StateSearching)
		s.items = nil
		m.render(s, view{kind: viewMessage, message: m.noResultsFor(s.plugin)})
		return
	}

	s.setState(StateSearching)
	s.items = capItems(res.Items, m.opts.MaxItems)
	if res.SuggestTitle != "" {
		s.suggestTitle = res.SuggestTitle
	}
	s.selected = 0
	m.render(s, view{
		kind:         viewItems,
		items:        s.items,
		columns:      s.plugin.Columns(),
		suggest:      s.suggest,
		suggestTitle: s.suggestTitle,
	})
	if s.state != StateSettings {
		m.surface.SetSelected(0)
	}
}

func (m *Machine) fireSuggest(s *session, sg command.Suggester, q string, g uint64) {
	m.mu.Lock()
	if m.session != s || s.gen != g {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	suggestions, err := m.callSuggest(sg, q)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != s || s.gen != g {
		return
	}
	if err != nil {
		// Suggestions are cosmetic; log and move on.
		m.log.Debug("suggest failed", "command", s.pluginName, "query", q, "err", err)
		return
	}
	s.suggest = suggestions
	if s.lastView.kind == viewItems {
		m.render(s, view{
			kind:         viewItems,
			items:        s.items,
			columns:      s.plugin.Columns(),
			suggest:      s.suggest,
			suggestTitle: s.suggestTitle,
		})
		if s.state != StateSettings {
			m.surface.SetSelected(s.selected)
		}
	}
}

func (m *Machine) noResultsFor(p command.Plugin) string {
	if nr, ok := p.(command.NoResultsMessenger); ok {
		if msg := nr.NoResultsMessage(); msg != "" {
			return msg
		}
	}
	return noResultsMessage
}

func capItems(items []command.Item, max int) []command.Item {
	if len(items) > max {
		return items[:max]
	}
	return items
}

// =============================================================================
// KEYBOARD NAVIGATION
// =============================================================================

// HandleKey processes a navigation key. It reports whether the key was
// consumed by the picker; unconsumed keys belong to the field.
func (m *Machine) HandleKey(k Key) bool {
	if k == KeyEnter {
		return m.commit(-1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil {
		return false
	}

	if k == KeyEscape {
		// Escape always closes, regardless of sub-state.
		m.closeLocked()
		return true
	}

	if s.state == StateSettings {
		// Navigation pauses while the settings panel is up.
		return false
	}

	if s.lastView.kind != viewItems || len(s.items) == 0 {
		return false
	}

	cols := s.plugin.Columns()
	var delta int
	switch k {
	case KeyUp:
		if cols > 0 {
			delta = -cols
		} else {
			delta = -1
		}
	case KeyDown:
		if cols > 0 {
			delta = cols
		} else {
			delta = 1
		}
	case KeyLeft, KeyRight:
		if cols == 0 {
			// List views only navigate vertically.
			return false
		}
		if k == KeyLeft {
			delta = -1
		} else {
			delta = 1
		}
	default:
		return false
	}

	// Clamp: movement past either edge leaves the selection unchanged.
	target := s.selected + delta
	if target >= 0 && target < len(s.items) {
		s.selected = target
		m.surface.SetSelected(target)
	}
	return true
}

// Hover updates the selection from pointer movement in the surface.
func (m *Machine) Hover(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || s.state == StateSettings || s.lastView.kind != viewItems {
		return
	}
	if index < 0 || index >= len(s.items) {
		return
	}
	s.selected = index
	m.surface.SetSelected(index)
}

// Choose commits the item at index, as a direct selection from the
// surface (e.g. a click).
func (m *Machine) Choose(index int) {
	m.commit(index)
}

// commit hands the selected item to the plugin and closes the picker.
// If the plugin rewrites the trigger into a new slash command, the
// synthetic change event re-opens the picker naturally.
func (m *Machine) commit(index int) bool {
	m.mu.Lock()
	s := m.session
	if s == nil || s.state == StateSettings || s.lastView.kind != viewItems || len(s.items) == 0 {
		m.mu.Unlock()
		return false
	}
	if index < 0 {
		index = s.selected
	}
	if index < 0 || index >= len(s.items) {
		index = 0
	}
	item := s.items[index]
	plugin := s.plugin
	f := s.field
	start := s.slashOffset
	end := f.Cursor()
	m.closeLocked()
	m.mu.Unlock()

	// Outside the lock: Select mutates the field, whose change event
	// re-enters HandleInput.
	m.callSelect(plugin, item, f, start, end)
	return true
}

// =============================================================================
// SETTINGS
// =============================================================================

// OpenSettings suspends the active view under the shared settings
// panel. The prior view is restored exactly when settings close.
func (m *Machine) OpenSettings() {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || s.state == StateSettings {
		return
	}
	s.savedState = s.state
	s.state = StateSettings
	m.surface.SetHeader("Settings", "")
	m.surface.RenderSettings(m.settingsSections())
}

// CloseSettings restores the view that was active before settings
// opened.
func (m *Machine) CloseSettings() {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session
	if s == nil || s.state != StateSettings {
		return
	}
	s.state = s.savedState
	m.surface.SetHeader(s.title, s.subtitle)
	m.render(s, s.lastView)
	if s.lastView.kind == viewItems {
		m.surface.SetSelected(s.selected)
	}
}

func (m *Machine) settingsSections() []string {
	var sections []string
	for _, p := range m.reg.Visible() {
		if sp, ok := p.(command.SettingsPanel); ok {
			sections = append(sections, sp.Settings())
		}
	}
	return sections
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Close hides the picker and disposes the session, if any.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Machine) closeLocked() {
	s := m.session
	if s == nil {
		return
	}
	s.dispose()
	m.session = nil
	m.surface.Hide()
	m.log.Debug("session closed", "id", s.id)
}

// =============================================================================
// INTROSPECTION
// =============================================================================

// State returns the current machine state, StateIdle when no session
// is open.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return StateIdle
	}
	return m.session.state
}

// Active returns the name of the command driving the picker, or "".
func (m *Machine) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.pluginName
}

// Selected returns the selected result index, -1 when idle.
func (m *Machine) Selected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return -1
	}
	return m.session.selected
}

// =============================================================================
// RENDERING
// =============================================================================

// render applies a view to the surface and records it as the session's
// last view so settings can restore it. Caller holds the machine mutex.
func (m *Machine) render(s *session, v view) {
	s.lastView = v
	if s.state == StateSettings {
		// The settings panel owns the surface until CloseSettings.
		return
	}
	switch v.kind {
	case viewLoading:
		m.surface.RenderLoading()
	case viewMessage:
		m.surface.RenderMessage(v.message)
	case viewItems:
		m.surface.RenderItems(v.items, v.columns, v.suggest, v.suggestTitle)
	case viewSetup:
		m.surface.RenderSetup(v.message)
	}
}

// =============================================================================
// GUARDED PLUGIN CALLS
// =============================================================================

// Every plugin hook is called through a recover guard: one broken
// plugin must never take down the host.

func (m *Machine) callPreflight(p command.Plugin) (pf command.Preflight, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin panic: %v", r)
		}
	}()
	return p.Preflight(m.ctx)
}

func (m *Machine) callEmptyState(p command.Plugin) (res command.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin panic: %v", r)
		}
	}()
	return p.EmptyState(m.ctx)
}

func (m *Machine) callSearch(p command.Plugin, q string) (res command.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin panic: %v", r)
		}
	}()
	return p.Search(m.ctx, q)
}

func (m *Machine) callSuggest(sg command.Suggester, q string) (out []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin panic: %v", r)
		}
	}()
	return sg.Suggest(m.ctx, q)
}

func (m *Machine) callSelect(p command.Plugin, item command.Item, f field.Editor, start, end int) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("select panicked", "command", p.Name(), "panic", r)
		}
	}()
	p.Select(item, f, start, end)
}
