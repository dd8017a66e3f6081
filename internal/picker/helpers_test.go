// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker provides the active-command state machine for slashdeck.
package picker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/field"
)

// testOptions keeps debounce windows short so tests stay fast.
func testOptions() Options {
	return Options{
		SearchDelay:  15 * time.Millisecond,
		SuggestDelay: 10 * time.Millisecond,
		MaxItems:     24,
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, desc string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", desc)
}

// settle waits long enough for any pending debounce fire to have run.
func settle() { time.Sleep(80 * time.Millisecond) }

// =============================================================================
// FAKE PLUGIN
// =============================================================================

// fakePlugin is a controllable Plugin for machine tests.
type fakePlugin struct {
	mu sync.Mutex

	name      string
	columns   int
	noResults string

	preflight    command.Preflight
	preflightErr error
	empty        command.Result
	emptyErr     error
	searchFn     func(q string) (command.Result, error)
	suggestFn    func(q string) ([]string, error)

	// blockSearch, when non-nil, makes Search wait until closed.
	blockSearch chan struct{}

	// insert overrides the text written on Select; empty uses the
	// item's Insert field.
	insert string

	preflightCalls int
	emptyCalls     int
	searchCalls    int
	searchQueries  []string
	suggestQueries []string
	selections     []command.Item
}

func newFakePlugin(name string) *fakePlugin {
	return &fakePlugin{
		name: name,
		empty: command.Result{
			Items: []command.Item{{ID: "e1", Title: "default", Insert: "default"}},
		},
		searchFn: func(q string) (command.Result, error) {
			return command.Result{
				Items: []command.Item{{ID: "r1", Title: q, Insert: q}},
			}, nil
		},
	}
}

func (p *fakePlugin) Name() string        { return p.name }
func (p *fakePlugin) Description() string { return "fake " + p.name }
func (p *fakePlugin) Columns() int        { return p.columns }

func (p *fakePlugin) Preflight(ctx context.Context) (command.Preflight, error) {
	p.mu.Lock()
	p.preflightCalls++
	pf, err := p.preflight, p.preflightErr
	p.mu.Unlock()
	return pf, err
}

func (p *fakePlugin) EmptyState(ctx context.Context) (command.Result, error) {
	p.mu.Lock()
	p.emptyCalls++
	res, err := p.empty, p.emptyErr
	p.mu.Unlock()
	return res, err
}

func (p *fakePlugin) Search(ctx context.Context, query string) (command.Result, error) {
	p.mu.Lock()
	p.searchCalls++
	p.searchQueries = append(p.searchQueries, query)
	block := p.blockSearch
	fn := p.searchFn
	p.mu.Unlock()

	if block != nil {
		<-block
	}
	return fn(query)
}

func (p *fakePlugin) Suggest(ctx context.Context, query string) ([]string, error) {
	p.mu.Lock()
	p.suggestQueries = append(p.suggestQueries, query)
	fn := p.suggestFn
	p.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(query)
}

func (p *fakePlugin) Select(item command.Item, f field.Editor, slashOffset, end int) {
	p.mu.Lock()
	p.selections = append(p.selections, item)
	text := p.insert
	p.mu.Unlock()

	if text == "" {
		text = item.Insert
	}
	field.ReplaceRange(f, slashOffset, end, text)
}

func (p *fakePlugin) NoResultsMessage() string { return p.noResults }

func (p *fakePlugin) counts() (preflight, empty, search int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.preflightCalls, p.emptyCalls, p.searchCalls
}

func (p *fakePlugin) queries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.searchQueries))
	copy(out, p.searchQueries)
	return out
}

func (p *fakePlugin) suggested() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.suggestQueries))
	copy(out, p.suggestQueries)
	return out
}

// =============================================================================
// FAKE SURFACE
// =============================================================================

// fakeSurface records what the machine renders.
type fakeSurface struct {
	mu sync.Mutex

	visible  bool
	title    string
	subtitle string
	kind     string
	message  string
	items    []command.Item
	columns  int
	suggest  []string
	selected int
	shows    int
	hides    int
}

func (s *fakeSurface) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = true
	s.shows++
}

func (s *fakeSurface) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
	s.hides++
}

func (s *fakeSurface) SetHeader(title, subtitle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title, s.subtitle = title, subtitle
}

func (s *fakeSurface) RenderLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = "loading"
}

func (s *fakeSurface) RenderMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind, s.message = "message", text
}

func (s *fakeSurface) RenderItems(items []command.Item, columns int, suggest []string, suggestTitle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = "items"
	s.items = items
	s.columns = columns
	s.suggest = suggest
}

func (s *fakeSurface) RenderSetup(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind, s.message = "setup", message
}

func (s *fakeSurface) RenderSettings(sections []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = "settings"
}

func (s *fakeSurface) SetSelected(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = index
}

func (s *fakeSurface) snapshot() fakeSurface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fakeSurface{
		visible:  s.visible,
		title:    s.title,
		subtitle: s.subtitle,
		kind:     s.kind,
		message:  s.message,
		items:    append([]command.Item(nil), s.items...),
		columns:  s.columns,
		suggest:  append([]string(nil), s.suggest...),
		selected: s.selected,
		shows:    s.shows,
		hides:    s.hides,
	}
}

// =============================================================================
// HARNESS
// =============================================================================

type harness struct {
	reg     *command.Registry
	surface *fakeSurface
	machine *Machine
	buf     *field.Buffer
}

// newHarness wires a buffer, registry, fake surface, and machine the
// way the TUI adapter does: every buffer change re-enters HandleInput.
func newHarness(t *testing.T, plugins ...command.Plugin) *harness {
	t.Helper()

	reg := command.NewRegistry()
	for _, p := range plugins {
		reg.Register(p)
	}
	surface := &fakeSurface{}
	m := New(context.Background(), reg, surface, testOptions())
	buf := field.NewBuffer("")
	buf.OnChange(func() { m.HandleInput(buf) })

	return &harness{reg: reg, surface: surface, machine: m, buf: buf}
}

// typeAll replaces the buffer content wholesale and fires the change
// event, like a paste.
func (h *harness) set(value string) {
	h.buf.SetValue(value)
	h.buf.SetCursor(len(value))
	h.buf.Notify()
}
