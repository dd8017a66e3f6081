// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command provides the slash command core for slashdeck.
package command

import (
	"context"
	"reflect"
	"testing"

	"github.com/jeranaias/slashdeck/internal/field"
)

// stubPlugin is a minimal Plugin for registry tests.
type stubPlugin struct {
	name string
}

func (p *stubPlugin) Name() string        { return p.name }
func (p *stubPlugin) Description() string { return "stub" }
func (p *stubPlugin) Preflight(ctx context.Context) (Preflight, error) {
	return Preflight{}, nil
}
func (p *stubPlugin) EmptyState(ctx context.Context) (Result, error) {
	return Result{}, nil
}
func (p *stubPlugin) Search(ctx context.Context, query string) (Result, error) {
	return Result{}, nil
}
func (p *stubPlugin) Select(item Item, f field.Editor, slashOffset, end int) {}
func (p *stubPlugin) Columns() int                                          { return 0 }

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	giphy := &stubPlugin{name: "giphy"}
	r.Register(giphy)

	if got := r.Get("giphy"); got != Plugin(giphy) {
		t.Errorf("Get(giphy) = %v, want the registered plugin", got)
	}
	if got := r.Get("GIPHY"); got != Plugin(giphy) {
		t.Errorf("Get is case sensitive, want case-insensitive lookup")
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
}

func TestRegistryLastWriterWins(t *testing.T) {
	r := NewRegistry()
	first := &stubPlugin{name: "emoji"}
	second := &stubPlugin{name: "emoji"}

	r.Register(first)
	r.Register(second)

	if got := r.Get("emoji"); got != Plugin(second) {
		t.Errorf("duplicate registration should overwrite, got %v", got)
	}
}

func TestRegistryInternalHiddenFromNames(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubPlugin{name: "giphy"})
	r.Register(&stubPlugin{name: "emoji"})
	r.Register(&stubPlugin{name: InternalPrefix + "commands"})

	want := []string{"emoji", "giphy"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	// Internal plugins stay addressable by exact name.
	if got := r.Get(InternalPrefix + "commands"); got == nil {
		t.Error("internal plugin should be addressable by exact name")
	}
}

func TestRegistryVisibleSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubPlugin{name: "linker"})
	r.Register(&stubPlugin{name: "checks"})
	r.Register(&stubPlugin{name: "emoji"})

	visible := r.Visible()
	if len(visible) != 3 {
		t.Fatalf("Visible() returned %d plugins, want 3", len(visible))
	}
	for i, want := range []string{"checks", "emoji", "linker"} {
		if visible[i].Name() != want {
			t.Errorf("Visible()[%d] = %s, want %s", i, visible[i].Name(), want)
		}
	}
}
