// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command provides the slash command core for slashdeck.
package command

import (
	"sort"
	"strings"
	"sync"

	"github.com/jeranaias/slashdeck/internal/logging"
)

// InternalPrefix marks plugins that are addressable by exact name but
// excluded from command listings (e.g. the command-list pseudo-command).
const InternalPrefix = "_"

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is the process-wide table mapping command name to plugin.
// Registration normally happens once at startup; re-registering a name
// overwrites the previous entry (last writer wins) so tests can install
// doubles, and logs a warning when it happens.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin under its own name.
func (r *Registry) Register(p Plugin) {
	name := strings.ToLower(p.Name())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		logging.Warn("command re-registered", "name", name)
	}
	r.plugins[name] = p
}

// Get returns the plugin registered under name, or nil. Lookup is by
// exact name and includes internal plugins.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plugins[strings.ToLower(name)]
}

// Names returns the visible command names, sorted. Internal plugins
// are excluded.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		if strings.HasPrefix(name, InternalPrefix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Visible returns the visible plugins sorted by name.
func (r *Registry) Visible() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugins := make([]Plugin, 0, len(r.plugins))
	for name, p := range r.plugins {
		if strings.HasPrefix(name, InternalPrefix) {
			continue
		}
		plugins = append(plugins, p)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name() < plugins[j].Name()
	})
	return plugins
}
