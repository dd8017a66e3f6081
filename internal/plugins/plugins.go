// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugins

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/slashdeck/internal/cache"
	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/config"
)

// =============================================================================
// REGISTRATION
// =============================================================================

// ConfigReloader is implemented by commands that rebuild their API
// clients when the configuration changes on disk.
type ConfigReloader interface {
	UpdateConfig(cfg *config.Config)
}

// RegisterBuiltins registers every built-in command against reg and
// returns the ones that react to configuration reloads. store may be
// nil to disable result caching.
func RegisterBuiltins(reg *command.Registry, cfg *config.Config, store *cache.Store) []ConfigReloader {
	giphy := NewGiphy(cfg, store)
	checks := NewChecks(cfg, store)

	reg.Register(NewCommandList(reg))
	reg.Register(NewEmoji())
	reg.Register(NewLinker())
	reg.Register(giphy)
	reg.Register(checks)

	return []ConfigReloader{giphy, checks}
}

// =============================================================================
// RESULT CACHING HELPERS
// =============================================================================

// cachedItems looks up a previously stored item list. A decode failure
// is treated as a miss.
func cachedItems(store *cache.Store, cmd, query string, maxAge time.Duration) ([]command.Item, bool) {
	if store == nil {
		return nil, false
	}
	payload, ok := store.Get(cmd, query, maxAge)
	if !ok {
		return nil, false
	}
	var items []command.Item
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false
	}
	return items, true
}

// storeItems persists an item list for later lookups. Failures are
// ignored: the cache is an optimization, not a source of truth.
func storeItems(store *cache.Store, cmd, query string, items []command.Item) {
	if store == nil || len(items) == 0 {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = store.Put(cmd, query, payload)
}
