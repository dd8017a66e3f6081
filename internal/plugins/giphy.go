// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugins

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jeranaias/slashdeck/internal/api"
	"github.com/jeranaias/slashdeck/internal/cache"
	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/config"
	"github.com/jeranaias/slashdeck/internal/field"
)

// =============================================================================
// GIPHY
// =============================================================================

const giphyFetchLimit = 24

// giphySuggest feeds the zero-query suggestion chips.
var giphySuggest = []string{"thumbs up", "celebrate", "facepalm", "shipit"}

// Giphy is the GIF search command. Grid view, needs an API key, results
// cached by query.
type Giphy struct {
	mu      sync.Mutex
	client  *api.GiphyClient
	apiKey  string
	columns int
	opts    []api.GiphyOption

	store *cache.Store
	ttl   time.Duration
}

// NewGiphy creates the gif plugin from the given configuration. store
// may be nil to disable caching. opts are reapplied to the client on
// every config reload (tests override the endpoint this way).
func NewGiphy(cfg *config.Config, store *cache.Store, opts ...api.GiphyOption) *Giphy {
	g := &Giphy{store: store, opts: opts}
	g.UpdateConfig(cfg)
	return g
}

// UpdateConfig applies a (re)loaded configuration. Called by the config
// watcher so a key added during the setup flow takes effect without a
// restart.
func (g *Giphy) UpdateConfig(cfg *config.Config) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.apiKey = cfg.Giphy.APIKey
	g.columns = cfg.Picker.GridColumns
	g.ttl = time.Duration(cfg.Cache.TTLHours) * time.Hour
	if g.apiKey != "" {
		opts := append([]api.GiphyOption{api.WithGiphyRating(cfg.Giphy.Rating)}, g.opts...)
		g.client = api.NewGiphyClient(g.apiKey, opts...)
	} else {
		g.client = nil
	}
}

func (g *Giphy) snapshot() (client *api.GiphyClient, ttl time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.client, g.ttl
}

// Name implements command.Plugin.
func (g *Giphy) Name() string { return "gif" }

// Description implements command.Plugin.
func (g *Giphy) Description() string { return "Search Giphy for a GIF" }

// Preflight reports setup when no API key is configured.
func (g *Giphy) Preflight(ctx context.Context) (command.Preflight, error) {
	client, _ := g.snapshot()
	if client == nil {
		return command.Preflight{
			ShowSetup: true,
			Message: "Add a Giphy API key: set giphy.api_key in ~/.slashdeck/config.toml " +
				"or export SLASHDECK_GIPHY_KEY.",
		}, nil
	}
	return command.Preflight{}, nil
}

// EmptyState returns trending GIFs plus starter suggestion chips.
func (g *Giphy) EmptyState(ctx context.Context) (command.Result, error) {
	client, ttl := g.snapshot()
	if client == nil {
		return command.Result{Err: "Giphy is not configured"}, nil
	}

	if items, ok := cachedItems(g.store, g.Name(), "", ttl); ok {
		return command.Result{Items: items, Suggest: giphySuggest, SuggestTitle: "Try"}, nil
	}

	gifs, err := client.Trending(ctx, giphyFetchLimit)
	if err != nil {
		return giphyError(err)
	}
	items := gifItems(gifs)
	storeItems(g.store, g.Name(), "", items)
	return command.Result{Items: items, Suggest: giphySuggest, SuggestTitle: "Try"}, nil
}

// Search returns GIFs for the query, serving repeats from the cache.
func (g *Giphy) Search(ctx context.Context, query string) (command.Result, error) {
	client, ttl := g.snapshot()
	if client == nil {
		return command.Result{Err: "Giphy is not configured"}, nil
	}

	if items, ok := cachedItems(g.store, g.Name(), query, ttl); ok {
		return command.Result{Items: items}, nil
	}

	gifs, err := client.Search(ctx, query, giphyFetchLimit)
	if err != nil {
		return giphyError(err)
	}
	items := gifItems(gifs)
	storeItems(g.store, g.Name(), query, items)
	return command.Result{Items: items}, nil
}

// Suggest implements command.Suggester via Giphy tag autocomplete.
func (g *Giphy) Suggest(ctx context.Context, query string) ([]string, error) {
	client, _ := g.snapshot()
	if client == nil {
		return nil, nil
	}
	return client.SearchTags(ctx, query, 5)
}

func gifItems(gifs []api.GIF) []command.Item {
	items := make([]command.Item, 0, len(gifs))
	for _, gif := range gifs {
		title := gif.Title
		if title == "" {
			title = "gif"
		}
		items = append(items, command.Item{
			ID:      gif.ID,
			Title:   title,
			Preview: gif.Preview,
			Insert:  "![" + title + "](" + gif.URL + ")",
		})
	}
	return items
}

// giphyError maps known API failures to user-facing messages; anything
// else propagates and renders generically.
func giphyError(err error) (command.Result, error) {
	switch {
	case errors.Is(err, api.ErrAuth):
		return command.Result{Err: "Giphy rejected the API key"}, nil
	case errors.Is(err, api.ErrRateLimited):
		return command.Result{Err: "Giphy rate limit hit, try again shortly"}, nil
	default:
		return command.Result{}, err
	}
}

// Select replaces the trigger with the image markdown.
func (g *Giphy) Select(item command.Item, f field.Editor, slashOffset, end int) {
	field.ReplaceRange(f, slashOffset, end, item.Insert)
}

// Columns implements command.Plugin; GIFs render in a grid.
func (g *Giphy) Columns() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.columns > 0 {
		return g.columns
	}
	return 3
}

// NoResultsMessage implements command.NoResultsMessenger.
func (g *Giphy) NoResultsMessage() string { return "No GIFs found" }

// Settings implements command.SettingsPanel.
func (g *Giphy) Settings() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.apiKey == "" {
		return "Giphy: no API key configured"
	}
	return "Giphy: API key configured"
}
