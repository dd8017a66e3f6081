// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/slashdeck/internal/api"
	"github.com/jeranaias/slashdeck/internal/cache"
	"github.com/jeranaias/slashdeck/internal/config"
)

const giphyListJSON = `{"data":[{"id":"g1","title":"Happy Cat","images":{
	"original":{"url":"https://media.test/g1.gif","width":"480","height":"270"},
	"fixed_width_small":{"url":"https://media.test/g1-small.gif"}}}]}`

func testGiphy(t *testing.T, handler http.HandlerFunc, withCache bool) *Giphy {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var store *cache.Store
	if withCache {
		var err error
		store, err = cache.Open(filepath.Join(t.TempDir(), "cache.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
	}

	cfg := config.Default()
	cfg.Giphy.APIKey = "test-key"
	return NewGiphy(cfg, store, api.WithGiphyBaseURL(srv.URL))
}

func TestGiphyPreflightWithoutKey(t *testing.T) {
	g := NewGiphy(config.Default(), nil)

	pf, err := g.Preflight(context.Background())
	require.NoError(t, err)
	assert.True(t, pf.ShowSetup)
	assert.Contains(t, pf.Message, "SLASHDECK_GIPHY_KEY")
}

func TestGiphyPreflightAfterConfigReload(t *testing.T) {
	g := NewGiphy(config.Default(), nil)

	pf, err := g.Preflight(context.Background())
	require.NoError(t, err)
	require.True(t, pf.ShowSetup)

	cfg := config.Default()
	cfg.Giphy.APIKey = "fresh-key"
	g.UpdateConfig(cfg)

	pf, err = g.Preflight(context.Background())
	require.NoError(t, err)
	assert.False(t, pf.ShowSetup)
}

func TestGiphySearchBuildsMarkdown(t *testing.T) {
	g := testGiphy(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/gifs/search", r.URL.Path)
		w.Write([]byte(giphyListJSON))
	}, false)

	res, err := g.Search(context.Background(), "cats")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	item := res.Items[0]
	assert.Equal(t, "g1", item.ID)
	assert.Equal(t, "Happy Cat", item.Title)
	assert.Equal(t, "https://media.test/g1-small.gif", item.Preview)
	assert.Equal(t, "![Happy Cat](https://media.test/g1.gif)", item.Insert)
}

func TestGiphySearchCached(t *testing.T) {
	var hits atomic.Int32
	g := testGiphy(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(giphyListJSON))
	}, true)

	for i := 0; i < 3; i++ {
		res, err := g.Search(context.Background(), "cats")
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
	}

	assert.Equal(t, int32(1), hits.Load())
}

func TestGiphyEmptyStateTrendingWithSuggest(t *testing.T) {
	g := testGiphy(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/gifs/trending", r.URL.Path)
		w.Write([]byte(giphyListJSON))
	}, false)

	res, err := g.EmptyState(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, giphySuggest, res.Suggest)
	assert.Equal(t, "Try", res.SuggestTitle)
}

func TestGiphyAuthErrorIsVerbatim(t *testing.T) {
	g := testGiphy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, false)

	res, err := g.Search(context.Background(), "cats")
	require.NoError(t, err)
	assert.Equal(t, "Giphy rejected the API key", res.Err)
}

func TestGiphyServerErrorPropagates(t *testing.T) {
	g := testGiphy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, false)

	_, err := g.Search(context.Background(), "cats")
	assert.Error(t, err)
}
