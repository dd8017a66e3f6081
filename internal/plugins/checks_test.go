// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/slashdeck/internal/config"
)

const artifactsJSON = `{"artifacts":[
	{"id":11,"name":"coverage-report","size_in_bytes":2097152,"expired":false,
	 "created_at":"2025-06-01T10:00:00Z","workflow_run":{"id":900}},
	{"id":12,"name":"old-build","size_in_bytes":1024,"expired":true,
	 "created_at":"2025-01-01T10:00:00Z","workflow_run":{"id":300}}
]}`

func testChecks(t *testing.T, handler http.HandlerFunc) *Checks {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.GitHub.Token = "test-token"
	cfg.GitHub.APIURL = srv.URL
	cfg.GitHub.Repository = "octo/hello"
	return NewChecks(cfg, nil)
}

func TestChecksPreflightWithoutToken(t *testing.T) {
	c := NewChecks(config.Default(), nil)

	pf, err := c.Preflight(context.Background())
	require.NoError(t, err)
	assert.True(t, pf.ShowSetup)
	assert.Contains(t, pf.Message, "SLASHDECK_GITHUB_TOKEN")
}

func TestChecksPreflightWithoutRepository(t *testing.T) {
	cfg := config.Default()
	cfg.GitHub.Token = "test-token"
	c := NewChecks(cfg, nil)

	pf, err := c.Preflight(context.Background())
	require.NoError(t, err)
	assert.True(t, pf.ShowSetup)
	assert.Contains(t, pf.Message, "github.repository")
}

func TestChecksSearchSkipsExpired(t *testing.T) {
	c := testChecks(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/hello/actions/artifacts", r.URL.Path)
		w.Write([]byte(artifactsJSON))
	})

	res, err := c.Search(context.Background(), "coverage")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	item := res.Items[0]
	assert.Equal(t, "coverage-report", item.Title)
	assert.Contains(t, item.Preview, "2 MB")
	assert.Contains(t, item.Insert, "[coverage-report](https://github.com/octo/hello/actions/runs/900/artifacts/11)")
}

func TestChecksEmptyStateListsRecent(t *testing.T) {
	var hits atomic.Int32
	c := testChecks(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Empty(t, r.URL.Query().Get("name"))
		w.Write([]byte(artifactsJSON))
	})

	res, err := c.EmptyState(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, int32(1), hits.Load())
}

func TestChecksSuggestWorkflows(t *testing.T) {
	c := testChecks(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/hello/actions/runs", r.URL.Path)
		w.Write([]byte(`{"workflow_runs":[
			{"id":900,"name":"CI","status":"completed","head_branch":"main"},
			{"id":899,"name":"CI","status":"completed","head_branch":"main"},
			{"id":898,"name":"Release","status":"completed","head_branch":"v2"}
		]}`))
	})

	names, err := c.Suggest(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"CI", "Release"}, names)

	names, err = c.Suggest(context.Background(), "rel")
	require.NoError(t, err)
	assert.Equal(t, []string{"Release"}, names)
}

func TestChecksSuggestUnconfigured(t *testing.T) {
	c := NewChecks(config.Default(), nil)

	names, err := c.Suggest(context.Background(), "ci")
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestChecksAuthErrorIsVerbatim(t *testing.T) {
	c := testChecks(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	res, err := c.Search(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "GitHub rejected the token", res.Err)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "0 B", humanSize(0))
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "2 KB", humanSize(2048))
	assert.Equal(t, "2 MB", humanSize(2097152))
	assert.Equal(t, "3 GB", humanSize(3<<30))
}
