// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP clients the built-in plugins talk to.
package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiphySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/gifs/search", r.URL.Path)
		assert.Equal(t, "cats", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "g", r.URL.Query().Get("rating"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"abc","title":"funny cat","images":{
			"original":{"url":"https://g/abc.gif","width":"480","height":"270"},
			"fixed_width_small":{"url":"https://g/abc_s.gif"}}}]}`))
	}))
	defer srv.Close()

	c := NewGiphyClient("test-key", WithGiphyBaseURL(srv.URL))
	gifs, err := c.Search(context.Background(), "cats", 10)
	require.NoError(t, err)
	require.Len(t, gifs, 1)

	assert.Equal(t, "abc", gifs[0].ID)
	assert.Equal(t, "funny cat", gifs[0].Title)
	assert.Equal(t, "https://g/abc.gif", gifs[0].URL)
	assert.Equal(t, "https://g/abc_s.gif", gifs[0].Preview)
	assert.Equal(t, 480, gifs[0].Width)
	assert.Equal(t, 270, gifs[0].Height)
}

func TestGiphySearchTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/gifs/search/tags", r.URL.Path)
		w.Write([]byte(`{"data":[{"name":"cat memes"},{"name":"cat fails"}]}`))
	}))
	defer srv.Close()

	c := NewGiphyClient("k", WithGiphyBaseURL(srv.URL))
	tags, err := c.SearchTags(context.Background(), "cat", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat memes", "cat fails"}, tags)
}

func TestGiphyAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewGiphyClient("bad-key", WithGiphyBaseURL(srv.URL))
	_, err := c.Trending(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuth))
}

func TestGiphyInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewGiphyClient("k", WithGiphyBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "x", 1)
	require.Error(t, err)

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrTypeInvalidResponse, ce.Type)
}

func TestGitHubListArtifacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/actions/artifacts", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "coverage", r.URL.Query().Get("name"))

		w.Write([]byte(`{"artifacts":[{"id":7,"name":"coverage","size_in_bytes":1024,
			"expired":false,"created_at":"2025-05-01T10:00:00Z","workflow_run":{"id":42}}]}`))
	}))
	defer srv.Close()

	c := NewGitHubClient("tok", WithGitHubBaseURL(srv.URL))
	arts, err := c.ListArtifacts(context.Background(), "acme", "widgets", "coverage")
	require.NoError(t, err)
	require.Len(t, arts, 1)

	assert.Equal(t, int64(7), arts[0].ID)
	assert.Equal(t, "coverage", arts[0].Name)
	assert.Equal(t, int64(1024), arts[0].SizeBytes)
	assert.Equal(t, "https://github.com/acme/widgets/actions/runs/42/artifacts/7", arts[0].URL)
}

func TestGitHubListWorkflowRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/actions/runs", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Write([]byte(`{"workflow_runs":[
			{"id":900,"name":"CI","status":"completed","head_branch":"main"},
			{"id":899,"name":"Release","status":"in_progress","head_branch":"v2"}
		]}`))
	}))
	defer srv.Close()

	c := NewGitHubClient("tok", WithGitHubBaseURL(srv.URL))
	runs, err := c.ListWorkflowRuns(context.Background(), "acme", "widgets")
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, int64(900), runs[0].ID)
	assert.Equal(t, "CI", runs[0].Name)
	assert.Equal(t, "completed", runs[0].Status)
	assert.Equal(t, "v2", runs[1].Branch)
}

func TestGitHubAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewGitHubClient("", WithGitHubBaseURL(srv.URL))
	_, err := c.ListArtifacts(context.Background(), "a", "b", "")
	assert.True(t, errors.Is(err, ErrAuth))
}
