// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP clients the built-in plugins talk to.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// GIPHY CLIENT
// =============================================================================

// DefaultGiphyURL is the production Giphy API endpoint.
const DefaultGiphyURL = "https://api.giphy.com"

// GIF is a single Giphy search result.
type GIF struct {
	ID      string
	Title   string
	URL     string // full-size gif url
	Preview string // small preview url
	Width   int
	Height  int
}

// GiphyClient talks to the Giphy REST API.
type GiphyClient struct {
	baseURL string
	apiKey  string
	rating  string
	http    *http.Client
	limiter *rate.Limiter
}

// GiphyOption configures a GiphyClient.
type GiphyOption func(*GiphyClient)

// WithGiphyBaseURL overrides the API endpoint (tests).
func WithGiphyBaseURL(u string) GiphyOption {
	return func(c *GiphyClient) { c.baseURL = u }
}

// WithGiphyRating sets the content rating filter (default "g").
func WithGiphyRating(r string) GiphyOption {
	return func(c *GiphyClient) { c.rating = r }
}

// WithGiphyHTTPClient overrides the underlying HTTP client.
func WithGiphyHTTPClient(h *http.Client) GiphyOption {
	return func(c *GiphyClient) { c.http = h }
}

// NewGiphyClient creates a client with the given API key. Requests are
// rate limited to 4/s with a small burst, well under Giphy's free-tier
// quota.
func NewGiphyClient(apiKey string, opts ...GiphyOption) *GiphyClient {
	c := &GiphyClient{
		baseURL: DefaultGiphyURL,
		apiKey:  apiKey,
		rating:  "g",
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(4), 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// giphy wire types, reduced to the fields budgeted for.
type giphyListResponse struct {
	Data []struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Images struct {
			Original struct {
				URL    string `json:"url"`
				Width  string `json:"width"`
				Height string `json:"height"`
			} `json:"original"`
			FixedWidthSmall struct {
				URL string `json:"url"`
			} `json:"fixed_width_small"`
		} `json:"images"`
	} `json:"data"`
}

type giphyTermResponse struct {
	Data []struct {
		Name string `json:"name"`
	} `json:"data"`
}

// Search returns GIFs matching the query.
func (c *GiphyClient) Search(ctx context.Context, query string, limit int) ([]GIF, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", itoa(limit))
	return c.listGIFs(ctx, "/v1/gifs/search", q)
}

// Trending returns the current trending GIFs, the zero-query default.
func (c *GiphyClient) Trending(ctx context.Context, limit int) ([]GIF, error) {
	q := url.Values{}
	q.Set("limit", itoa(limit))
	return c.listGIFs(ctx, "/v1/gifs/trending", q)
}

// SearchTags returns autocomplete terms for a partial query.
func (c *GiphyClient) SearchTags(ctx context.Context, query string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", itoa(limit))

	var resp giphyTermResponse
	if err := c.get(ctx, "/v1/gifs/search/tags", q, &resp); err != nil {
		return nil, err
	}
	terms := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		terms = append(terms, d.Name)
	}
	return terms, nil
}

func (c *GiphyClient) listGIFs(ctx context.Context, path string, q url.Values) ([]GIF, error) {
	var resp giphyListResponse
	if err := c.get(ctx, path, q, &resp); err != nil {
		return nil, err
	}

	gifs := make([]GIF, 0, len(resp.Data))
	for _, d := range resp.Data {
		gifs = append(gifs, GIF{
			ID:      d.ID,
			Title:   d.Title,
			URL:     d.Images.Original.URL,
			Preview: d.Images.FixedWidthSmall.URL,
			Width:   atoi(d.Images.Original.Width),
			Height:  atoi(d.Images.Original.Height),
		})
	}
	return gifs, nil
}

func (c *GiphyClient) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return connectionError(err)
	}

	q.Set("api_key", c.apiKey)
	q.Set("rating", c.rating)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return connectionError(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return connectionError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return &ClientError{Type: ErrTypeUnknown, Message: "unexpected status " + resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return invalidResponse(err)
	}
	return nil
}
