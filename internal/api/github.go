// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP clients the built-in plugins talk to.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// GITHUB CLIENT
// =============================================================================

// DefaultGitHubURL is the production GitHub REST endpoint.
const DefaultGitHubURL = "https://api.github.com"

// Artifact is a CI workflow artifact.
type Artifact struct {
	ID        int64
	Name      string
	SizeBytes int64
	URL       string // browser download url
	CreatedAt time.Time
	Expired   bool
}

// WorkflowRun is a single CI workflow execution.
type WorkflowRun struct {
	ID     int64
	Name   string
	Status string
	Branch string
}

// GitHubClient talks to the GitHub REST API.
type GitHubClient struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// GitHubOption configures a GitHubClient.
type GitHubOption func(*GitHubClient)

// WithGitHubBaseURL overrides the API endpoint (tests, GHES).
func WithGitHubBaseURL(u string) GitHubOption {
	return func(c *GitHubClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithGitHubHTTPClient overrides the underlying HTTP client.
func WithGitHubHTTPClient(h *http.Client) GitHubOption {
	return func(c *GitHubClient) { c.http = h }
}

// NewGitHubClient creates a client authenticating with token.
func NewGitHubClient(token string, opts ...GitHubOption) *GitHubClient {
	c := &GitHubClient{
		baseURL: DefaultGitHubURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(2), 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type githubArtifactsResponse struct {
	Artifacts []struct {
		ID          int64     `json:"id"`
		Name        string    `json:"name"`
		SizeInBytes int64     `json:"size_in_bytes"`
		Expired     bool      `json:"expired"`
		CreatedAt   time.Time `json:"created_at"`
		WorkflowRun struct {
			ID int64 `json:"id"`
		} `json:"workflow_run"`
	} `json:"artifacts"`
}

// ListArtifacts returns recent artifacts for owner/repo, newest first.
// name filters by substring match when non-empty.
func (c *GitHubClient) ListArtifacts(ctx context.Context, owner, repo, name string) ([]Artifact, error) {
	q := url.Values{}
	q.Set("per_page", "50")
	if name != "" {
		q.Set("name", name)
	}

	var resp githubArtifactsResponse
	path := "/repos/" + owner + "/" + repo + "/actions/artifacts"
	if err := c.get(ctx, path, q, &resp); err != nil {
		return nil, err
	}

	artifacts := make([]Artifact, 0, len(resp.Artifacts))
	for _, a := range resp.Artifacts {
		artifacts = append(artifacts, Artifact{
			ID:        a.ID,
			Name:      a.Name,
			SizeBytes: a.SizeInBytes,
			Expired:   a.Expired,
			CreatedAt: a.CreatedAt,
			URL: "https://github.com/" + owner + "/" + repo +
				"/actions/runs/" + itoa64(a.WorkflowRun.ID) + "/artifacts/" + itoa64(a.ID),
		})
	}
	return artifacts, nil
}

type githubRunsResponse struct {
	WorkflowRuns []struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		Status     string `json:"status"`
		HeadBranch string `json:"head_branch"`
	} `json:"workflow_runs"`
}

// ListWorkflowRuns returns recent workflow runs for owner/repo, newest
// first.
func (c *GitHubClient) ListWorkflowRuns(ctx context.Context, owner, repo string) ([]WorkflowRun, error) {
	q := url.Values{}
	q.Set("per_page", "20")

	var resp githubRunsResponse
	path := "/repos/" + owner + "/" + repo + "/actions/runs"
	if err := c.get(ctx, path, q, &resp); err != nil {
		return nil, err
	}

	runs := make([]WorkflowRun, 0, len(resp.WorkflowRuns))
	for _, r := range resp.WorkflowRuns {
		runs = append(runs, WorkflowRun{
			ID:     r.ID,
			Name:   r.Name,
			Status: r.Status,
			Branch: r.HeadBranch,
		})
	}
	return runs, nil
}

func (c *GitHubClient) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return connectionError(err)
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return connectionError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
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
