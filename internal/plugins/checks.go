// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugins

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/slashdeck/internal/api"
	"github.com/jeranaias/slashdeck/internal/cache"
	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/config"
	"github.com/jeranaias/slashdeck/internal/field"
)

// =============================================================================
// CHECKS
// =============================================================================

// Checks is the CI artifact search command. Lists workflow artifacts for
// the configured repository, needs a GitHub token, results cached.
type Checks struct {
	mu     sync.Mutex
	client *api.GitHubClient
	token  string
	owner  string
	repo   string

	store *cache.Store
	ttl   time.Duration
}

// NewChecks creates the checks plugin from the given configuration.
// store may be nil to disable caching.
func NewChecks(cfg *config.Config, store *cache.Store) *Checks {
	c := &Checks{store: store}
	c.UpdateConfig(cfg)
	return c
}

// UpdateConfig applies a (re)loaded configuration. Called by the config
// watcher so a token added during the setup flow takes effect without a
// restart.
func (c *Checks) UpdateConfig(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = cfg.GitHub.Token
	c.ttl = time.Duration(cfg.Cache.TTLHours) * time.Hour

	c.owner, c.repo = "", ""
	if owner, repo, found := strings.Cut(cfg.GitHub.Repository, "/"); found {
		c.owner, c.repo = owner, repo
	}

	if c.token != "" {
		c.client = api.NewGitHubClient(c.token, api.WithGitHubBaseURL(cfg.GitHub.APIURL))
	} else {
		c.client = nil
	}
}

func (c *Checks) snapshot() (client *api.GitHubClient, owner, repo string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client, c.owner, c.repo, c.ttl
}

// Name implements command.Plugin.
func (c *Checks) Name() string { return "checks" }

// Description implements command.Plugin.
func (c *Checks) Description() string { return "Link a CI workflow artifact" }

// Preflight reports setup when the token or repository is missing.
func (c *Checks) Preflight(ctx context.Context) (command.Preflight, error) {
	client, owner, repo, _ := c.snapshot()
	if client == nil {
		return command.Preflight{
			ShowSetup: true,
			Message: "Add a GitHub token: set github.token in ~/.slashdeck/config.toml " +
				"or export SLASHDECK_GITHUB_TOKEN.",
		}, nil
	}
	if owner == "" || repo == "" {
		return command.Preflight{
			ShowSetup: true,
			Message: "Set the repository to search: github.repository = \"owner/repo\" " +
				"in ~/.slashdeck/config.toml or export SLASHDECK_REPO.",
		}, nil
	}
	return command.Preflight{}, nil
}

// EmptyState lists the most recent artifacts.
func (c *Checks) EmptyState(ctx context.Context) (command.Result, error) {
	return c.lookup(ctx, "")
}

// Search filters artifacts by name.
func (c *Checks) Search(ctx context.Context, query string) (command.Result, error) {
	return c.lookup(ctx, query)
}

func (c *Checks) lookup(ctx context.Context, query string) (command.Result, error) {
	client, owner, repo, ttl := c.snapshot()
	if client == nil || owner == "" || repo == "" {
		return command.Result{Err: "GitHub is not configured"}, nil
	}

	cacheKey := owner + "/" + repo + "\x00" + query
	if items, ok := cachedItems(c.store, c.Name(), cacheKey, ttl); ok {
		return command.Result{Items: items}, nil
	}

	artifacts, err := client.ListArtifacts(ctx, owner, repo, query)
	if err != nil {
		return checksError(err)
	}
	items := artifactItems(artifacts)
	storeItems(c.store, c.Name(), cacheKey, items)
	return command.Result{Items: items, SuggestTitle: "Workflows"}, nil
}

// Suggest implements command.Suggester with recent workflow names.
func (c *Checks) Suggest(ctx context.Context, query string) ([]string, error) {
	client, owner, repo, _ := c.snapshot()
	if client == nil || owner == "" || repo == "" {
		return nil, nil
	}

	runs, err := client.ListWorkflowRuns(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, run := range runs {
		if run.Name == "" || seen[run.Name] {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(run.Name), strings.ToLower(query)) {
			continue
		}
		seen[run.Name] = true
		names = append(names, run.Name)
		if len(names) == 5 {
			break
		}
	}
	return names, nil
}

func artifactItems(artifacts []api.Artifact) []command.Item {
	items := make([]command.Item, 0, len(artifacts))
	for _, a := range artifacts {
		if a.Expired {
			continue
		}
		items = append(items, command.Item{
			ID:      a.Name,
			Title:   a.Name,
			Preview: humanSize(a.SizeBytes) + " · " + a.CreatedAt.Format("Jan 2"),
			Insert:  "[" + a.Name + "](" + a.URL + ")",
		})
	}
	return items
}

// humanSize renders a byte count the way GitHub's artifact list does.
func humanSize(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case n >= gb:
		return itoa(n/gb) + " GB"
	case n >= mb:
		return itoa(n/mb) + " MB"
	case n >= kb:
		return itoa(n/kb) + " KB"
	default:
		return itoa(n) + " B"
	}
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// checksError maps known API failures to user-facing messages; anything
// else propagates and renders generically.
func checksError(err error) (command.Result, error) {
	switch {
	case errors.Is(err, api.ErrAuth):
		return command.Result{Err: "GitHub rejected the token"}, nil
	case errors.Is(err, api.ErrRateLimited):
		return command.Result{Err: "GitHub rate limit hit, try again shortly"}, nil
	default:
		return command.Result{}, err
	}
}

// Select replaces the trigger with the artifact link markdown.
func (c *Checks) Select(item command.Item, f field.Editor, slashOffset, end int) {
	field.ReplaceRange(f, slashOffset, end, item.Insert)
}

// Columns implements command.Plugin; artifacts render flat.
func (c *Checks) Columns() int { return 0 }

// NoResultsMessage implements command.NoResultsMessenger.
func (c *Checks) NoResultsMessage() string { return "No artifacts found" }

// Settings implements command.SettingsPanel.
func (c *Checks) Settings() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return "GitHub: no token configured"
	}
	if c.owner == "" {
		return "GitHub: token configured, no repository set"
	}
	return "GitHub: " + c.owner + "/" + c.repo
}
