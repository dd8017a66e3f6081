// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugins

import (
	"context"
	"net/url"
	"strings"

	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/field"
)

// =============================================================================
// LINKER
// =============================================================================

// Linker formats a pasted URL into markdown variants. The query is
// "<url> [title words...]". No setup, no network.
type Linker struct{}

// NewLinker creates the linker plugin.
func NewLinker() *Linker { return &Linker{} }

// Name implements command.Plugin.
func (l *Linker) Name() string { return "link" }

// Description implements command.Plugin.
func (l *Linker) Description() string { return "Format a URL as markdown" }

// Preflight implements command.Plugin. Always ready.
func (l *Linker) Preflight(ctx context.Context) (command.Preflight, error) {
	return command.Preflight{}, nil
}

// EmptyState shows usage hints until a URL is typed.
func (l *Linker) EmptyState(ctx context.Context) (command.Result, error) {
	return command.Result{
		Suggest:      []string{"https://example.com design notes"},
		SuggestTitle: "Paste a URL, optionally followed by a title",
	}, nil
}

// Search builds the markdown variants for the query's URL.
func (l *Linker) Search(ctx context.Context, query string) (command.Result, error) {
	target, title, ok := splitURL(query)
	if !ok {
		return command.Result{}, nil
	}
	if title == "" {
		title = target
	}

	items := []command.Item{
		{
			ID:      "link",
			Title:   "Link",
			Preview: "[" + title + "](" + target + ")",
			Insert:  "[" + title + "](" + target + ")",
		},
		{
			ID:      "image",
			Title:   "Image",
			Preview: "![" + title + "](" + target + ")",
			Insert:  "![" + title + "](" + target + ")",
		},
		{
			ID:      "autolink",
			Title:   "Autolink",
			Preview: "<" + target + ">",
			Insert:  "<" + target + ">",
		},
	}
	return command.Result{Items: items}, nil
}

// splitURL separates the leading URL from an optional trailing title and
// validates the URL. A scheme-less host like "example.com/x" is accepted
// and normalized to https.
func splitURL(query string) (target, title string, ok bool) {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "", "", false
	}

	target = fields[0]
	title = strings.Join(fields[1:], " ")

	if !strings.Contains(target, "://") {
		if !strings.Contains(target, ".") {
			return "", "", false
		}
		target = "https://" + target
	}

	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "", "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", false
	}
	return target, title, true
}

// Select replaces the trigger with the chosen markdown.
func (l *Linker) Select(item command.Item, f field.Editor, slashOffset, end int) {
	field.ReplaceRange(f, slashOffset, end, item.Insert)
}

// Columns implements command.Plugin; the list renders flat.
func (l *Linker) Columns() int { return 0 }

// NoResultsMessage implements command.NoResultsMessenger.
func (l *Linker) NoResultsMessage() string { return "That doesn't look like a URL" }
