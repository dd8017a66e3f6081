// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugins

import (
	"context"
	"strings"

	"github.com/jeranaias/slashdeck/internal/command"
	"github.com/jeranaias/slashdeck/internal/field"
)

// =============================================================================
// EMOJI
// =============================================================================

type emojiEntry struct {
	name  string
	glyph string
}

// emojiTable is a gemoji-style shortcode table. Order matters only for
// the common set below; search output is ordered by match quality.
var emojiTable = []emojiEntry{
	{"thumbsup", "👍"},
	{"thumbsdown", "👎"},
	{"heart", "❤️"},
	{"smile", "😄"},
	{"grin", "😁"},
	{"joy", "😂"},
	{"wink", "😉"},
	{"thinking", "🤔"},
	{"tada", "🎉"},
	{"rocket", "🚀"},
	{"fire", "🔥"},
	{"eyes", "👀"},
	{"100", "💯"},
	{"clap", "👏"},
	{"pray", "🙏"},
	{"wave", "👋"},
	{"ok_hand", "👌"},
	{"muscle", "💪"},
	{"bug", "🐛"},
	{"sparkles", "✨"},
	{"star", "⭐"},
	{"zap", "⚡"},
	{"warning", "⚠️"},
	{"check", "✅"},
	{"x", "❌"},
	{"question", "❓"},
	{"bulb", "💡"},
	{"memo", "📝"},
	{"lock", "🔒"},
	{"wrench", "🔧"},
	{"ship", "🚢"},
	{"shipit", "🐿️"},
	{"facepalm", "🤦"},
	{"shrug", "🤷"},
	{"cry", "😢"},
	{"sob", "😭"},
	{"sweat_smile", "😅"},
	{"sunglasses", "😎"},
	{"party", "🥳"},
	{"ghost", "👻"},
}

// commonEmoji is the zero-query default set, by shortcode.
var commonEmoji = []string{
	"thumbsup", "heart", "smile", "tada", "rocket", "fire", "eyes", "100",
}

// Emoji is the static emoji command. List view, no setup, no network.
type Emoji struct{}

// NewEmoji creates the emoji plugin.
func NewEmoji() *Emoji { return &Emoji{} }

// Name implements command.Plugin.
func (e *Emoji) Name() string { return "emoji" }

// Description implements command.Plugin.
func (e *Emoji) Description() string { return "Insert an emoji" }

// Preflight implements command.Plugin. Always ready.
func (e *Emoji) Preflight(ctx context.Context) (command.Preflight, error) {
	return command.Preflight{}, nil
}

// EmptyState returns the common set.
func (e *Emoji) EmptyState(ctx context.Context) (command.Result, error) {
	items := make([]command.Item, 0, len(commonEmoji))
	for _, name := range commonEmoji {
		for _, entry := range emojiTable {
			if entry.name == name {
				items = append(items, emojiItem(entry))
				break
			}
		}
	}
	return command.Result{Items: items}, nil
}

// Search matches shortcodes by prefix first, substring after.
func (e *Emoji) Search(ctx context.Context, query string) (command.Result, error) {
	query = strings.ToLower(strings.TrimSpace(query))

	var prefixed, contained []command.Item
	for _, entry := range emojiTable {
		switch {
		case strings.HasPrefix(entry.name, query):
			prefixed = append(prefixed, emojiItem(entry))
		case strings.Contains(entry.name, query):
			contained = append(contained, emojiItem(entry))
		}
	}
	return command.Result{Items: append(prefixed, contained...)}, nil
}

func emojiItem(entry emojiEntry) command.Item {
	return command.Item{
		ID:      entry.name,
		Title:   ":" + entry.name + ":",
		Preview: entry.glyph,
		Insert:  entry.glyph,
	}
}

// Select replaces the trigger with the unicode glyph.
func (e *Emoji) Select(item command.Item, f field.Editor, slashOffset, end int) {
	field.ReplaceRange(f, slashOffset, end, item.Insert+" ")
}

// Columns implements command.Plugin; the list renders flat.
func (e *Emoji) Columns() int { return 0 }

// NoResultsMessage implements command.NoResultsMessenger.
func (e *Emoji) NoResultsMessage() string { return "No emoji match that name" }
