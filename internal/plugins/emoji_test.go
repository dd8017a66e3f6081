// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/slashdeck/internal/field"
)

func TestEmojiEmptyState(t *testing.T) {
	res, err := NewEmoji().EmptyState(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Items, len(commonEmoji))
	assert.Equal(t, "thumbsup", res.Items[0].ID)
	assert.Equal(t, "👍", res.Items[0].Insert)
}

func TestEmojiSearchPrefixFirst(t *testing.T) {
	res, err := NewEmoji().Search(context.Background(), "smi")
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)

	// "smile" prefix-matches and sorts before the substring match
	// "sweat_smile".
	assert.Equal(t, "smile", res.Items[0].ID)

	var ids []string
	for _, item := range res.Items {
		ids = append(ids, item.ID)
	}
	assert.Contains(t, ids, "sweat_smile")
}

func TestEmojiSearchNoMatch(t *testing.T) {
	res, err := NewEmoji().Search(context.Background(), "qq-nope")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestEmojiSelectInsertsGlyph(t *testing.T) {
	e := NewEmoji()
	buf := field.NewBuffer("done /emoji tada")

	res, err := e.Search(context.Background(), "tada")
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)

	e.Select(res.Items[0], buf, 5, len("done /emoji tada"))
	assert.Equal(t, "done 🎉 ", buf.Value())
}
