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

func TestLinkerVariants(t *testing.T) {
	res, err := NewLinker().Search(context.Background(), "https://example.com/x design notes")
	require.NoError(t, err)
	require.Len(t, res.Items, 3)

	assert.Equal(t, "[design notes](https://example.com/x)", res.Items[0].Insert)
	assert.Equal(t, "![design notes](https://example.com/x)", res.Items[1].Insert)
	assert.Equal(t, "<https://example.com/x>", res.Items[2].Insert)
}

func TestLinkerURLAsTitleFallback(t *testing.T) {
	res, err := NewLinker().Search(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "[https://example.com](https://example.com)", res.Items[0].Insert)
}

func TestLinkerSchemeNormalization(t *testing.T) {
	res, err := NewLinker().Search(context.Background(), "example.com/path title")
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "[title](https://example.com/path)", res.Items[0].Insert)
}

func TestLinkerRejectsNonURLs(t *testing.T) {
	for _, q := range []string{"plainword", "ftp://example.com/x", "   "} {
		res, err := NewLinker().Search(context.Background(), q)
		require.NoError(t, err, q)
		assert.Empty(t, res.Items, q)
	}
}

func TestLinkerSelect(t *testing.T) {
	l := NewLinker()
	buf := field.NewBuffer("/link https://example.com")

	res, err := l.Search(context.Background(), "https://example.com")
	require.NoError(t, err)

	l.Select(res.Items[2], buf, 0, len(buf.Value()))
	assert.Equal(t, "<https://example.com>", buf.Value())
}
