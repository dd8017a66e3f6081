// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache provides the sqlite-backed search result cache.
//
// Plugins that hit rate-limited APIs (giphy, checks) cache their
// serialized result sets here keyed by (command, query). Each plugin
// owns its payload format and its invalidation policy; the store only
// handles persistence, age checks, and pruning.
package cache
