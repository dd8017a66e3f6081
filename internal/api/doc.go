// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP clients the built-in plugins talk to.
//
// These are thin fetch wrappers: request shaping, error taxonomy, and
// client-side rate limiting. Caching and debouncing live with the
// callers.
//
// # Key Types
//
//   - GiphyClient: GIF search, trending, and tag autocomplete
//   - GitHubClient: workflow run and artifact listing
//   - ClientError: Typed error with a category for handling
package api
