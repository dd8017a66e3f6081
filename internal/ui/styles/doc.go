// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the slashdeck TUI.
//
// # Key Types
//
//   - Theme: All lipgloss styles, built once per terminal session
//
// Colors are lipgloss.AdaptiveColor pairs so the same theme works on
// light and dark terminals; capability detection goes through termenv.
package styles
