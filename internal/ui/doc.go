// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the bubbletea presentation layer for slashdeck.
//
// # Key Types
//
//   - Popup: picker.Surface implementation rendering the command picker
//   - FieldAdapter: bridges a bubbles textarea to field.Editor
//   - EditorModel: the demo editor hosting a textarea plus the picker
//
// # Usage
//
// Wire the pieces together and hand the model to bubbletea:
//
//	theme := styles.NewTheme()
//	popup := ui.NewPopup(theme, 80)
//	machine := picker.New(ctx, reg, popup, opts)
//	model := ui.NewEditor(machine, popup, theme)
package ui
