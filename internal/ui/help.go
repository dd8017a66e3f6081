// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown is the footer help shown while the picker is closed.
const helpMarkdown = `Type **/** followed by a command name to open the picker.

- ` + "`/gif cats`" + ` searches Giphy
- ` + "`/emoji smile`" + ` inserts an emoji
- ` + "`/link <url> [title]`" + ` formats markdown links
- ` + "`/checks <name>`" + ` links a CI artifact

**Esc** closes the picker · **Enter** inserts · **Ctrl+S** settings · **Ctrl+C** quits`

// renderHelp renders the footer help once at startup. Falls back to the
// raw markdown if the renderer cannot initialize.
func renderHelp() string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n")
}
