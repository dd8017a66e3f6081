// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command provides the slash command core for slashdeck.
package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// TOKEN
// =============================================================================

// Token is the result of parsing a single line for a slash command.
type Token struct {
	// Name is the lower-cased command name. Empty means a bare trailing
	// slash was typed and the command list should be shown.
	Name string

	// Query is everything after the command name, whitespace-normalized.
	Query string

	// SlashOffset is the index of the matched slash within the line.
	SlashOffset int
}

// =============================================================================
// LINE PARSER
// =============================================================================

// ParseLine scans a line for the slash command closest to the cursor.
//
// A slash qualifies when it sits at line start or directly after
// whitespace, and the character following it is absent or an ASCII
// letter. This keeps URLs ("https://x.com/giphy") and self-closing HTML
// tags ("/>") from triggering the picker. When several slashes qualify,
// the rightmost one wins.
//
// Returns nil when the line contains no command.
func ParseLine(line string) *Token {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] != '/' {
			continue
		}
		if !slashStartsCommand(line, i) {
			continue
		}
		return tokenAt(line, i)
	}
	return nil
}

// slashStartsCommand reports whether the slash at index i can open a
// command: preceded by nothing or whitespace, followed by nothing or an
// ASCII letter.
func slashStartsCommand(line string, i int) bool {
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(line[:i])
		if !unicode.IsSpace(r) {
			return false
		}
	}
	if i+1 < len(line) && !isASCIILetter(line[i+1]) {
		return false
	}
	return true
}

// tokenAt builds the token for the command starting at slash index i.
func tokenAt(line string, i int) *Token {
	rest := line[i+1:]
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		// Bare trailing slash: show the command list.
		return &Token{SlashOffset: i}
	}
	return &Token{
		Name:        strings.ToLower(fields[0]),
		Query:       strings.Join(fields[1:], " "),
		SlashOffset: i,
	}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
