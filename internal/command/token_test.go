// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command provides the slash command core for slashdeck.
package command

import "testing"

// TestParseLine covers the command/URL/HTML disambiguation rules.
func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want *Token
	}{
		{
			name: "command at line start",
			line: "/giphy cats",
			want: &Token{Name: "giphy", Query: "cats", SlashOffset: 0},
		},
		{
			name: "command after text",
			line: "text /emoji smile",
			want: &Token{Name: "emoji", Query: "smile", SlashOffset: 5},
		},
		{
			name: "url does not trigger",
			line: "https://example.com",
			want: nil,
		},
		{
			name: "url path segment does not trigger",
			line: "https://x.com/giphy",
			want: nil,
		},
		{
			name: "self closing html tag does not trigger",
			line: `<img src="x" />`,
			want: nil,
		},
		{
			name: "bare trailing slash shows command list",
			line: "some text /",
			want: &Token{Name: "", Query: "", SlashOffset: 10},
		},
		{
			name: "bare slash on empty line",
			line: "/",
			want: &Token{Name: "", Query: "", SlashOffset: 0},
		},
		{
			name: "rightmost command wins",
			line: "/giphy cats /emoji smile",
			want: &Token{Name: "emoji", Query: "smile", SlashOffset: 12},
		},
		{
			name: "name is lower cased",
			line: "/GIPHY Cats",
			want: &Token{Name: "giphy", Query: "Cats", SlashOffset: 0},
		},
		{
			name: "query whitespace collapsed",
			line: "/giphy   funny   cats ",
			want: &Token{Name: "giphy", Query: "funny cats", SlashOffset: 0},
		},
		{
			name: "slash followed by digit does not trigger",
			line: "a /1st",
			want: nil,
		},
		{
			name: "closing paren after slash does not trigger",
			line: "see (a/) here",
			want: nil,
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
		{
			name: "plain text without slash",
			line: "just some words",
			want: nil,
		},
		{
			name: "slash after tab",
			line: "a\t/emoji",
			want: &Token{Name: "emoji", Query: "", SlashOffset: 2},
		},
		{
			// The trailing UTF-8 byte of "à" is 0xA0; read as a lone
			// byte it looks like a no-break space.
			name: "slash after multibyte letter does not trigger",
			line: "à/emoji",
			want: nil,
		},
		{
			name: "slash after ideographic space",
			line: "前　/emoji",
			want: &Token{Name: "emoji", Query: "", SlashOffset: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)

			if tt.want == nil {
				if got != nil {
					t.Fatalf("ParseLine(%q) = %+v, want nil", tt.line, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseLine(%q) = nil, want %+v", tt.line, tt.want)
			}
			if *got != *tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

// TestParseLineDeterministic verifies parsing the same line twice
// yields identical tokens.
func TestParseLineDeterministic(t *testing.T) {
	lines := []string{
		"/giphy cats",
		"text /emoji smile",
		"https://x.com/giphy",
		"a /",
	}
	for _, line := range lines {
		first := ParseLine(line)
		second := ParseLine(line)

		if (first == nil) != (second == nil) {
			t.Fatalf("ParseLine(%q) not deterministic: %v vs %v", line, first, second)
		}
		if first != nil && *first != *second {
			t.Errorf("ParseLine(%q) not deterministic: %+v vs %+v", line, first, second)
		}
	}
}
