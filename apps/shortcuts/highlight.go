// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/shortcuts/highlight.go
// Summary: Chroma-based syntax coloring for the keys file preview.

package shortcuts

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/DeltaResero/IceWMCP/panel"
)

// span is a run of equally styled text within a preview line.
type span struct {
	text  string
	style tcell.Style
}

const previewStyleName = "friendly"

// renderPreview splits the serialized keys file into styled lines. The bash
// lexer fits well: comments, quoted combos, and command words all come out
// distinct. With highlighting off every line is a single plain span.
func (a *app) renderPreview(source string) [][]span {
	plainStyle := panel.CurrentTheme().Text
	if !a.highlight {
		return plainLines(source, plainStyle)
	}

	lexer := lexers.Get("bash")
	if lexer == nil {
		return plainLines(source, plainStyle)
	}
	style := styles.Get(previewStyleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plainLines(source, plainStyle)
	}

	var lines [][]span
	var current []span
	for _, token := range iterator.Tokens() {
		st := tokenStyle(style, token.Type, plainStyle)
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, current)
				current = nil
			}
			if part != "" {
				current = append(current, span{text: part, style: st})
			}
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

func plainLines(source string, style tcell.Style) [][]span {
	var lines [][]span
	for _, line := range strings.Split(strings.TrimRight(source, "\n"), "\n") {
		lines = append(lines, []span{{text: line, style: style}})
	}
	return lines
}

func tokenStyle(style *chroma.Style, tokenType chroma.TokenType, fallback tcell.Style) tcell.Style {
	entry := style.Get(tokenType)
	st := fallback
	if entry.Colour.IsSet() {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue())))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	return st
}
