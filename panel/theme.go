// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: panel/theme.go
// Summary: Style palette used by the shell and the widget set.

package panel

import "github.com/gdamore/tcell/v2"

// Theme groups the styles used across the dialogs.
type Theme struct {
	Background tcell.Style
	Border     tcell.Style
	Title      tcell.Style
	Text       tcell.Style
	Dim        tcell.Style
	Focus      tcell.Style
	Selection  tcell.Style
	Accent     tcell.Style
	Warning    tcell.Style
	StatusBar  tcell.Style
}

// DefaultTheme mirrors the muted palette of the classic suite: white on the
// terminal default, cyan accents, reverse video for focus.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Background: base,
		Border:     base.Foreground(tcell.ColorWhite),
		Title:      base.Foreground(tcell.ColorWhite).Bold(true),
		Text:       base,
		Dim:        base.Foreground(tcell.ColorGray),
		Focus:      base.Reverse(true),
		Selection:  base.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite),
		Accent:     base.Foreground(tcell.PaletteColor(6)),
		Warning:    base.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
		StatusBar:  base.Reverse(true).Dim(true),
	}
}

// MonoTheme drops all color for monochrome terminals; emphasis comes from
// bold and reverse video only.
func MonoTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Background: base,
		Border:     base,
		Title:      base.Bold(true),
		Text:       base,
		Dim:        base.Dim(true),
		Focus:      base.Reverse(true),
		Selection:  base.Reverse(true),
		Accent:     base.Bold(true),
		Warning:    base.Reverse(true).Bold(true),
		StatusBar:  base.Reverse(true).Dim(true),
	}
}

// ThemeByName maps a config value to a theme, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonoTheme()
	}
	return DefaultTheme()
}

var theme = DefaultTheme()

// CurrentTheme returns the active theme.
func CurrentTheme() Theme { return theme }

// SetTheme replaces the active theme. Call before the shell starts drawing.
func SetTheme(t Theme) { theme = t }
