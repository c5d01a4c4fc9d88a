// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: panel/widgets/basic.go
// Summary: Label, Button, Checkbox, Slider, Select and Entry widgets.

package widgets

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/DeltaResero/IceWMCP/panel"
)

// Label is static text. Style overrides the theme text style when set.
type Label struct {
	X, Y  int
	Text  string
	Style *tcell.Style
}

func (l *Label) Draw(buf [][]panel.Cell, _ bool) {
	style := panel.CurrentTheme().Text
	if l.Style != nil {
		style = *l.Style
	}
	panel.DrawText(buf, l.X, l.Y, style, l.Text)
}

func (l *Label) HandleKey(*tcell.EventKey) bool { return false }
func (l *Label) Focusable() bool                { return false }

// Button triggers OnPress on Enter or Space.
type Button struct {
	X, Y     int
	Text     string
	Disabled bool
	OnPress  func()
}

func (b *Button) Draw(buf [][]panel.Cell, focused bool) {
	panel.DrawText(buf, b.X, b.Y, styleFor(b.Disabled, focused), fmt.Sprintf("[ %s ]", b.Text))
}

func (b *Button) HandleKey(ev *tcell.EventKey) bool {
	if b.Disabled {
		return false
	}
	if ev.Key() == tcell.KeyEnter || ev.Rune() == ' ' {
		if b.OnPress != nil {
			b.OnPress()
		}
		return true
	}
	return false
}

func (b *Button) Focusable() bool { return !b.Disabled }

// Checkbox toggles on Enter or Space and reports through OnToggle.
type Checkbox struct {
	X, Y     int
	Text     string
	Checked  bool
	Disabled bool
	OnToggle func(checked bool)
}

func (c *Checkbox) Draw(buf [][]panel.Cell, focused bool) {
	mark := ' '
	if c.Checked {
		mark = 'x'
	}
	panel.DrawText(buf, c.X, c.Y, styleFor(c.Disabled, focused), fmt.Sprintf("[%c] %s", mark, c.Text))
}

func (c *Checkbox) HandleKey(ev *tcell.EventKey) bool {
	if c.Disabled {
		return false
	}
	if ev.Key() == tcell.KeyEnter || ev.Rune() == ' ' {
		c.Checked = !c.Checked
		if c.OnToggle != nil {
			c.OnToggle(c.Checked)
		}
		return true
	}
	return false
}

func (c *Checkbox) Focusable() bool { return !c.Disabled }

// Slider is a horizontal integer slider adjusted with Left/Right; Home/End
// jump to the bounds. PgUp/PgDn move by a tenth of the range.
type Slider struct {
	X, Y, W  int
	Min, Max int
	Value    int
	Disabled bool
	OnChange func(value int)
}

func (s *Slider) Draw(buf [][]panel.Cell, focused bool) {
	style := styleFor(s.Disabled, focused)
	track := s.W - 8
	if track < 3 {
		track = 3
	}
	pos := 0
	if s.Max > s.Min {
		pos = (s.Value - s.Min) * (track - 1) / (s.Max - s.Min)
	}
	x := s.X
	x = panel.DrawText(buf, x, s.Y, style, "[")
	for i := 0; i < track; i++ {
		ch := "─"
		if i == pos {
			ch = "█"
		}
		x = panel.DrawText(buf, x, s.Y, style, ch)
	}
	panel.DrawText(buf, x, s.Y, style, fmt.Sprintf("] %d", s.Value))
}

func (s *Slider) HandleKey(ev *tcell.EventKey) bool {
	if s.Disabled {
		return false
	}
	step := (s.Max - s.Min) / 10
	if step < 1 {
		step = 1
	}
	old := s.Value
	switch ev.Key() {
	case tcell.KeyLeft:
		s.Value--
	case tcell.KeyRight:
		s.Value++
	case tcell.KeyHome:
		s.Value = s.Min
	case tcell.KeyEnd:
		s.Value = s.Max
	case tcell.KeyPgUp:
		s.Value += step
	case tcell.KeyPgDn:
		s.Value -= step
	default:
		return false
	}
	if s.Value < s.Min {
		s.Value = s.Min
	}
	if s.Value > s.Max {
		s.Value = s.Max
	}
	if s.Value != old && s.OnChange != nil {
		s.OnChange(s.Value)
	}
	return true
}

func (s *Slider) Focusable() bool { return !s.Disabled }

// Select cycles through fixed options with Left/Right.
type Select struct {
	X, Y, W  int
	Options  []string
	Index    int
	Disabled bool
	OnChange func(index int)
}

// Value returns the selected option, or "" when empty.
func (s *Select) Value() string {
	if s.Index < 0 || s.Index >= len(s.Options) {
		return ""
	}
	return s.Options[s.Index]
}

// Set selects the given option if present.
func (s *Select) Set(option string) {
	for i, o := range s.Options {
		if o == option {
			s.Index = i
			return
		}
	}
}

func (s *Select) Draw(buf [][]panel.Cell, focused bool) {
	style := styleFor(s.Disabled, focused)
	value := s.Value()
	inner := s.W - 4
	if inner > 0 {
		value = runewidth.FillRight(runewidth.Truncate(value, inner, "…"), inner)
	}
	panel.DrawText(buf, s.X, s.Y, style, fmt.Sprintf("< %s >", value))
}

func (s *Select) HandleKey(ev *tcell.EventKey) bool {
	if s.Disabled || len(s.Options) == 0 {
		return false
	}
	old := s.Index
	switch ev.Key() {
	case tcell.KeyLeft:
		if s.Index > 0 {
			s.Index--
		}
	case tcell.KeyRight:
		if s.Index < len(s.Options)-1 {
			s.Index++
		}
	case tcell.KeyHome:
		s.Index = 0
	case tcell.KeyEnd:
		s.Index = len(s.Options) - 1
	default:
		return false
	}
	if s.Index != old && s.OnChange != nil {
		s.OnChange(s.Index)
	}
	return true
}

func (s *Select) Focusable() bool { return !s.Disabled }

// Entry is a single-line text editor.
type Entry struct {
	X, Y, W  int
	Value    string
	Disabled bool
	OnChange func(value string)
	OnSubmit func(value string)

	cursor int // rune index
	scroll int // first visible rune
}

// SetValue replaces the content and moves the cursor to the end.
func (e *Entry) SetValue(v string) {
	e.Value = v
	e.cursor = len([]rune(v))
	e.scroll = 0
}

func (e *Entry) Draw(buf [][]panel.Cell, focused bool) {
	style := styleFor(e.Disabled, focused)
	runes := []rune(e.Value)
	if e.cursor > len(runes) {
		e.cursor = len(runes)
	}
	visible := e.W - 2
	if visible < 1 {
		visible = 1
	}
	if e.cursor < e.scroll {
		e.scroll = e.cursor
	}
	if e.cursor-e.scroll >= visible {
		e.scroll = e.cursor - visible + 1
	}
	end := e.scroll + visible
	if end > len(runes) {
		end = len(runes)
	}
	text := string(runes[e.scroll:end])
	padded := runewidth.FillRight(text, visible)
	x := panel.DrawText(buf, e.X, e.Y, style, "[")
	if focused && !e.Disabled {
		// Draw with a visible cursor cell.
		cur := e.cursor - e.scroll
		for i, ch := range []rune(padded) {
			cs := style
			if i == cur {
				cs = panel.CurrentTheme().Selection
			}
			x = panel.DrawText(buf, x, e.Y, cs, string(ch))
		}
	} else {
		x = panel.DrawText(buf, x, e.Y, style, padded)
	}
	panel.DrawText(buf, x, e.Y, style, "]")
}

func (e *Entry) HandleKey(ev *tcell.EventKey) bool {
	if e.Disabled {
		return false
	}
	runes := []rune(e.Value)
	if e.cursor > len(runes) {
		e.cursor = len(runes)
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case tcell.KeyRight:
		if e.cursor < len(runes) {
			e.cursor++
		}
	case tcell.KeyHome:
		e.cursor = 0
	case tcell.KeyEnd:
		e.cursor = len(runes)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursor > 0 {
			runes = append(runes[:e.cursor-1], runes[e.cursor:]...)
			e.cursor--
			e.setRunes(runes)
		}
	case tcell.KeyDelete:
		if e.cursor < len(runes) {
			runes = append(runes[:e.cursor], runes[e.cursor+1:]...)
			e.setRunes(runes)
		}
	case tcell.KeyCtrlU:
		e.setRunes(nil)
		e.cursor = 0
	case tcell.KeyEnter:
		if e.OnSubmit != nil {
			e.OnSubmit(e.Value)
		}
	case tcell.KeyRune:
		ch := ev.Rune()
		runes = append(runes[:e.cursor], append([]rune{ch}, runes[e.cursor:]...)...)
		e.cursor++
		e.setRunes(runes)
	default:
		return false
	}
	return true
}

func (e *Entry) setRunes(runes []rune) {
	e.Value = string(runes)
	if e.OnChange != nil {
		e.OnChange(e.Value)
	}
}

func (e *Entry) Focusable() bool { return !e.Disabled }
