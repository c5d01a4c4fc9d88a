// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: panel/widgets/table.go
// Summary: Scrollable table and tab strip widgets.

package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/DeltaResero/IceWMCP/panel"
)

// Column describes a table column.
type Column struct {
	Title string
	Width int
}

// Table is a scrollable row list with a heading line. Up/Down move the
// selection; Enter activates the selected row.
type Table struct {
	X, Y, W, H int
	Columns    []Column
	Rows       [][]string
	Selected   int
	Disabled   bool
	OnSelect   func(row int)
	OnActivate func(row int)

	scroll int
}

// SetRows replaces the rows, clamping the selection.
func (t *Table) SetRows(rows [][]string) {
	t.Rows = rows
	if t.Selected >= len(rows) {
		t.Selected = len(rows) - 1
	}
	if t.Selected < 0 {
		t.Selected = 0
	}
}

func (t *Table) visibleRows() int {
	v := t.H - 1 // heading line
	if v < 1 {
		v = 1
	}
	return v
}

func (t *Table) Draw(buf [][]panel.Cell, focused bool) {
	th := panel.CurrentTheme()
	headStyle := th.Accent
	if t.Disabled {
		headStyle = th.Dim
	}

	x := t.X
	for _, col := range t.Columns {
		panel.DrawText(buf, x, t.Y, headStyle, runewidth.FillRight(runewidth.Truncate(col.Title, col.Width, "…"), col.Width))
		x += col.Width + 1
	}

	visible := t.visibleRows()
	if t.Selected < t.scroll {
		t.scroll = t.Selected
	}
	if t.Selected >= t.scroll+visible {
		t.scroll = t.Selected - visible + 1
	}

	for i := 0; i < visible; i++ {
		idx := t.scroll + i
		if idx >= len(t.Rows) {
			break
		}
		style := th.Text
		if t.Disabled {
			style = th.Dim
		} else if idx == t.Selected {
			if focused {
				style = th.Focus
			} else {
				style = th.Selection
			}
		}
		x = t.X
		for c, col := range t.Columns {
			text := ""
			if c < len(t.Rows[idx]) {
				text = t.Rows[idx][c]
			}
			panel.DrawText(buf, x, t.Y+1+i, style, runewidth.FillRight(runewidth.Truncate(text, col.Width, "…"), col.Width))
			x += col.Width + 1
		}
	}
}

func (t *Table) HandleKey(ev *tcell.EventKey) bool {
	if t.Disabled || len(t.Rows) == 0 {
		return false
	}
	old := t.Selected
	switch ev.Key() {
	case tcell.KeyUp:
		if t.Selected == 0 {
			return false // let the form move focus off the top
		}
		t.Selected--
	case tcell.KeyDown:
		if t.Selected == len(t.Rows)-1 {
			return false
		}
		t.Selected++
	case tcell.KeyPgUp:
		t.Selected -= t.visibleRows()
	case tcell.KeyPgDn:
		t.Selected += t.visibleRows()
	case tcell.KeyHome:
		t.Selected = 0
	case tcell.KeyEnd:
		t.Selected = len(t.Rows) - 1
	case tcell.KeyEnter:
		if t.OnActivate != nil {
			t.OnActivate(t.Selected)
		}
		return true
	default:
		return false
	}
	if t.Selected < 0 {
		t.Selected = 0
	}
	if t.Selected >= len(t.Rows) {
		t.Selected = len(t.Rows) - 1
	}
	if t.Selected != old && t.OnSelect != nil {
		t.OnSelect(t.Selected)
	}
	return true
}

func (t *Table) Focusable() bool { return !t.Disabled }

// Tabs is a horizontal tab strip switched with Left/Right.
type Tabs struct {
	X, Y     int
	Titles   []string
	Active   int
	OnChange func(active int)
}

func (t *Tabs) Draw(buf [][]panel.Cell, focused bool) {
	th := panel.CurrentTheme()
	x := t.X
	for i, title := range t.Titles {
		style := th.Dim
		if i == t.Active {
			if focused {
				style = th.Focus
			} else {
				style = th.Title
			}
		}
		x = panel.DrawText(buf, x, t.Y, style, " "+title+" ")
		x = panel.DrawText(buf, x, t.Y, th.Border, "│")
	}
}

func (t *Tabs) HandleKey(ev *tcell.EventKey) bool {
	old := t.Active
	switch ev.Key() {
	case tcell.KeyLeft:
		if t.Active > 0 {
			t.Active--
		}
	case tcell.KeyRight:
		if t.Active < len(t.Titles)-1 {
			t.Active++
		}
	default:
		return false
	}
	if t.Active != old && t.OnChange != nil {
		t.OnChange(t.Active)
	}
	return true
}

func (t *Tabs) Focusable() bool { return len(t.Titles) > 1 }
