// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/help/help.go
// Summary: Static help screen describing the panel and its key bindings.

package help

import (
	"github.com/gdamore/tcell/v2"

	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/registry"
)

// entry is a key binding with its description.
type entry struct {
	key  string
	desc string
}

// section is a titled group of entries.
type section struct {
	title   string
	entries []entry
}

type app struct {
	panel.BaseApp
	host     panel.Host
	sections []section
	offset   int
}

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "help",
			DisplayName: "Help",
			Description: "Key bindings and usage",
			Category:    "session",
		}, New
	})
}

// New returns the help screen.
func New(host panel.Host) panel.App {
	return &app{
		BaseApp: panel.NewBaseApp("Help"),
		host:    host,
		sections: []section{
			{
				title: "Everywhere",
				entries: []entry{
					{"Tab / Shift+Tab", "Move between fields"},
					{"Enter / Space", "Press buttons, toggle checkboxes"},
					{"Left / Right", "Adjust sliders and choices"},
					{"Esc", "Close the current dialog"},
					{"Ctrl+C", "Quit the panel"},
				},
			},
			{
				title: "Control Panel",
				entries: []entry{
					{"Enter", "Open the selected applet"},
					{"a-z", "Jump to an applet by first letter"},
					{"Ctrl+R", "Rescan external applets"},
				},
			},
			{
				title: "Keyboard Shortcuts Editor",
				entries: []entry{
					{"Enter", "Edit the selected binding"},
					{"Ctrl+P", "Preview the keys file"},
				},
			},
			{
				title: "Date & Time",
				entries: []entry{
					{"Ctrl+H / Ctrl+L", "Switch between tabs"},
				},
			},
		},
	}
}

// lines flattens the sections for scrolling.
func (a *app) lines() []entry {
	var out []entry
	for i, s := range a.sections {
		if i > 0 {
			out = append(out, entry{})
		}
		out = append(out, entry{key: s.title})
		for _, e := range s.entries {
			out = append(out, e)
		}
	}
	return out
}

func (a *app) HandleKey(ev *tcell.EventKey) {
	_, h := a.Size()
	visible := h - 2
	max := len(a.lines()) - visible
	if max < 0 {
		max = 0
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		a.host.CloseApp()
	case tcell.KeyUp:
		if a.offset > 0 {
			a.offset--
		}
	case tcell.KeyDown:
		if a.offset < max {
			a.offset++
		}
	case tcell.KeyHome:
		a.offset = 0
	case tcell.KeyEnd:
		a.offset = max
	}
}

func (a *app) Render() [][]panel.Cell {
	w, h := a.Size()
	if w <= 0 || h <= 0 {
		return [][]panel.Cell{}
	}
	buf := panel.NewBuffer(w, h)
	th := panel.CurrentTheme()

	lines := a.lines()
	y := 0
	for i := a.offset; i < len(lines) && y < h-1; i++ {
		line := lines[i]
		if line.desc == "" {
			panel.DrawText(buf, 2, y, th.Title, line.key)
		} else {
			panel.DrawText(buf, 4, y, th.Focus, line.key)
			panel.DrawText(buf, 24, y, th.Text, line.desc)
		}
		y++
	}
	panel.DrawText(buf, 2, h-1, th.Dim, "Up/Down: scroll   Esc: close")
	return buf
}
