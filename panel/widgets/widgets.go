// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: panel/widgets/widgets.go
// Summary: Widget contract and focus management for dialog forms.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/DeltaResero/IceWMCP/panel"
)

// Widget is a rectangular dialog element positioned by its owning app.
type Widget interface {
	// Draw renders the widget into the app buffer. focused is true when the
	// widget owns the form focus.
	Draw(buf [][]panel.Cell, focused bool)

	// HandleKey processes a key routed to the focused widget. It returns true
	// when the key was consumed.
	HandleKey(ev *tcell.EventKey) bool

	// Focusable reports whether the widget can take focus right now.
	Focusable() bool
}

// Form routes focus between widgets. Tab and Shift-Tab cycle; Up/Down move
// focus when the focused widget does not consume them itself.
type Form struct {
	Widgets []Widget
	focus   int
}

// Focus returns the currently focused widget, or nil.
func (f *Form) Focus() Widget {
	if f.focus < 0 || f.focus >= len(f.Widgets) {
		return nil
	}
	w := f.Widgets[f.focus]
	if !w.Focusable() {
		return nil
	}
	return w
}

// SetFocus moves focus to the given widget if it is focusable.
func (f *Form) SetFocus(target Widget) {
	for i, w := range f.Widgets {
		if w == target && w.Focusable() {
			f.focus = i
			return
		}
	}
}

// EnsureFocus moves focus to the first focusable widget if the current focus
// is invalid (for example after widgets were disabled).
func (f *Form) EnsureFocus() {
	if f.Focus() != nil {
		return
	}
	for i, w := range f.Widgets {
		if w.Focusable() {
			f.focus = i
			return
		}
	}
	f.focus = -1
}

// HandleKey dispatches to the focused widget, falling back to focus movement.
func (f *Form) HandleKey(ev *tcell.EventKey) bool {
	f.EnsureFocus()
	if w := f.Focus(); w != nil {
		if w.HandleKey(ev) {
			return true
		}
	}
	switch ev.Key() {
	case tcell.KeyTab, tcell.KeyDown:
		f.move(1)
		return true
	case tcell.KeyBacktab, tcell.KeyUp:
		f.move(-1)
		return true
	}
	return false
}

func (f *Form) move(dir int) {
	if len(f.Widgets) == 0 {
		return
	}
	start := f.focus
	for i := 0; i < len(f.Widgets); i++ {
		f.focus = (f.focus + dir + len(f.Widgets)) % len(f.Widgets)
		if f.Widgets[f.focus].Focusable() {
			return
		}
	}
	f.focus = start
}

// Draw renders all widgets, marking the focused one.
func (f *Form) Draw(buf [][]panel.Cell) {
	f.EnsureFocus()
	for i, w := range f.Widgets {
		w.Draw(buf, i == f.focus && w.Focusable())
	}
}

func styleFor(disabled, focused bool) tcell.Style {
	t := panel.CurrentTheme()
	switch {
	case disabled:
		return t.Dim
	case focused:
		return t.Focus
	default:
		return t.Text
	}
}
