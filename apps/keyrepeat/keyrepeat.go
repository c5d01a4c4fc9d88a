// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/keyrepeat/keyrepeat.go
// Summary: Keyboard auto-repeat configuration dialog.

package keyrepeat

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/internal/xset"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
	"github.com/DeltaResero/IceWMCP/registry"
)

type app struct {
	panel.BaseApp
	host panel.Host
	xc   *xset.Client

	form   widgets.Form
	enable *widgets.Checkbox
	delay  *widgets.Slider
	rate   *widgets.Slider
	test   *widgets.Entry
	status *widgets.Label
}

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "keyrepeat",
			DisplayName: "Keyboard Repeat",
			Description: "Auto-repeat delay and rate",
			Category:    "input",
		}, New
	})
}

// New builds the dialog and loads the current auto-repeat state. Slider moves
// apply immediately so the test field reflects the new behavior.
func New(host panel.Host) panel.App {
	a := &app{
		BaseApp: panel.NewBaseApp("Keyboard Repeat"),
		host:    host,
		xc:      xset.NewDefault(),
	}

	a.enable = &widgets.Checkbox{X: 2, Y: 2, Text: "Enable key auto-repeat", OnToggle: func(bool) {
		a.syncEnabled()
		a.apply()
	}}
	a.delay = &widgets.Slider{X: 16, Y: 4, W: 30, Min: 200, Max: 1000, OnChange: func(int) { a.apply() }}
	a.rate = &widgets.Slider{X: 16, Y: 5, W: 30, Min: 5, Max: 100, OnChange: func(int) { a.apply() }}
	a.test = &widgets.Entry{X: 16, Y: 7, W: 30}
	a.status = &widgets.Label{X: 2, Y: 11}

	resetBtn := &widgets.Button{X: 2, Y: 9, Text: "Reset", OnPress: a.reset}
	closeBtn := &widgets.Button{X: 12, Y: 9, Text: "Close", OnPress: host.CloseApp}

	a.form.Widgets = []widgets.Widget{
		a.enable,
		&widgets.Label{X: 2, Y: 4, Text: "Delay (ms)"},
		a.delay,
		&widgets.Label{X: 2, Y: 5, Text: "Rate (cps)"},
		a.rate,
		&widgets.Label{X: 2, Y: 7, Text: "Try it here"},
		a.test,
		resetBtn,
		closeBtn,
		a.status,
	}

	a.load()
	return a
}

func (a *app) load() {
	if !xset.Available() {
		a.enable.Disabled = true
		a.syncEnabled()
		a.status.Text = "No X display available; settings are read-only."
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings, err := a.xc.Query(ctx)
	if err != nil {
		log.Error().Err(err).Msg("KeyRepeat: query failed")
		a.host.ShowError("Keyboard Repeat", fmt.Sprintf("Could not read keyboard settings:\n%v", err))
		a.enable.Disabled = true
		a.syncEnabled()
		return
	}
	a.enable.Checked = settings.Repeat.Enabled
	a.delay.Value = clamp(settings.Repeat.Delay, a.delay.Min, a.delay.Max)
	a.rate.Value = clamp(settings.Repeat.Rate, a.rate.Min, a.rate.Max)
	a.syncEnabled()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (a *app) syncEnabled() {
	on := a.enable.Checked && !a.enable.Disabled
	a.delay.Disabled = !on
	a.rate.Disabled = !on
}

// reset restores the X defaults: repeat on, 500 ms delay, 30 cps.
func (a *app) reset() {
	a.enable.Checked = true
	a.delay.Value = 500
	a.rate.Value = 30
	a.syncEnabled()
	a.apply()
}

func (a *app) apply() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if a.enable.Checked {
		err = a.xc.SetRepeat(ctx, a.delay.Value, a.rate.Value)
	} else {
		err = a.xc.DisableRepeat(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("KeyRepeat: apply failed")
		a.status.Text = fmt.Sprintf("Apply failed: %v", err)
		return
	}
	a.status.Text = "Settings applied."
}

func (a *app) HandleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		a.host.CloseApp()
		return
	}
	a.form.HandleKey(ev)
}

func (a *app) Render() [][]panel.Cell {
	w, h := a.Size()
	if w <= 0 || h <= 0 {
		return [][]panel.Cell{}
	}
	buf := panel.NewBuffer(w, h)
	th := panel.CurrentTheme()
	panel.DrawText(buf, 2, 0, th.Title, "Keyboard auto-repeat")
	a.form.Draw(buf)
	panel.DrawText(buf, 2, h-1, th.Dim, "Left/Right: adjust   Changes apply immediately   Esc: close")
	return buf
}
