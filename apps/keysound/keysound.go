// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/keysound/keysound.go
// Summary: Keyboard bell and key click configuration dialog.

package keysound

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

	form       widgets.Form
	bellOn     *widgets.Checkbox
	volume     *widgets.Slider
	pitch      *widgets.Slider
	duration   *widgets.Slider
	clickOn    *widgets.Checkbox
	clickVol   *widgets.Slider
	status     *widgets.Label
}

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "keysound",
			DisplayName: "Keyboard Sound",
			Description: "Bell volume, pitch and key click",
			Category:    "input",
		}, New
	})
}

// New builds the dialog and loads the current bell state.
func New(host panel.Host) panel.App {
	a := &app{
		BaseApp: panel.NewBaseApp("Keyboard Sound"),
		host:    host,
		xc:      xset.NewDefault(),
	}

	a.bellOn = &widgets.Checkbox{X: 2, Y: 2, Text: "Enable keyboard bell", OnToggle: func(bool) { a.syncEnabled() }}
	a.volume = &widgets.Slider{X: 16, Y: 4, W: 28, Min: 0, Max: 100}
	a.pitch = &widgets.Slider{X: 16, Y: 5, W: 28, Min: 50, Max: 2000}
	a.duration = &widgets.Slider{X: 16, Y: 6, W: 28, Min: 10, Max: 800}
	a.clickOn = &widgets.Checkbox{X: 2, Y: 8, Text: "Enable key click", OnToggle: func(bool) { a.syncEnabled() }}
	a.clickVol = &widgets.Slider{X: 16, Y: 9, W: 28, Min: 0, Max: 100}
	a.status = &widgets.Label{X: 2, Y: 13}

	apply := &widgets.Button{X: 2, Y: 11, Text: "Apply", OnPress: a.apply}
	testBtn := &widgets.Button{X: 12, Y: 11, Text: "Test", OnPress: a.testBell}
	closeBtn := &widgets.Button{X: 21, Y: 11, Text: "Close", OnPress: host.CloseApp}

	a.form.Widgets = []widgets.Widget{
		a.bellOn,
		&widgets.Label{X: 2, Y: 4, Text: "Volume (%)"},
		a.volume,
		&widgets.Label{X: 2, Y: 5, Text: "Pitch (Hz)"},
		a.pitch,
		&widgets.Label{X: 2, Y: 6, Text: "Duration (ms)"},
		a.duration,
		a.clickOn,
		&widgets.Label{X: 2, Y: 9, Text: "Click (%)"},
		a.clickVol,
		apply,
		testBtn,
		closeBtn,
		a.status,
	}

	a.load()
	return a
}

func (a *app) load() {
	if !xset.Available() {
		a.bellOn.Disabled = true
		a.clickOn.Disabled = true
		a.syncEnabled()
		a.status.Text = "No X display available; settings are read-only."
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings, err := a.xc.Query(ctx)
	if err != nil {
		log.Error().Err(err).Msg("KeySound: query failed")
		a.host.ShowError("Keyboard Sound", fmt.Sprintf("Could not read keyboard settings:\n%v", err))
		a.bellOn.Disabled = true
		a.clickOn.Disabled = true
		a.syncEnabled()
		return
	}
	a.bellOn.Checked = settings.Bell.Enabled
	a.volume.Value = settings.Bell.Volume
	if settings.Bell.Pitch > 0 {
		a.pitch.Value = settings.Bell.Pitch
	} else {
		a.pitch.Value = 400
	}
	if settings.Bell.Duration > 0 {
		a.duration.Value = settings.Bell.Duration
	} else {
		a.duration.Value = 100
	}
	a.clickOn.Checked = settings.KeyClick.Enabled
	a.clickVol.Value = settings.KeyClick.Volume
	a.syncEnabled()
}

func (a *app) syncEnabled() {
	bell := a.bellOn.Checked && !a.bellOn.Disabled
	a.volume.Disabled = !bell
	a.pitch.Disabled = !bell
	a.duration.Disabled = !bell
	click := a.clickOn.Checked && !a.clickOn.Disabled
	a.clickVol.Disabled = !click
}

func (a *app) apply() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if a.bellOn.Checked {
		err = a.xc.SetBell(ctx, a.volume.Value, a.pitch.Value, a.duration.Value)
	} else {
		err = a.xc.DisableBell(ctx)
	}
	if err == nil {
		if a.clickOn.Checked {
			err = a.xc.SetKeyClick(ctx, a.clickVol.Value)
		} else {
			err = a.xc.DisableKeyClick(ctx)
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("KeySound: apply failed")
		a.host.ShowError("Keyboard Sound", fmt.Sprintf("Could not apply settings:\n%v", err))
		return
	}
	a.status.Text = "Settings applied."
}

// testBell applies the bell settings and rings it once.
func (a *app) testBell() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.bellOn.Checked {
		if err := a.xc.SetBell(ctx, a.volume.Value, a.pitch.Value, a.duration.Value); err != nil {
			a.status.Text = fmt.Sprintf("Test failed: %v", err)
			return
		}
	}
	a.host.Beep()
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
	panel.DrawText(buf, 2, 0, th.Title, "Keyboard bell and click")
	a.form.Draw(buf)
	panel.DrawText(buf, 2, h-1, th.Dim, "Tab: next field   Esc: close")
	return buf
}
