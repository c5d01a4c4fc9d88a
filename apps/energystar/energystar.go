// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/energystar/energystar.go
// Summary: Monitor power saving (DPMS) configuration dialog.

package energystar

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

// interval is one choice in the standby/suspend/off selectors.
type interval struct {
	label   string
	seconds int
}

var intervals = []interval{
	{"Never", 0},
	{"5 minutes", 300},
	{"10 minutes", 600},
	{"15 minutes", 900},
	{"20 minutes", 1200},
	{"30 minutes", 1800},
	{"45 minutes", 2700},
	{"1 hour", 3600},
	{"1.5 hours", 5400},
	{"2 hours", 7200},
	{"3 hours", 10800},
	{"4 hours", 14400},
	{"5 hours", 18000},
	{"6 hours", 21600},
	{"9 hours", 32400},
	{"12 hours", 43200},
	{"18 hours", 64800},
	{"24 hours", 86400},
}

func intervalLabels() []string {
	labels := make([]string, len(intervals))
	for i, iv := range intervals {
		labels[i] = iv.label
	}
	return labels
}

// nearestIndex maps seconds reported by the server onto our table.
func nearestIndex(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	best, bestDiff := 0, 1<<31
	for i, iv := range intervals {
		if iv.seconds == 0 {
			continue
		}
		diff := iv.seconds - seconds
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

type app struct {
	panel.BaseApp
	host panel.Host
	xc   *xset.Client

	form    widgets.Form
	enable  *widgets.Checkbox
	standby *widgets.Select
	suspend *widgets.Select
	off     *widgets.Select
	status  *widgets.Label
}

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "energystar",
			DisplayName: "Energy Star",
			Description: "Monitor power saving timers",
			Category:    "display",
		}, New
	})
}

// New builds the dialog and loads the current DPMS state.
func New(host panel.Host) panel.App {
	a := &app{
		BaseApp: panel.NewBaseApp("Energy Star - Monitor Power Saving"),
		host:    host,
		xc:      xset.NewDefault(),
	}

	a.enable = &widgets.Checkbox{X: 2, Y: 2, Text: "Enable monitor power saving"}
	a.standby = &widgets.Select{X: 16, Y: 4, W: 16, Options: intervalLabels()}
	a.suspend = &widgets.Select{X: 16, Y: 5, W: 16, Options: intervalLabels()}
	a.off = &widgets.Select{X: 16, Y: 6, W: 16, Options: intervalLabels()}
	a.status = &widgets.Label{X: 2, Y: 10}

	a.enable.OnToggle = func(bool) { a.syncEnabled() }
	a.standby.OnChange = func(int) { a.enforceOrder(a.standby) }
	a.suspend.OnChange = func(int) { a.enforceOrder(a.suspend) }
	a.off.OnChange = func(int) { a.enforceOrder(a.off) }

	apply := &widgets.Button{X: 2, Y: 8, Text: "Apply", OnPress: a.apply}
	reset := &widgets.Button{X: 12, Y: 8, Text: "Reset", OnPress: a.reset}
	closeBtn := &widgets.Button{X: 22, Y: 8, Text: "Close", OnPress: host.CloseApp}

	a.form.Widgets = []widgets.Widget{
		a.enable,
		&widgets.Label{X: 2, Y: 4, Text: "Standby after"},
		a.standby,
		&widgets.Label{X: 2, Y: 5, Text: "Suspend after"},
		a.suspend,
		&widgets.Label{X: 2, Y: 6, Text: "Power off after"},
		a.off,
		apply,
		reset,
		closeBtn,
		a.status,
	}

	a.load()
	return a
}

func (a *app) load() {
	if !xset.Available() {
		a.setEnabled(false)
		a.status.Text = "No X display available; settings are read-only."
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings, err := a.xc.Query(ctx)
	if err != nil {
		log.Error().Err(err).Msg("EnergyStar: query failed")
		a.host.ShowError("Energy Star", fmt.Sprintf("Could not read display settings:\n%v", err))
		a.setEnabled(false)
		return
	}
	a.enable.Checked = settings.DPMS.Enabled
	a.standby.Index = nearestIndex(settings.DPMS.Standby)
	a.suspend.Index = nearestIndex(settings.DPMS.Suspend)
	a.off.Index = nearestIndex(settings.DPMS.Off)
	a.syncEnabled()
}

func (a *app) setEnabled(enabled bool) {
	a.enable.Disabled = !enabled
	a.standby.Disabled = !enabled
	a.suspend.Disabled = !enabled
	a.off.Disabled = !enabled
}

// syncEnabled greys the timers out while power saving is disabled.
func (a *app) syncEnabled() {
	on := a.enable.Checked && !a.enable.Disabled
	a.standby.Disabled = !on
	a.suspend.Disabled = !on
	a.off.Disabled = !on
}

// enforceOrder keeps standby <= suspend <= off, dragging the neighbors of the
// selector that moved. Never (index 0) is unconstrained.
func (a *app) enforceOrder(changed *widgets.Select) {
	sb, sp, off := a.standby.Index, a.suspend.Index, a.off.Index
	switch changed {
	case a.standby:
		if sb > 0 {
			if sp > 0 && sp < sb {
				a.suspend.Index = sb
			}
			if off > 0 && off < sb {
				a.off.Index = sb
			}
		}
	case a.suspend:
		if sp > 0 {
			if sb > sp {
				a.standby.Index = sp
			}
			if off > 0 && off < sp {
				a.off.Index = sp
			}
		}
	case a.off:
		if off > 0 {
			if sb > off {
				a.standby.Index = off
			}
			if sp > off {
				a.suspend.Index = off
			}
		}
	}
}

// reset discards edits and re-reads what the server currently has.
func (a *app) reset() {
	a.status.Text = "Reloaded current settings."
	a.load()
}

func (a *app) apply() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if a.enable.Checked {
		err = a.xc.SetDPMS(ctx,
			intervals[a.standby.Index].seconds,
			intervals[a.suspend.Index].seconds,
			intervals[a.off.Index].seconds)
	} else {
		err = a.xc.DisableDPMS(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("EnergyStar: apply failed")
		a.host.ShowError("Energy Star", fmt.Sprintf("Could not apply settings:\n%v", err))
		return
	}
	log.Info().Bool("enabled", a.enable.Checked).Msg("EnergyStar: settings applied")
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
	panel.DrawText(buf, 2, 0, th.Title, "Monitor power saving")
	a.form.Draw(buf)
	panel.DrawText(buf, 2, h-1, th.Dim, "Tab: next field   Esc: close")
	return buf
}
