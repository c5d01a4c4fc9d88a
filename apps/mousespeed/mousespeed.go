// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/mousespeed/mousespeed.go
// Summary: Pointer acceleration dialog with a timed revert safety net.

package mousespeed

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/config"
	"github.com/DeltaResero/IceWMCP/internal/history"
	"github.com/DeltaResero/IceWMCP/internal/xset"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
	"github.com/DeltaResero/IceWMCP/registry"
)

type app struct {
	panel.BaseApp
	host panel.Host
	xc   *xset.Client

	form      widgets.Form
	accel     *widgets.Slider
	threshold *widgets.Slider
	applyBtn  *widgets.Button
	status    *widgets.Label

	mu          sync.Mutex
	prev        xset.Mouse
	pending     bool
	countdown   int
	timeout     int
	historyPath string
}

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "mousespeed",
			DisplayName: "Mouse Speed",
			Description: "Pointer acceleration and threshold",
			Category:    "input",
		}, New
	})
}

// New builds the dialog. A bad pointer speed can make the desktop unusable, so
// applied settings revert automatically unless confirmed within the timeout.
func New(host panel.Host) panel.App {
	a := &app{
		BaseApp:     panel.NewBaseApp("Mouse Speed"),
		host:        host,
		xc:          xset.NewDefault(),
		timeout:     config.App("mousespeed").GetInt("mousespeed", "revert_timeout_sec", 7),
		historyPath: history.DefaultPath(),
	}

	a.accel = &widgets.Slider{X: 16, Y: 2, W: 30, Min: 1, Max: 20}
	a.threshold = &widgets.Slider{X: 16, Y: 3, W: 30, Min: 1, Max: 10}
	a.applyBtn = &widgets.Button{X: 2, Y: 5, Text: "Apply", OnPress: a.applyOrKeep}
	closeBtn := &widgets.Button{X: 12, Y: 5, Text: "Close", OnPress: host.CloseApp}
	a.status = &widgets.Label{X: 2, Y: 7}

	a.form.Widgets = []widgets.Widget{
		&widgets.Label{X: 2, Y: 2, Text: "Acceleration"},
		a.accel,
		&widgets.Label{X: 2, Y: 3, Text: "Threshold"},
		a.threshold,
		a.applyBtn,
		closeBtn,
		a.status,
	}

	a.load()
	return a
}

func (a *app) load() {
	if !xset.Available() {
		a.accel.Disabled = true
		a.threshold.Disabled = true
		a.applyBtn.Disabled = true
		a.status.Text = "No X display available; settings are read-only."
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings, err := a.xc.Query(ctx)
	if err != nil {
		log.Error().Err(err).Msg("MouseSpeed: query failed")
		a.host.ShowError("Mouse Speed", fmt.Sprintf("Could not read pointer settings:\n%v", err))
		a.applyBtn.Disabled = true
		return
	}
	a.prev = settings.Mouse
	a.accel.Value = clamp(settings.Mouse.AccelNum, a.accel.Min, a.accel.Max)
	a.threshold.Value = clamp(settings.Mouse.Threshold, a.threshold.Min, a.threshold.Max)
	a.showLastChange()
}

// showLastChange surfaces the most recent kept change from the journal.
func (a *app) showLastChange() {
	if a.historyPath == "" {
		return
	}
	store, err := history.Open(a.historyPath)
	if err != nil {
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if c, ok, err := store.LastFor(ctx, "mousespeed", "acceleration"); err == nil && ok {
		a.status.Text = fmt.Sprintf("Last kept change: %s to %s on %s.",
			c.Previous, c.Current, c.AppliedAt.Local().Format("2006-01-02"))
	}
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

// Run drives the revert countdown.
func (a *app) Run() error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if a.tick() {
				a.Notify()
			}
		case <-a.Done():
			return nil
		}
	}
}

// tick advances the countdown and reverts when it reaches zero. Returns true
// when the display changed.
func (a *app) tick() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.pending {
		return false
	}
	a.countdown--
	if a.countdown > 0 {
		a.status.Text = fmt.Sprintf("Reverting in %d seconds unless you press Keep.", a.countdown)
		return true
	}
	a.revertLocked()
	return true
}

func (a *app) revertLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.xc.SetMouseRaw(ctx, a.prev.Accel, strconv.Itoa(a.prev.Threshold)); err != nil {
		log.Error().Err(err).Msg("MouseSpeed: revert failed")
		a.status.Text = fmt.Sprintf("Revert failed: %v", err)
	} else {
		log.Info().Str("accel", a.prev.Accel).Msg("MouseSpeed: reverted")
		a.status.Text = "Previous settings restored."
		a.accel.Value = clamp(a.prev.AccelNum, a.accel.Min, a.accel.Max)
		a.threshold.Value = clamp(a.prev.Threshold, a.threshold.Min, a.threshold.Max)
	}
	a.pending = false
	a.applyBtn.Text = "Apply"
}

// applyOrKeep applies the sliders on the first press and confirms the change
// while the countdown runs.
func (a *app) applyOrKeep() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pending {
		a.keepLocked()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.xc.SetMouse(ctx, a.accel.Value, a.threshold.Value); err != nil {
		log.Error().Err(err).Msg("MouseSpeed: apply failed")
		a.host.ShowError("Mouse Speed", fmt.Sprintf("Could not apply settings:\n%v", err))
		return
	}
	a.pending = true
	a.countdown = a.timeout
	a.applyBtn.Text = "Keep"
	a.status.Text = fmt.Sprintf("Reverting in %d seconds unless you press Keep.", a.countdown)
}

func (a *app) keepLocked() {
	a.pending = false
	a.applyBtn.Text = "Apply"
	a.status.Text = "Settings kept."

	newAccel := strconv.Itoa(a.accel.Value) + "/1"
	newThreshold := strconv.Itoa(a.threshold.Value)
	a.recordChange("acceleration", a.prev.Accel, newAccel)
	a.recordChange("threshold", strconv.Itoa(a.prev.Threshold), newThreshold)

	a.prev = xset.Mouse{
		Accel:     newAccel,
		AccelNum:  a.accel.Value,
		Threshold: a.threshold.Value,
	}
	log.Info().Str("accel", newAccel).Str("threshold", newThreshold).Msg("MouseSpeed: settings kept")
}

// recordChange journals a confirmed change. Journal problems are logged, never
// surfaced; the settings change already succeeded.
func (a *app) recordChange(setting, previous, current string) {
	if a.historyPath == "" {
		return
	}
	store, err := history.Open(a.historyPath)
	if err != nil {
		log.Warn().Err(err).Msg("MouseSpeed: history unavailable")
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Record(ctx, "mousespeed", setting, previous, current); err != nil {
		log.Warn().Err(err).Msg("MouseSpeed: history record failed")
	}
}

func (a *app) HandleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		a.mu.Lock()
		if a.pending {
			a.revertLocked()
			a.mu.Unlock()
			return
		}
		a.mu.Unlock()
		a.host.CloseApp()
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.form.HandleKey(ev)
}

func (a *app) Render() [][]panel.Cell {
	w, h := a.Size()
	if w <= 0 || h <= 0 {
		return [][]panel.Cell{}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	buf := panel.NewBuffer(w, h)
	th := panel.CurrentTheme()
	panel.DrawText(buf, 2, 0, th.Title, "Pointer acceleration")
	a.form.Draw(buf)
	panel.DrawText(buf, 2, h-1, th.Dim, "Left/Right: adjust   Esc: close")
	return buf
}
