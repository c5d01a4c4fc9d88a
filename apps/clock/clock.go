// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/clock/clock.go
// Summary: Date, time, and timezone dialog backed by timedated.

package clock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/config"
	"github.com/DeltaResero/IceWMCP/internal/privexec"
	"github.com/DeltaResero/IceWMCP/internal/timedate"
	"github.com/DeltaResero/IceWMCP/internal/zoneinfo"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
	"github.com/DeltaResero/IceWMCP/registry"
)

const (
	tabTime = iota
	tabZone
	tabOptions
)

type app struct {
	panel.BaseApp
	host panel.Host
	td   timedate.Client
	db   *zoneinfo.DB

	mu   sync.Mutex
	tabs *widgets.Tabs

	// time tab
	timeForm  widgets.Form
	clockLine *widgets.Label
	ntp       *widgets.Checkbox
	dateEntry *widgets.Entry
	timeEntry *widgets.Entry
	timeMsg   *widgets.Label

	// zone tab
	zoneForm  widgets.Form
	filter    *widgets.Entry
	zoneTable *widgets.Table
	zoneMsg   *widgets.Label
	zones     []string
	visible   []string
	current   string
	lastNTP   bool

	// options tab
	optForm widgets.Form
	fmt24   *widgets.Checkbox
	showSec *widgets.Checkbox
	optMsg  *widgets.Label
}

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "clock",
			DisplayName: "Date & Time",
			Description: "System clock, NTP and timezone",
			Category:    "session",
		}, New
	})
}

// New builds the dialog and loads the clock state.
func New(host panel.Host) panel.App {
	a := &app{
		BaseApp: panel.NewBaseApp("Date & Time"),
		host:    host,
		td:      timedate.New(),
	}

	a.tabs = &widgets.Tabs{X: 2, Y: 0, Titles: []string{"Time & Date", "Time Zone", "Options"}}

	a.clockLine = &widgets.Label{X: 2, Y: 2}
	a.ntp = &widgets.Checkbox{X: 2, Y: 4, Text: "Synchronize with network time (NTP)", OnToggle: func(bool) { a.syncNTP() }}
	a.dateEntry = &widgets.Entry{X: 14, Y: 6, W: 14}
	a.timeEntry = &widgets.Entry{X: 14, Y: 7, W: 14}
	a.timeMsg = &widgets.Label{X: 2, Y: 11}
	applyTime := &widgets.Button{X: 2, Y: 9, Text: "Apply", OnPress: a.applyTime}
	closeTime := &widgets.Button{X: 12, Y: 9, Text: "Close", OnPress: host.CloseApp}
	a.timeForm.Widgets = []widgets.Widget{
		a.clockLine,
		a.ntp,
		&widgets.Label{X: 2, Y: 6, Text: "Date"},
		a.dateEntry,
		&widgets.Label{X: 2, Y: 7, Text: "Time"},
		a.timeEntry,
		applyTime, closeTime,
		a.timeMsg,
	}

	a.filter = &widgets.Entry{X: 10, Y: 2, W: 30, OnChange: func(string) { a.applyFilter() }}
	a.zoneTable = &widgets.Table{
		X: 2, Y: 4, W: 50, H: 10,
		Columns:    []widgets.Column{{Title: "Zone", Width: 48}},
		OnActivate: func(int) { a.applyZone() },
	}
	a.zoneMsg = &widgets.Label{X: 2, Y: 17}
	applyZone := &widgets.Button{X: 2, Y: 15, Text: "Apply", OnPress: a.applyZone}
	a.zoneForm.Widgets = []widgets.Widget{
		&widgets.Label{X: 2, Y: 2, Text: "Filter"},
		a.filter,
		a.zoneTable,
		applyZone,
		a.zoneMsg,
	}

	a.fmt24 = &widgets.Checkbox{X: 2, Y: 2, Text: "24-hour clock", OnToggle: func(bool) { a.saveOptions() }}
	a.showSec = &widgets.Checkbox{X: 2, Y: 3, Text: "Show seconds", OnToggle: func(bool) { a.saveOptions() }}
	a.optMsg = &widgets.Label{X: 2, Y: 5}
	a.optForm.Widgets = []widgets.Widget{a.fmt24, a.showSec, a.optMsg}

	cfg := config.App("clock")
	a.fmt24.Checked = cfg.GetBool("clock", "format_24h", false)
	a.showSec.Checked = cfg.GetBool("clock", "show_seconds", true)

	a.loadStatus()
	a.loadZones()
	return a
}

func (a *app) loadStatus() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	st, err := a.td.Status(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Clock: status unavailable")
		a.timeMsg.Text = fmt.Sprintf("Clock service unavailable: %v", err)
		return
	}
	a.ntp.Checked = st.NTP
	a.lastNTP = st.NTP
	a.current = st.Timezone
	a.syncNTP()
	if st.NTP && st.NTPSynced {
		a.timeMsg.Text = "Clock is synchronized."
	}
}

func (a *app) loadZones() {
	db, err := zoneinfo.Locate()
	if err != nil {
		log.Warn().Err(err).Msg("Clock: zoneinfo unavailable")
		a.zoneMsg.Text = "No timezone database found."
		return
	}
	a.db = db
	zones, err := db.Zones()
	if err != nil {
		log.Warn().Err(err).Msg("Clock: zone walk failed")
		a.zoneMsg.Text = fmt.Sprintf("Could not list zones: %v", err)
		return
	}
	a.zones = zones
	if a.current == "" {
		if zone, err := db.Current(); err == nil {
			a.current = zone
		}
	}
	a.applyFilter()
}

func (a *app) applyFilter() {
	needle := strings.ToLower(a.filter.Value)
	a.visible = a.visible[:0]
	for _, z := range a.zones {
		if needle == "" || strings.Contains(strings.ToLower(z), needle) {
			a.visible = append(a.visible, z)
		}
	}
	rows := make([][]string, len(a.visible))
	selected := 0
	for i, z := range a.visible {
		label := z
		if z == a.current {
			label += "  (current)"
			selected = i
		}
		rows[i] = []string{label}
	}
	a.zoneTable.SetRows(rows)
	if needle == "" {
		a.zoneTable.Selected = selected
	}
	a.zoneMsg.Text = fmt.Sprintf("%d zones, current: %s", len(a.visible), a.current)
}

// syncNTP greys the manual fields out while NTP drives the clock.
func (a *app) syncNTP() {
	manual := !a.ntp.Checked
	a.dateEntry.Disabled = !manual
	a.timeEntry.Disabled = !manual
	if manual && a.dateEntry.Value == "" {
		now := time.Now()
		a.dateEntry.SetValue(now.Format("2006-01-02"))
		a.timeEntry.SetValue(now.Format("15:04:05"))
	}
}

func (a *app) applyTime() {
	var ch timedate.Changeset
	ntp := a.ntp.Checked
	if ntp != a.lastNTP {
		ch.NTP = &ntp
	}

	if !ntp {
		stamp := strings.TrimSpace(a.dateEntry.Value + " " + a.timeEntry.Value)
		when, err := time.ParseInLocation("2006-01-02 15:04:05", stamp, time.Local)
		if err != nil {
			a.host.ShowError("Date & Time", "Enter the date as YYYY-MM-DD and the time as HH:MM:SS.")
			return
		}
		ch.Time = &when
	}
	if ch.Empty() {
		a.host.ShowInfo("Date & Time", "Nothing to change.")
		return
	}
	if a.applyChangeset(ch, a.timeMsg) {
		a.lastNTP = ntp
	}
}

func (a *app) applyZone() {
	if a.zoneTable.Selected < 0 || a.zoneTable.Selected >= len(a.visible) {
		return
	}
	zone := a.visible[a.zoneTable.Selected]
	if a.db != nil && !a.db.HasZone(zone) {
		a.host.ShowError("Date & Time", fmt.Sprintf("Zone %q is missing from the database.", zone))
		return
	}
	if a.applyChangeset(timedate.Changeset{Timezone: zone}, a.zoneMsg) {
		a.current = zone
		a.applyFilter()
	}
}

func (a *app) applyChangeset(ch timedate.Changeset, msg *widgets.Label) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.td.Apply(ctx, ch); err != nil {
		if errors.Is(err, privexec.ErrCancelled) {
			msg.Text = "Change cancelled."
			return false
		}
		log.Error().Err(err).Msg("Clock: apply failed")
		a.host.ShowError("Date & Time", fmt.Sprintf("Could not apply the change:\n%v", err))
		return false
	}
	log.Info().Msg("Clock: change applied")
	msg.Text = "Change applied."
	return true
}

func (a *app) saveOptions() {
	cfg := config.App("clock")
	section := cfg.Section("clock")
	if section == nil {
		cfg.RegisterDefaults("clock", config.Section{})
		section = cfg.Section("clock")
	}
	section["format_24h"] = a.fmt24.Checked
	section["show_seconds"] = a.showSec.Checked
	if err := config.SaveApp("clock"); err != nil {
		log.Warn().Err(err).Msg("Clock: could not save options")
		a.optMsg.Text = fmt.Sprintf("Could not save options: %v", err)
		return
	}
	a.optMsg.Text = "Options saved."
}

func (a *app) clockFormat() string {
	switch {
	case a.fmt24.Checked && a.showSec.Checked:
		return "Mon 2006-01-02 15:04:05 MST"
	case a.fmt24.Checked:
		return "Mon 2006-01-02 15:04 MST"
	case a.showSec.Checked:
		return "Mon 2006-01-02 03:04:05 PM MST"
	default:
		return "Mon 2006-01-02 03:04 PM MST"
	}
}

// Run updates the clock line every second.
func (a *app) Run() error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	update := func() {
		a.mu.Lock()
		a.clockLine.Text = "Now: " + time.Now().Format(a.clockFormat())
		a.mu.Unlock()
		a.Notify()
	}
	update()
	for {
		select {
		case <-ticker.C:
			update()
		case <-a.Done():
			return nil
		}
	}
}

func (a *app) activeForm() *widgets.Form {
	switch a.tabs.Active {
	case tabZone:
		return &a.zoneForm
	case tabOptions:
		return &a.optForm
	default:
		return &a.timeForm
	}
}

func (a *app) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch ev.Key() {
	case tcell.KeyEscape:
		a.host.CloseApp()
		return
	case tcell.KeyCtrlL:
		if a.tabs.Active < len(a.tabs.Titles)-1 {
			a.tabs.Active++
		}
		return
	case tcell.KeyCtrlH:
		if a.tabs.Active > 0 {
			a.tabs.Active--
		}
		return
	}
	a.activeForm().HandleKey(ev)
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
	a.tabs.Draw(buf, false)
	a.activeForm().Draw(buf)
	panel.DrawText(buf, 2, h-1, th.Dim, "Ctrl+H/Ctrl+L: switch tab   Esc: close")
	return buf
}
