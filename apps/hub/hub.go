// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/hub/hub.go
// Summary: Launcher listing every registered applet by category.

package hub

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/config"
	"github.com/DeltaResero/IceWMCP/internal/runcmd"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
	"github.com/DeltaResero/IceWMCP/registry"
)

type app struct {
	panel.BaseApp
	host panel.Host
	reg  *registry.Registry

	launch func(cmdline string) error

	form    widgets.Form
	table   *widgets.Table
	status  *widgets.Label
	entries []*registry.AppEntry
}

// Register adds the hub to the registry. The hub needs the registry itself to
// list and open applets, so it cannot use the plain provider hook.
func Register(reg *registry.Registry) {
	reg.RegisterBuiltIn(&registry.Manifest{
		Name:        "hub",
		DisplayName: "Control Panel",
		Description: "IceWM control panel hub",
		Category:    "session",
	}, func(host panel.Host) panel.App {
		return New(host, reg)
	})
}

// New builds the hub over the given registry.
func New(host panel.Host, reg *registry.Registry) panel.App {
	a := &app{
		BaseApp: panel.NewBaseApp("IceWM Control Panel"),
		host:    host,
		reg:     reg,
		launch:  runcmd.Launch,
	}

	a.table = &widgets.Table{
		X: 2, Y: 2, W: 62, H: 14,
		Columns: []widgets.Column{
			{Title: "Applet", Width: 18},
			{Title: "Category", Width: 10},
			{Title: "Description", Width: 32},
		},
		OnActivate: func(int) { a.open() },
	}
	a.status = &widgets.Label{X: 2, Y: 19}
	openBtn := &widgets.Button{X: 2, Y: 17, Text: "Open", OnPress: a.open}
	quitBtn := &widgets.Button{X: 11, Y: 17, Text: "Quit", OnPress: host.Quit}

	a.form.Widgets = []widgets.Widget{a.table, openBtn, quitBtn, a.status}

	a.reload()
	return a
}

// reload rebuilds the table from the registry, grouped by category. The hub
// itself is not listed.
func (a *app) reload() {
	byCategory := a.reg.ListByCategory()
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	a.entries = a.entries[:0]
	for _, category := range categories {
		for _, entry := range byCategory[category] {
			if entry.Manifest.Name == "hub" {
				continue
			}
			a.entries = append(a.entries, entry)
		}
	}

	rows := make([][]string, len(a.entries))
	for i, entry := range a.entries {
		rows[i] = []string{
			entry.Manifest.DisplayName,
			entry.Manifest.Category,
			entry.Manifest.Description,
		}
	}
	a.table.SetRows(rows)
	a.status.Text = fmt.Sprintf("%d applets available.", len(a.entries))
}

func (a *app) selected() *registry.AppEntry {
	if a.table.Selected < 0 || a.table.Selected >= len(a.entries) {
		return nil
	}
	return a.entries[a.table.Selected]
}

// open starts the selected applet. Built-ins open inside the panel, command
// applets launch detached.
func (a *app) open() {
	entry := a.selected()
	if entry == nil {
		return
	}
	name := entry.Manifest.Name
	if entry.Factory != nil {
		applet := a.reg.CreateApp(name, a.host)
		if applet == nil {
			a.host.ShowError("Control Panel", fmt.Sprintf("Could not create applet %q.", name))
			return
		}
		log.Info().Str("app", name).Msg("Hub: opening applet")
		a.host.OpenApp(applet)
		return
	}

	cmdline := entry.Manifest.CommandLine()
	if err := a.launch(cmdline); err != nil {
		log.Warn().Err(err).Str("app", name).Msg("Hub: launch failed")
		a.host.ShowError("Control Panel", fmt.Sprintf("Could not launch %s:\n%v", entry.Manifest.DisplayName, err))
		return
	}
	a.status.Text = "Launched " + entry.Manifest.DisplayName + "."
}

// rescan picks up external manifests dropped in while the panel runs.
func (a *app) rescan(dir string) {
	if err := a.reg.Scan(dir); err != nil {
		a.host.ShowError("Control Panel", err.Error())
		return
	}
	a.reload()
	a.Notify()
}

// jump moves the selection to the next applet whose name starts with ch.
func (a *app) jump(ch rune) {
	prefix := strings.ToLower(string(ch))
	for off := 1; off <= len(a.entries); off++ {
		i := (a.table.Selected + off) % len(a.entries)
		if strings.HasPrefix(strings.ToLower(a.entries[i].Manifest.DisplayName), prefix) {
			a.table.Selected = i
			return
		}
	}
}

func (a *app) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.host.Quit()
		return
	case tcell.KeyCtrlR:
		if dir, err := config.AppsDir(); err == nil {
			a.rescan(dir)
		}
		return
	case tcell.KeyRune:
		if ch := ev.Rune(); ch != ' ' && len(a.entries) > 0 {
			a.jump(ch)
			return
		}
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
	a.form.Draw(buf)
	panel.DrawText(buf, 2, h-1, th.Dim, "Enter: open   letter: jump   Ctrl+R: rescan   Esc: quit")
	return buf
}
