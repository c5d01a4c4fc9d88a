// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/run/run.go
// Summary: Run dialog with most-recently-used command history.

package run

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/internal/runcmd"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
	"github.com/DeltaResero/IceWMCP/registry"
)

type app struct {
	panel.BaseApp
	host panel.Host

	histPath string
	history  []string
	launch   func(cmdline string) error

	form    widgets.Form
	entry   *widgets.Entry
	table   *widgets.Table
	preview *widgets.Label
	status  *widgets.Label
}

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "run",
			DisplayName: "Run Command",
			Description: "Launch a program",
			Category:    "session",
		}, New
	})
}

// New builds the run dialog and loads the command history.
func New(host panel.Host) panel.App {
	a := &app{
		BaseApp:  panel.NewBaseApp("Run Command"),
		host:     host,
		histPath: runcmd.HistoryFile(),
		launch:   runcmd.Launch,
	}

	a.entry = &widgets.Entry{
		X: 11, Y: 2, W: 46,
		OnChange: func(string) { a.updatePreview() },
		OnSubmit: func(string) { a.run() },
	}
	a.preview = &widgets.Label{X: 2, Y: 4}
	a.table = &widgets.Table{
		X: 2, Y: 6, W: 55, H: 10,
		Columns:    []widgets.Column{{Title: "Recent commands", Width: 53}},
		OnSelect:   func(int) { a.pick() },
		OnActivate: func(int) { a.pick(); a.run() },
	}
	a.status = &widgets.Label{X: 2, Y: 19}
	runBtn := &widgets.Button{X: 2, Y: 17, Text: "Run", OnPress: a.run}
	closeBtn := &widgets.Button{X: 10, Y: 17, Text: "Close", OnPress: host.CloseApp}

	a.form.Widgets = []widgets.Widget{
		&widgets.Label{X: 2, Y: 2, Text: "Command"},
		a.entry,
		a.preview,
		a.table,
		runBtn, closeBtn,
		a.status,
	}

	history, err := runcmd.LoadHistory(a.histPath)
	if err != nil {
		log.Warn().Err(err).Msg("Run: could not load history")
	}
	a.setHistory(history)
	return a
}

func (a *app) setHistory(history []string) {
	a.history = history
	rows := make([][]string, len(history))
	for i, cmd := range history {
		rows[i] = []string{cmd}
	}
	a.table.SetRows(rows)
}

// pick copies the selected history entry into the command field.
func (a *app) pick() {
	if a.table.Selected < 0 || a.table.Selected >= len(a.history) {
		return
	}
	a.entry.SetValue(a.history[a.table.Selected])
	a.updatePreview()
}

func (a *app) updatePreview() {
	a.preview.Text = runcmd.Describe(a.entry.Value)
}

func (a *app) run() {
	cmdline := a.entry.Value
	if cmdline == "" {
		return
	}
	if err := a.launch(cmdline); err != nil {
		log.Warn().Err(err).Str("command", cmdline).Msg("Run: launch failed")
		a.host.ShowError("Run Command", fmt.Sprintf("Could not run the command:\n%v", err))
		return
	}
	a.setHistory(runcmd.PushHistory(a.history, cmdline))
	if a.histPath != "" {
		if err := runcmd.SaveHistory(a.histPath, a.history); err != nil {
			log.Warn().Err(err).Msg("Run: could not save history")
		}
	}
	a.status.Text = "Launched: " + cmdline
	a.entry.SetValue("")
	a.preview.Text = ""
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
	a.form.Draw(buf)
	panel.DrawText(buf, 2, h-1, th.Dim, "Enter: run   Tab: next field   Esc: close")
	return buf
}
