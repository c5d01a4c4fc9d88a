// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/cursors/cursors.go
// Summary: Installs themed XPM cursors into the IceWM cursors directory.

package cursors

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/internal/icewm"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
	"github.com/DeltaResero/IceWMCP/registry"
)

// roles are the cursor shapes IceWM reads from the cursors directory.
var roles = []string{
	"left", "right", "move",
	"sizeB", "sizeBL", "sizeBR",
	"sizeL", "sizeR",
	"sizeT", "sizeTL", "sizeTR",
}

type app struct {
	panel.BaseApp
	host panel.Host
	dir  string

	form   widgets.Form
	table  *widgets.Table
	source *widgets.Entry
	status *widgets.Label
}

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "cursors",
			DisplayName: "Mouse Cursors",
			Description: "Install themed XPM cursors",
			Category:    "display",
		}, New
	})
}

// New builds the dialog listing the installed cursor roles.
func New(host panel.Host) panel.App {
	a := &app{
		BaseApp: panel.NewBaseApp("Mouse Cursors"),
		host:    host,
		dir:     icewm.CursorsDir(),
	}

	a.table = &widgets.Table{
		X: 2, Y: 2, W: 56, H: 12,
		Columns: []widgets.Column{
			{Title: "Role", Width: 8},
			{Title: "Installed", Width: 10},
			{Title: "Geometry", Width: 24},
		},
	}
	a.source = &widgets.Entry{X: 14, Y: 15, W: 42}
	a.status = &widgets.Label{X: 2, Y: 19}

	installBtn := &widgets.Button{X: 2, Y: 17, Text: "Install", OnPress: a.install}
	removeBtn := &widgets.Button{X: 14, Y: 17, Text: "Remove", OnPress: a.remove}
	closeBtn := &widgets.Button{X: 25, Y: 17, Text: "Close", OnPress: host.CloseApp}

	a.form.Widgets = []widgets.Widget{
		a.table,
		&widgets.Label{X: 2, Y: 15, Text: "XPM file"},
		a.source,
		installBtn, removeBtn, closeBtn,
		a.status,
	}

	a.refresh()
	return a
}

func (a *app) roleFile(role string) string {
	return filepath.Join(a.dir, role+".xpm")
}

func (a *app) refresh() {
	rows := make([][]string, len(roles))
	for i, role := range roles {
		installed, geometry := "no", ""
		if info, err := ParseXPMHeader(a.roleFile(role)); err == nil {
			installed = "yes"
			geometry = info.String()
		}
		rows[i] = []string{role, installed, geometry}
	}
	a.table.SetRows(rows)
}

func (a *app) selectedRole() string {
	if a.table.Selected < 0 || a.table.Selected >= len(roles) {
		return ""
	}
	return roles[a.table.Selected]
}

// install validates the chosen XPM and copies it over the selected role.
func (a *app) install() {
	role := a.selectedRole()
	src := a.source.Value
	if role == "" || src == "" {
		a.status.Text = "Select a role and enter an XPM file path."
		return
	}

	info, err := ParseXPMHeader(src)
	if err != nil {
		a.host.ShowError("Mouse Cursors", err.Error())
		return
	}

	if err := copyFile(src, a.roleFile(role)); err != nil {
		log.Error().Err(err).Str("role", role).Msg("Cursors: install failed")
		a.host.ShowError("Mouse Cursors", fmt.Sprintf("Could not install cursor:\n%v", err))
		return
	}
	log.Info().Str("role", role).Str("source", src).Msg("Cursors: installed")
	a.status.Text = fmt.Sprintf("Installed %s cursor (%s).", role, info)
	a.refresh()
	a.promptRestart()
}

func (a *app) remove() {
	role := a.selectedRole()
	if role == "" {
		return
	}
	path := a.roleFile(role)
	if _, err := os.Stat(path); err != nil {
		a.status.Text = fmt.Sprintf("No %s cursor installed.", role)
		return
	}
	a.host.Confirm("Mouse Cursors", fmt.Sprintf("Remove the %s cursor and return to the default?", role), func(yes bool) {
		if !yes {
			return
		}
		if err := os.Remove(path); err != nil {
			a.host.ShowError("Mouse Cursors", err.Error())
			return
		}
		a.refresh()
		a.status.Text = fmt.Sprintf("Removed %s cursor.", role)
		a.Notify()
	})
}

func (a *app) promptRestart() {
	if !icewm.InSession() {
		return
	}
	a.host.Confirm("Restart IceWM", "Restart IceWM now so the cursors take effect?", func(yes bool) {
		if !yes {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := icewm.Restart(ctx); err != nil {
			a.host.ShowError("Mouse Cursors", err.Error())
		}
	})
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create cursors directory: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.CreateTemp(filepath.Dir(dst), ".cursor-*")
	if err != nil {
		return fmt.Errorf("create cursor file: %w", err)
	}
	defer os.Remove(out.Name())

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy cursor: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close cursor file: %w", err)
	}
	return os.Rename(out.Name(), dst)
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
	panel.DrawText(buf, 2, 0, th.Title, "Cursors in "+a.dir)
	a.form.Draw(buf)
	panel.DrawText(buf, 2, h-1, th.Dim, "Up/Down: pick role   Tab: next field   Esc: close")
	return buf
}
