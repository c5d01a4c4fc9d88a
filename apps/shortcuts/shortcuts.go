// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/shortcuts/shortcuts.go
// Summary: IceWM keyboard shortcut editor with live file watching.

package shortcuts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/config"
	"github.com/DeltaResero/IceWMCP/internal/icewm"
	"github.com/DeltaResero/IceWMCP/internal/keysfile"
	"github.com/DeltaResero/IceWMCP/internal/runcmd"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
	"github.com/DeltaResero/IceWMCP/registry"
)

type mode int

const (
	modeList mode = iota
	modeEdit
	modePreview
)

type app struct {
	panel.BaseApp
	host panel.Host
	path string

	mu    sync.Mutex
	set   *keysfile.Set
	mode  mode
	dirty bool

	// list view
	listForm widgets.Form
	table    *widgets.Table
	status   *widgets.Label

	// edit view
	editForm  widgets.Form
	ctrl      *widgets.Checkbox
	alt       *widgets.Checkbox
	shift     *widgets.Checkbox
	key       *widgets.Entry
	command   *widgets.Entry
	editCombo string // non-empty while editing an existing binding

	// preview view
	preview   [][]span
	highlight bool
}

func init() {
	registry.RegisterBuiltInProvider(func() (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "shortcuts",
			DisplayName: "Keyboard Shortcuts",
			Description: "Edit IceWM key bindings",
			Category:    "session",
		}, New
	})
}

// keysPath resolves the keys file, honoring the config override.
func keysPath() string {
	if p := config.App("shortcuts").GetString("shortcuts", "keys_file", ""); p != "" {
		return p
	}
	return icewm.KeysFile()
}

// New loads the keys file and builds the editor.
func New(host panel.Host) panel.App {
	a := &app{
		BaseApp:   panel.NewBaseApp("Keyboard Shortcuts"),
		host:      host,
		path:      keysPath(),
		highlight: config.App("shortcuts").GetBool("shortcuts", "highlight_commands", true),
	}

	a.table = &widgets.Table{
		X: 2, Y: 2, W: 60, H: 10,
		Columns: []widgets.Column{
			{Title: "Key", Width: 22},
			{Title: "Command", Width: 36},
		},
		OnActivate: func(int) { a.openEditSelected() },
	}
	a.status = &widgets.Label{X: 2, Y: 16}

	addBtn := &widgets.Button{X: 2, Y: 13, Text: "Add", OnPress: a.openAdd}
	editBtn := &widgets.Button{X: 10, Y: 13, Text: "Edit", OnPress: a.openEditSelected}
	delBtn := &widgets.Button{X: 19, Y: 13, Text: "Delete", OnPress: a.deleteSelected}
	saveBtn := &widgets.Button{X: 30, Y: 13, Text: "Save", OnPress: a.save}
	previewBtn := &widgets.Button{X: 39, Y: 13, Text: "Preview", OnPress: a.openPreview}
	closeBtn := &widgets.Button{X: 51, Y: 13, Text: "Close", OnPress: a.close}

	a.listForm.Widgets = []widgets.Widget{
		a.table, addBtn, editBtn, delBtn, saveBtn, previewBtn, closeBtn, a.status,
	}

	a.ctrl = &widgets.Checkbox{X: 2, Y: 2, Text: "Ctrl"}
	a.alt = &widgets.Checkbox{X: 12, Y: 2, Text: "Alt"}
	a.shift = &widgets.Checkbox{X: 21, Y: 2, Text: "Shift"}
	a.key = &widgets.Entry{X: 14, Y: 4, W: 24}
	a.command = &widgets.Entry{X: 14, Y: 6, W: 44}
	okBtn := &widgets.Button{X: 2, Y: 8, Text: "OK", OnPress: a.commitEdit}
	testBtn := &widgets.Button{X: 10, Y: 8, Text: "Test", OnPress: a.testCommand}
	cancelBtn := &widgets.Button{X: 19, Y: 8, Text: "Cancel", OnPress: func() { a.setMode(modeList) }}

	a.editForm.Widgets = []widgets.Widget{
		a.ctrl, a.alt, a.shift,
		&widgets.Label{X: 2, Y: 4, Text: "Key"},
		a.key,
		&widgets.Label{X: 2, Y: 6, Text: "Command"},
		a.command,
		okBtn, testBtn, cancelBtn,
	}

	a.load()
	return a
}

func (a *app) load() {
	set, err := keysfile.Load(a.path)
	if err != nil {
		log.Error().Err(err).Str("path", a.path).Msg("Shortcuts: load failed")
		a.host.ShowError("Keyboard Shortcuts", fmt.Sprintf("Could not read %s:\n%v", a.path, err))
		set = keysfile.NewSet()
	}
	a.set = set
	a.refreshTable()
}

func (a *app) refreshTable() {
	bindings := a.set.Bindings()
	rows := make([][]string, len(bindings))
	for i, b := range bindings {
		rows[i] = []string{b.Combo, b.Command}
	}
	a.table.SetRows(rows)
	a.status.Text = fmt.Sprintf("%d bindings in %s", len(bindings), a.path)
	if a.dirty {
		a.status.Text += "  (unsaved changes)"
	}
}

func (a *app) setMode(m mode) {
	a.mode = m
	a.Notify()
}

func (a *app) selectedCombo() (string, bool) {
	bindings := a.set.Bindings()
	if a.table.Selected < 0 || a.table.Selected >= len(bindings) {
		return "", false
	}
	return bindings[a.table.Selected].Combo, true
}

func (a *app) openAdd() {
	a.editCombo = ""
	a.ctrl.Checked, a.alt.Checked, a.shift.Checked = false, false, false
	a.key.SetValue("")
	a.command.SetValue("")
	a.editForm.SetFocus(a.ctrl)
	a.setMode(modeEdit)
}

func (a *app) openEditSelected() {
	combo, ok := a.selectedCombo()
	if !ok {
		return
	}
	cmd, _ := a.set.Get(combo)
	ctrl, alt, shift, key := keysfile.SplitCombo(combo)
	a.editCombo = combo
	a.ctrl.Checked, a.alt.Checked, a.shift.Checked = ctrl, alt, shift
	a.key.SetValue(key)
	a.command.SetValue(cmd)
	a.editForm.SetFocus(a.key)
	a.setMode(modeEdit)
}

func (a *app) commitEdit() {
	combo := keysfile.JoinCombo(a.ctrl.Checked, a.alt.Checked, a.shift.Checked, a.key.Value)
	cmd := a.command.Value

	var err error
	if a.editCombo == "" {
		err = a.set.Add(combo, cmd)
	} else if combo == a.editCombo {
		err = a.set.Update(combo, cmd)
	} else {
		// Combo changed: insert the new one first so a collision keeps the
		// original binding intact.
		if err = a.set.Add(combo, cmd); err == nil {
			a.set.Delete(a.editCombo)
		}
	}
	if err != nil {
		a.host.ShowError("Keyboard Shortcuts", err.Error())
		return
	}
	a.dirty = true
	a.refreshTable()
	a.setMode(modeList)
}

// testCommand launches the command under edit so the binding can be verified
// before it is saved.
func (a *app) testCommand() {
	cmd := a.command.Value
	if cmd == "" {
		return
	}
	if err := runcmd.Launch(cmd); err != nil {
		a.host.ShowError("Keyboard Shortcuts", fmt.Sprintf("Could not run the command:\n%v", err))
	}
}

func (a *app) deleteSelected() {
	combo, ok := a.selectedCombo()
	if !ok {
		return
	}
	a.host.Confirm("Delete Shortcut", fmt.Sprintf("Delete the binding for %q?", combo), func(yes bool) {
		if !yes {
			return
		}
		a.mu.Lock()
		a.set.Delete(combo)
		a.dirty = true
		a.refreshTable()
		a.mu.Unlock()
		a.Notify()
	})
}

// save confirms before overwriting an existing keys file.
func (a *app) save() {
	if _, err := os.Stat(a.path); err != nil {
		a.writeKeys()
		return
	}
	a.host.Confirm("Confirm Save", fmt.Sprintf("Overwrite %s?", a.path), func(yes bool) {
		if !yes {
			return
		}
		a.mu.Lock()
		a.writeKeys()
		a.mu.Unlock()
		a.Notify()
	})
}

func (a *app) writeKeys() {
	if err := keysfile.Save(a.path, a.set); err != nil {
		log.Error().Err(err).Str("path", a.path).Msg("Shortcuts: save failed")
		a.host.ShowError("Keyboard Shortcuts", fmt.Sprintf("Could not save %s:\n%v", a.path, err))
		return
	}
	a.dirty = false
	a.refreshTable()
	log.Info().Str("path", a.path).Msg("Shortcuts: saved")

	if !icewm.InSession() {
		a.host.ShowInfo("Keyboard Shortcuts",
			"Saved. IceWM does not appear to be running; the bindings take effect on its next start.")
		return
	}
	a.host.Confirm("Restart IceWM", "Restart IceWM now so the new bindings take effect?", func(yes bool) {
		if !yes {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := icewm.Restart(ctx); err != nil {
			a.host.ShowError("Keyboard Shortcuts", err.Error())
		}
	})
}

func (a *app) close() {
	if !a.dirty {
		a.host.CloseApp()
		return
	}
	a.host.Confirm("Keyboard Shortcuts", "Discard unsaved changes?", func(yes bool) {
		if yes {
			a.host.CloseApp()
		}
	})
}

func (a *app) openPreview() {
	a.preview = a.renderPreview(a.set.Serialize())
	a.setMode(modePreview)
}

// Run watches the keys file so edits made outside the dialog show up live.
func (a *app) Run() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn().Err(err).Msg("Shortcuts: file watching unavailable")
		<-a.Done()
		return nil
	}
	defer watcher.Close()

	// Watch the directory: atomic saves replace the file, which would drop a
	// watch set on the file itself.
	if err := watcher.Add(filepath.Dir(a.path)); err != nil {
		log.Warn().Err(err).Str("path", a.path).Msg("Shortcuts: watch failed")
		<-a.Done()
		return nil
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != a.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			a.reloadFromDisk()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Shortcuts: watch error")
		case <-a.Done():
			return nil
		}
	}
}

func (a *app) reloadFromDisk() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dirty {
		// Unsaved local edits win; note the conflict instead of clobbering.
		a.status.Text = "Keys file changed on disk; your unsaved edits are kept."
		a.Notify()
		return
	}
	set, err := keysfile.Load(a.path)
	if err != nil {
		log.Warn().Err(err).Msg("Shortcuts: reload failed")
		return
	}
	a.set = set
	a.refreshTable()
	a.status.Text += "  (reloaded from disk)"
	log.Info().Str("path", a.path).Msg("Shortcuts: reloaded after external change")
	a.Notify()
}

func (a *app) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.mode {
	case modeList:
		switch ev.Key() {
		case tcell.KeyEscape:
			a.close()
			return
		case tcell.KeyCtrlP:
			a.openPreview()
			return
		}
		a.listForm.HandleKey(ev)
	case modeEdit:
		if ev.Key() == tcell.KeyEscape {
			a.mode = modeList
			return
		}
		a.editForm.HandleKey(ev)
	case modePreview:
		a.mode = modeList
	}
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

	switch a.mode {
	case modeList:
		panel.DrawText(buf, 2, 0, th.Title, "Custom key bindings")
		a.listForm.Draw(buf)
		panel.DrawText(buf, 2, h-1, th.Dim, "Enter: edit   Ctrl+P: preview   Esc: close")
	case modeEdit:
		title := "Add binding"
		if a.editCombo != "" {
			title = "Edit binding " + a.editCombo
		}
		panel.DrawText(buf, 2, 0, th.Title, title)
		a.editForm.Draw(buf)
		panel.DrawText(buf, 2, h-1, th.Dim, "Space: toggle modifier   Esc: cancel")
	case modePreview:
		panel.DrawText(buf, 2, 0, th.Title, "Preview of "+a.path)
		for y, line := range a.preview {
			if y+2 >= h-1 {
				break
			}
			x := 2
			for _, sp := range line {
				x = panel.DrawText(buf, x, y+2, sp.style, sp.text)
			}
		}
		panel.DrawText(buf, 2, h-1, th.Dim, "Any key: back")
	}
	return buf
}
