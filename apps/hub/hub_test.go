// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package hub

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/registry"
)

type spyHost struct {
	nopHost
	opened []panel.App
	errors []string
}

func (h *spyHost) OpenApp(a panel.App)      { h.opened = append(h.opened, a) }
func (h *spyHost) ShowError(_, text string) { h.errors = append(h.errors, text) }

type stubApp struct{ panel.BaseApp }

func (*stubApp) HandleKey(*tcell.EventKey) {}
func (*stubApp) Render() [][]panel.Cell    { return nil }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	Register(reg)
	reg.RegisterBuiltIn(&registry.Manifest{
		Name:        "energystar",
		DisplayName: "Energy Star",
		Description: "Monitor power saving",
		Category:    "display",
	}, func(host panel.Host) panel.App {
		return &stubApp{BaseApp: panel.NewBaseApp("Energy Star")}
	})

	dir := t.TempDir()
	appDir := filepath.Join(dir, "xvidtune")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := `{"name":"xvidtune","displayName":"Video Tuner","description":"External tuner","command":"xvidtune","category":"display"}`
	if err := os.WriteFile(filepath.Join(appDir, "manifest.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := reg.Scan(dir); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestReloadListsAppletsWithoutHub(t *testing.T) {
	host := &spyHost{}
	a := New(host, testRegistry(t)).(*app)

	if len(a.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(a.entries))
	}
	for _, entry := range a.entries {
		if entry.Manifest.Name == "hub" {
			t.Error("hub must not list itself")
		}
	}
	if a.entries[0].Manifest.Name != "energystar" {
		t.Errorf("expected builtin first within category, got %q", a.entries[0].Manifest.Name)
	}
}

func TestOpenBuiltInGoesThroughHost(t *testing.T) {
	host := &spyHost{}
	a := New(host, testRegistry(t)).(*app)
	a.table.Selected = 0

	a.open()

	if len(host.opened) != 1 {
		t.Fatalf("expected one opened applet, got %d", len(host.opened))
	}
}

func TestOpenCommandAppletLaunches(t *testing.T) {
	host := &spyHost{}
	a := New(host, testRegistry(t)).(*app)
	var launched []string
	a.launch = func(cmdline string) error {
		launched = append(launched, cmdline)
		return nil
	}
	a.table.Selected = 1

	a.open()

	if len(launched) != 1 || launched[0] != "xvidtune" {
		t.Fatalf("launched = %v", launched)
	}
	if len(host.opened) != 0 {
		t.Error("command applets must not open in the panel")
	}
}

func TestJumpSelectsByFirstLetter(t *testing.T) {
	host := &spyHost{}
	a := New(host, testRegistry(t)).(*app)
	a.table.Selected = 0

	a.jump('v')

	if got := a.entries[a.table.Selected].Manifest.DisplayName; got != "Video Tuner" {
		t.Errorf("selected %q", got)
	}
}

type nopHost struct{}

func (nopHost) ShowInfo(string, string)            {}
func (nopHost) ShowWarning(string, string)         {}
func (nopHost) ShowError(string, string)           {}
func (nopHost) Confirm(string, string, func(bool)) {}
func (nopHost) OpenApp(panel.App)                  {}
func (nopHost) CloseApp()                          {}
func (nopHost) Beep()                              {}
func (nopHost) Quit()                              {}
