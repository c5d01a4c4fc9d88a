// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package run

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DeltaResero/IceWMCP/internal/runcmd"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
)

func testApp(t *testing.T) (*app, *[]string) {
	t.Helper()
	var launched []string
	a := &app{
		BaseApp:  panel.NewBaseApp("Run Command"),
		host:     nopHost{},
		histPath: filepath.Join(t.TempDir(), "history"),
		launch: func(cmdline string) error {
			launched = append(launched, cmdline)
			return nil
		},
	}
	a.entry = &widgets.Entry{}
	a.preview = &widgets.Label{}
	a.table = &widgets.Table{Columns: []widgets.Column{{Title: "Recent commands", Width: 53}}}
	a.status = &widgets.Label{}
	return a, &launched
}

func TestRunLaunchesAndRecordsHistory(t *testing.T) {
	a, launched := testApp(t)
	a.entry.SetValue("xterm -e top")

	a.run()

	if len(*launched) != 1 || (*launched)[0] != "xterm -e top" {
		t.Fatalf("launched = %v", *launched)
	}
	if len(a.history) != 1 || a.history[0] != "xterm -e top" {
		t.Errorf("history = %v", a.history)
	}
	if a.entry.Value != "" {
		t.Error("entry must be cleared after a launch")
	}
	data, err := os.ReadFile(a.histPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "#") {
		t.Errorf("history file must start with the header comment, got %q", data)
	}
	saved, err := runcmd.LoadHistory(a.histPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 1 || saved[0] != "xterm -e top" {
		t.Errorf("saved history = %v", saved)
	}
}

func TestRunDeduplicatesHistory(t *testing.T) {
	a, _ := testApp(t)
	a.setHistory([]string{"xclock", "xterm"})
	a.entry.SetValue("xterm")

	a.run()

	if len(a.history) != 2 || a.history[0] != "xterm" || a.history[1] != "xclock" {
		t.Errorf("history = %v", a.history)
	}
}

func TestRunIgnoresEmptyCommand(t *testing.T) {
	a, launched := testApp(t)
	a.run()
	if len(*launched) != 0 {
		t.Errorf("empty command must not launch, got %v", *launched)
	}
}

func TestPickFillsEntryFromHistory(t *testing.T) {
	a, _ := testApp(t)
	a.setHistory([]string{"xclock", "xterm"})
	a.table.Selected = 1

	a.pick()

	if a.entry.Value != "xterm" {
		t.Errorf("entry = %q", a.entry.Value)
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
