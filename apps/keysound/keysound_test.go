// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package keysound

import (
	"context"
	"strings"
	"testing"

	"github.com/DeltaResero/IceWMCP/internal/xset"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/panel/widgets"
)

type fakeRunner struct {
	calls [][]string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return nil, nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	return nil
}

func testApp(run *fakeRunner) *app {
	a := &app{
		BaseApp: panel.NewBaseApp("Keyboard Sound"),
		host:    nopHost{},
		xc:      xset.New(run),
	}
	a.bellOn = &widgets.Checkbox{}
	a.volume = &widgets.Slider{Min: 0, Max: 100, Value: 50}
	a.pitch = &widgets.Slider{Min: 50, Max: 2000, Value: 400}
	a.duration = &widgets.Slider{Min: 10, Max: 800, Value: 100}
	a.clickOn = &widgets.Checkbox{}
	a.clickVol = &widgets.Slider{Min: 0, Max: 100, Value: 25}
	a.status = &widgets.Label{}
	return a
}

func TestSliderRanges(t *testing.T) {
	t.Setenv("DISPLAY", "")
	a := New(nopHost{}).(*app)
	if a.pitch.Min != 50 || a.pitch.Max != 2000 {
		t.Errorf("pitch range = %d..%d", a.pitch.Min, a.pitch.Max)
	}
	if a.duration.Min != 10 || a.duration.Max != 800 {
		t.Errorf("duration range = %d..%d", a.duration.Min, a.duration.Max)
	}
	if a.volume.Min != 0 || a.volume.Max != 100 {
		t.Errorf("volume range = %d..%d", a.volume.Min, a.volume.Max)
	}
}

func TestApplySetsBellAndClick(t *testing.T) {
	run := &fakeRunner{}
	a := testApp(run)
	a.bellOn.Checked = true
	a.clickOn.Checked = true

	a.apply()
	if len(run.calls) != 2 {
		t.Fatalf("expected two xset calls, got %v", run.calls)
	}
	if got := strings.Join(run.calls[0], " "); got != "xset b 50 400 100" {
		t.Errorf("bell call = %q", got)
	}
	if got := strings.Join(run.calls[1], " "); got != "xset c 25" {
		t.Errorf("click call = %q", got)
	}
}

func TestApplyDisabledMutesBoth(t *testing.T) {
	run := &fakeRunner{}
	a := testApp(run)

	a.apply()
	if len(run.calls) != 2 {
		t.Fatalf("expected two xset calls, got %v", run.calls)
	}
	if got := strings.Join(run.calls[0], " "); got != "xset -b" {
		t.Errorf("bell call = %q", got)
	}
	if got := strings.Join(run.calls[1], " "); got != "xset -c" {
		t.Errorf("click call = %q", got)
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
