// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package keyrepeat

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
		BaseApp: panel.NewBaseApp("Keyboard Repeat"),
		host:    nopHost{},
		xc:      xset.New(run),
	}
	a.enable = &widgets.Checkbox{}
	a.delay = &widgets.Slider{Min: 200, Max: 1000, Value: 660}
	a.rate = &widgets.Slider{Min: 5, Max: 100, Value: 25}
	a.test = &widgets.Entry{}
	a.status = &widgets.Label{}
	return a
}

func TestSliderRanges(t *testing.T) {
	t.Setenv("DISPLAY", "")
	a := New(nopHost{}).(*app)
	if a.delay.Min != 200 || a.delay.Max != 1000 {
		t.Errorf("delay range = %d..%d", a.delay.Min, a.delay.Max)
	}
	if a.rate.Min != 5 || a.rate.Max != 100 {
		t.Errorf("rate range = %d..%d", a.rate.Min, a.rate.Max)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	run := &fakeRunner{}
	a := testApp(run)
	a.enable.Checked = false
	a.delay.Value = 900
	a.rate.Value = 80

	a.reset()
	if !a.enable.Checked {
		t.Error("expected repeat enabled after reset")
	}
	if a.delay.Value != 500 || a.rate.Value != 30 {
		t.Errorf("got delay %d rate %d", a.delay.Value, a.rate.Value)
	}
	if len(run.calls) != 1 {
		t.Fatalf("expected one xset call, got %v", run.calls)
	}
	if got := strings.Join(run.calls[0], " "); got != "xset r rate 500 30" {
		t.Errorf("got %q", got)
	}
}

func TestApplyDisabledTurnsRepeatOff(t *testing.T) {
	run := &fakeRunner{}
	a := testApp(run)
	a.enable.Checked = false

	a.apply()
	if len(run.calls) != 1 {
		t.Fatalf("expected one xset call, got %v", run.calls)
	}
	if got := strings.Join(run.calls[0], " "); got != "xset -r" {
		t.Errorf("got %q", got)
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
