// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package mousespeed

import (
	"context"
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
		BaseApp: panel.NewBaseApp("Mouse Speed"),
		xc:      xset.New(run),
		timeout: 3,
	}
	a.accel = &widgets.Slider{Min: 1, Max: 20, Value: 6}
	a.threshold = &widgets.Slider{Min: 1, Max: 10, Value: 10}
	a.applyBtn = &widgets.Button{Text: "Apply"}
	a.status = &widgets.Label{}
	a.prev = xset.Mouse{Accel: "4/1", AccelNum: 4, Threshold: 4}
	return a
}

func TestApplyStartsCountdown(t *testing.T) {
	run := &fakeRunner{}
	a := testApp(run)

	a.applyOrKeep()
	if !a.pending {
		t.Fatal("expected pending revert")
	}
	if a.countdown != 3 {
		t.Errorf("countdown = %d", a.countdown)
	}
	if a.applyBtn.Text != "Keep" {
		t.Errorf("button text = %q", a.applyBtn.Text)
	}
	if len(run.calls) != 1 || run.calls[0][1] != "m" {
		t.Errorf("expected one xset m call, got %v", run.calls)
	}
}

func TestCountdownExpiryReverts(t *testing.T) {
	run := &fakeRunner{}
	a := testApp(run)

	a.applyOrKeep()
	run.calls = nil
	for i := 0; i < 3; i++ {
		a.tick()
	}
	if a.pending {
		t.Fatal("expected revert after countdown")
	}
	if len(run.calls) != 1 {
		t.Fatalf("expected one revert call, got %v", run.calls)
	}
	got := run.calls[0]
	if got[2] != "4/1" || got[3] != "4" {
		t.Errorf("revert must use the captured raw values, got %v", got)
	}
	if a.accel.Value != 4 || a.threshold.Value != 4 {
		t.Errorf("sliders must snap back, got %d %d", a.accel.Value, a.threshold.Value)
	}
}

func TestKeepStopsCountdown(t *testing.T) {
	run := &fakeRunner{}
	a := testApp(run)

	a.applyOrKeep()
	a.applyOrKeep() // second press keeps
	if a.pending {
		t.Fatal("expected countdown cancelled")
	}
	if a.prev.Accel != "6/1" || a.prev.Threshold != 10 {
		t.Errorf("kept settings must become the new baseline, got %+v", a.prev)
	}
	if a.tick() {
		t.Error("tick must be a no-op after keep")
	}
}
