// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package xset

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const sampleOutput = `Keyboard Control:
  auto repeat:  on    key click percent:  25    LED mask:  00000000
  XKB indicators:
    00: Caps Lock:   off    01: Num Lock:    off    02: Scroll Lock: off
  auto repeat delay:  660    repeat rate:  25
  auto repeating keys:  00ffffffdffffbbf
  bell percent:  50    bell pitch:  400    bell duration:  100
Pointer Control:
  acceleration:  2/1    threshold:  4
Screen Saver:
  prefer blanking:  yes    allow exposures:  yes
  timeout:  600    cycle:  600
Colors:
  default colormap:  0x22    BlackPixel:  0x0    WhitePixel:  0xffffff
Font Path:
  built-ins
DPMS (Energy Star):
  Standby: 600    Suspend: 1200    Off: 1800
  DPMS is Enabled
  Monitor is On`

func TestParseFullOutput(t *testing.T) {
	s := Parse(sampleOutput)

	if !s.DPMS.Enabled {
		t.Error("expected DPMS enabled")
	}
	if s.DPMS.Standby != 600 || s.DPMS.Suspend != 1200 || s.DPMS.Off != 1800 {
		t.Errorf("unexpected DPMS timings: %+v", s.DPMS)
	}
	if !s.Repeat.Enabled || s.Repeat.Delay != 660 || s.Repeat.Rate != 25 {
		t.Errorf("unexpected repeat settings: %+v", s.Repeat)
	}
	if s.Mouse.Accel != "2/1" || s.Mouse.AccelNum != 2 || s.Mouse.Threshold != 4 {
		t.Errorf("unexpected mouse settings: %+v", s.Mouse)
	}
	if !s.Bell.Enabled || s.Bell.Volume != 50 || s.Bell.Pitch != 400 || s.Bell.Duration != 100 {
		t.Errorf("unexpected bell settings: %+v", s.Bell)
	}
	if !s.KeyClick.Enabled || s.KeyClick.Volume != 25 {
		t.Errorf("unexpected key click settings: %+v", s.KeyClick)
	}
}

func TestParseDisabledAndMissing(t *testing.T) {
	out := strings.ReplaceAll(sampleOutput, "DPMS is Enabled", "DPMS is Disabled")
	out = strings.ReplaceAll(out, "auto repeat:  on", "auto repeat:  off")
	out = strings.ReplaceAll(out, "bell percent:  50", "bell percent:  0")

	s := Parse(out)
	if s.DPMS.Enabled {
		t.Error("expected DPMS disabled")
	}
	if s.Repeat.Enabled {
		t.Error("expected auto repeat disabled")
	}
	if s.Bell.Enabled {
		t.Error("zero bell volume should read as disabled")
	}
}

func TestParseRateFirstRepeatLayout(t *testing.T) {
	out := strings.ReplaceAll(sampleOutput,
		"auto repeat delay:  660    repeat rate:  25",
		"repeat rate:  25    delay:  660")
	s := Parse(out)
	if s.Repeat.Delay != 660 || s.Repeat.Rate != 25 {
		t.Errorf("unexpected repeat settings: %+v", s.Repeat)
	}
}

func TestParseDefaultsWhenAbsent(t *testing.T) {
	s := Parse("no recognizable output")
	if s.Repeat.Delay != 500 || s.Repeat.Rate != 30 {
		t.Errorf("expected fallback repeat timings, got %+v", s.Repeat)
	}
	if s.Mouse.Accel != "4/1" || s.Mouse.Threshold != 4 {
		t.Errorf("expected fallback mouse settings, got %+v", s.Mouse)
	}
}

// fakeRunner records invocations and serves canned output.
type fakeRunner struct {
	output []byte
	err    error
	calls  [][]string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.err
}

func TestSetDPMSIssuesEnableThenTimings(t *testing.T) {
	fr := &fakeRunner{}
	c := New(fr)
	if err := c.SetDPMS(context.Background(), 300, 600, 900); err != nil {
		t.Fatal(err)
	}
	if len(fr.calls) != 2 {
		t.Fatalf("expected 2 xset calls, got %d", len(fr.calls))
	}
	want := []string{"xset", "dpms", "300", "600", "900"}
	got := fr.calls[1]
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("unexpected second call: %v", got)
	}
}

func TestSetRepeatOrdersDelayBeforeRate(t *testing.T) {
	fr := &fakeRunner{}
	c := New(fr)
	if err := c.SetRepeat(context.Background(), 500, 30); err != nil {
		t.Fatal(err)
	}
	want := "xset r rate 500 30"
	if got := strings.Join(fr.calls[0], " "); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestQueryWrapsRunnerError(t *testing.T) {
	fr := &fakeRunner{err: errors.New("no display")}
	c := New(fr)
	if _, err := c.Query(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
