// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: internal/xset/xset.go
// Summary: Query and apply X server preferences through the xset utility.

package xset

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Runner abstracts subprocess execution so tests can stub xset output.
type Runner interface {
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs the command discarding output.
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, wrapExecErr(name, err, stderr.String())
	}
	return out, nil
}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return wrapExecErr(name, err, stderr.String())
	}
	return nil
}

func wrapExecErr(name string, err error, stderr string) error {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return fmt.Errorf("%s: %w", name, err)
}

// DPMS holds the monitor power saving timings in seconds. Zero means never.
type DPMS struct {
	Enabled bool
	Standby int
	Suspend int
	Off     int
}

// Repeat holds the keyboard auto-repeat configuration.
type Repeat struct {
	Enabled bool
	Delay   int // milliseconds
	Rate    int // characters per second
}

// Mouse holds the pointer acceleration settings. Accel keeps the raw
// numerator/denominator fraction so reverting preserves exact values.
type Mouse struct {
	Accel     string // e.g. "4/1"
	AccelNum  int
	Threshold int
}

// Bell holds the keyboard bell settings.
type Bell struct {
	Enabled  bool
	Volume   int // percent
	Pitch    int // Hz
	Duration int // milliseconds
}

// KeyClick holds the keyboard click settings.
type KeyClick struct {
	Enabled bool
	Volume  int // percent
}

// Settings is a parsed snapshot of `xset q`.
type Settings struct {
	DPMS     DPMS
	Repeat   Repeat
	Mouse    Mouse
	Bell     Bell
	KeyClick KeyClick
}

// Client issues xset commands through a Runner.
type Client struct {
	run Runner
}

// New creates a client with a custom runner (used by tests).
func New(r Runner) *Client { return &Client{run: r} }

// NewDefault creates a client executing real commands.
func NewDefault() *Client { return &Client{run: execRunner{}} }

var (
	reDPMSTimes = regexp.MustCompile(`Standby:\s+(\d+)\s+Suspend:\s+(\d+)\s+Off:\s+(\d+)`)
	reAutoRep   = regexp.MustCompile(`auto repeat:\s*(\w+)`)
	reRepTimes  = regexp.MustCompile(`auto repeat delay:\s*(\d+)\s+repeat rate:\s*(\d+)`)
	reRepAlt    = regexp.MustCompile(`repeat rate:\s*(\d+)\s+delay:\s*(\d+)`)
	reMouse     = regexp.MustCompile(`acceleration:\s*(\d+)/(\d+)\s+threshold:\s*(\d+)`)
	reBell      = regexp.MustCompile(`bell percent:\s*(\d+)\s+bell pitch:\s*(\d+)\s+bell duration:\s*(\d+)`)
	reKeyClick  = regexp.MustCompile(`key click percent:\s*(\d+)`)
)

// Query runs `xset q` once and parses everything the suite cares about.
// Fields absent from the output keep their zero values.
func (c *Client) Query(ctx context.Context) (Settings, error) {
	out, err := c.run.Output(ctx, "xset", "q")
	if err != nil {
		return Settings{}, fmt.Errorf("query xset: %w", err)
	}
	return Parse(string(out)), nil
}

// Parse extracts settings from `xset q` output.
func Parse(out string) Settings {
	var s Settings

	s.DPMS.Enabled = strings.Contains(out, "DPMS is Enabled")
	if m := reDPMSTimes.FindStringSubmatch(out); m != nil {
		s.DPMS.Standby = atoi(m[1])
		s.DPMS.Suspend = atoi(m[2])
		s.DPMS.Off = atoi(m[3])
	}

	if m := reAutoRep.FindStringSubmatch(out); m != nil {
		s.Repeat.Enabled = strings.EqualFold(m[1], "on")
	}
	// Sensible fallbacks when the server does not report timings. Servers
	// print either "auto repeat delay: D repeat rate: R" or the shorter
	// "repeat rate: R delay: D" layout.
	s.Repeat.Delay, s.Repeat.Rate = 500, 30
	if m := reRepTimes.FindStringSubmatch(out); m != nil {
		s.Repeat.Delay = atoi(m[1])
		s.Repeat.Rate = atoi(m[2])
	} else if m := reRepAlt.FindStringSubmatch(out); m != nil {
		s.Repeat.Rate = atoi(m[1])
		s.Repeat.Delay = atoi(m[2])
	}

	s.Mouse.Accel = "4/1"
	s.Mouse.AccelNum = 4
	s.Mouse.Threshold = 4
	if m := reMouse.FindStringSubmatch(out); m != nil {
		s.Mouse.Accel = m[1] + "/" + m[2]
		s.Mouse.AccelNum = atoi(m[1])
		s.Mouse.Threshold = atoi(m[3])
	}

	if m := reBell.FindStringSubmatch(out); m != nil {
		s.Bell.Volume = atoi(m[1])
		s.Bell.Pitch = atoi(m[2])
		s.Bell.Duration = atoi(m[3])
		s.Bell.Enabled = s.Bell.Volume > 0
	}
	if m := reKeyClick.FindStringSubmatch(out); m != nil {
		s.KeyClick.Volume = atoi(m[1])
		s.KeyClick.Enabled = s.KeyClick.Volume > 0
	}
	return s
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// SetDPMS enables DPMS and applies the standby/suspend/off seconds.
func (c *Client) SetDPMS(ctx context.Context, standby, suspend, off int) error {
	if err := c.run.Run(ctx, "xset", "+dpms"); err != nil {
		return err
	}
	return c.run.Run(ctx, "xset", "dpms",
		strconv.Itoa(standby), strconv.Itoa(suspend), strconv.Itoa(off))
}

// DisableDPMS turns monitor power saving off.
func (c *Client) DisableDPMS(ctx context.Context) error {
	return c.run.Run(ctx, "xset", "-dpms")
}

// SetRepeat enables auto-repeat with the given delay (ms) and rate (cps).
func (c *Client) SetRepeat(ctx context.Context, delay, rate int) error {
	return c.run.Run(ctx, "xset", "r", "rate", strconv.Itoa(delay), strconv.Itoa(rate))
}

// DisableRepeat turns keyboard auto-repeat off.
func (c *Client) DisableRepeat(ctx context.Context) error {
	return c.run.Run(ctx, "xset", "-r")
}

// SetMouse applies pointer acceleration and threshold as integers.
func (c *Client) SetMouse(ctx context.Context, accel, threshold int) error {
	return c.run.Run(ctx, "xset", "m", strconv.Itoa(accel), strconv.Itoa(threshold))
}

// SetMouseRaw applies a raw acceleration fraction (e.g. "4/1"), used when
// reverting to a previously captured state.
func (c *Client) SetMouseRaw(ctx context.Context, accel, threshold string) error {
	return c.run.Run(ctx, "xset", "m", accel, threshold)
}

// SetBell applies bell volume (percent), pitch (Hz) and duration (ms).
func (c *Client) SetBell(ctx context.Context, volume, pitch, duration int) error {
	return c.run.Run(ctx, "xset", "b",
		strconv.Itoa(volume), strconv.Itoa(pitch), strconv.Itoa(duration))
}

// DisableBell mutes the keyboard bell.
func (c *Client) DisableBell(ctx context.Context) error {
	return c.run.Run(ctx, "xset", "-b")
}

// SetKeyClick applies key click volume (percent).
func (c *Client) SetKeyClick(ctx context.Context, volume int) error {
	return c.run.Run(ctx, "xset", "c", strconv.Itoa(volume))
}

// DisableKeyClick turns key click off.
func (c *Client) DisableKeyClick(ctx context.Context) error {
	return c.run.Run(ctx, "xset", "-c")
}

// Available reports whether xset can work in this session: an X display must
// be reachable and the session must not be native Wayland.
func Available() bool {
	if os.Getenv("DISPLAY") == "" {
		return false
	}
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		log.Debug().Msg("native wayland session, xset unavailable")
		return false
	}
	return true
}
