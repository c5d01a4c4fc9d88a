// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: internal/timedate/timedate.go
// Summary: Query and change the system clock, timezone, and NTP state.

package timedate

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/internal/privexec"
)

// Status is a snapshot of the timedated state.
type Status struct {
	Timezone  string
	NTP       bool
	NTPSynced bool
}

// Changeset collects pending clock changes so they can be applied in one
// privileged round trip. Nil or empty fields are left untouched.
type Changeset struct {
	NTP      *bool
	Time     *time.Time
	Timezone string
}

// Empty reports whether there is nothing to apply.
func (c Changeset) Empty() bool {
	return c.NTP == nil && c.Time == nil && c.Timezone == ""
}

// Client reads and writes the system clock configuration.
type Client interface {
	Status(ctx context.Context) (Status, error)
	Apply(ctx context.Context, c Changeset) error
}

// New returns the D-Bus client when the system bus and timedated are
// reachable, otherwise the timedatectl fallback.
func New() Client {
	c, err := NewDBus()
	if err != nil {
		log.Warn().Err(err).Msg("Timedate: D-Bus unavailable, using timedatectl")
		return NewFallback(privexec.PkexecRunner{})
	}
	return c
}

const (
	dbusDest  = "org.freedesktop.timedate1"
	dbusPath  = "/org/freedesktop/timedate1"
	dbusIface = "org.freedesktop.timedate1"
)

// DBusClient talks to systemd-timedated on the system bus. Polkit handles the
// authentication prompt, so no pkexec wrapper is needed.
type DBusClient struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewDBus connects to the system bus and pings timedated.
func NewDBus() (*DBusClient, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	obj := conn.Object(dbusDest, dbus.ObjectPath(dbusPath))
	if _, err := obj.GetProperty(dbusIface + ".Timezone"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("probe timedated: %w", err)
	}
	return &DBusClient{conn: conn, obj: obj}, nil
}

// Close releases the bus connection.
func (c *DBusClient) Close() error { return c.conn.Close() }

// Status reads the Timezone, NTP, and NTPSynchronized properties.
func (c *DBusClient) Status(ctx context.Context) (Status, error) {
	var st Status
	props := []struct {
		name string
		dst  any
	}{
		{"Timezone", &st.Timezone},
		{"NTP", &st.NTP},
		{"NTPSynchronized", &st.NTPSynced},
	}
	for _, p := range props {
		v, err := c.obj.GetProperty(dbusIface + "." + p.name)
		if err != nil {
			return Status{}, fmt.Errorf("get %s: %w", p.name, err)
		}
		if err := v.Store(p.dst); err != nil {
			return Status{}, fmt.Errorf("decode %s: %w", p.name, err)
		}
	}
	return st, nil
}

// Apply performs the changes through timedated. NTP is switched first so a
// manual time set is not immediately overwritten by a sync. The interactive
// flag lets Polkit raise its own authentication dialog.
func (c *DBusClient) Apply(ctx context.Context, ch Changeset) error {
	if ch.NTP != nil {
		if call := c.obj.CallWithContext(ctx, dbusIface+".SetNTP", 0, *ch.NTP, true); call.Err != nil {
			return mapDBusErr("set NTP", call.Err)
		}
	}
	if ch.Timezone != "" {
		if call := c.obj.CallWithContext(ctx, dbusIface+".SetTimezone", 0, ch.Timezone, true); call.Err != nil {
			return mapDBusErr("set timezone", call.Err)
		}
	}
	if ch.Time != nil {
		usec := ch.Time.UnixMicro()
		if call := c.obj.CallWithContext(ctx, dbusIface+".SetTime", 0, usec, false, true); call.Err != nil {
			return mapDBusErr("set time", call.Err)
		}
	}
	return nil
}

// Polkit surfaces a dismissed dialog as an interactive-authorization error.
func mapDBusErr(op string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "NotAuthorized") || strings.Contains(msg, "Dismissed") {
		return privexec.ErrCancelled
	}
	return fmt.Errorf("%s: %w", op, err)
}

var (
	reTimezone = regexp.MustCompile(`Time zone:\s+(\S+)`)
	reNTP      = regexp.MustCompile(`NTP service:\s+(\S+)`)
	reSynced   = regexp.MustCompile(`System clock synchronized:\s+(\S+)`)
)

// CommandRunner runs an unprivileged command and returns its output. It is
// satisfied by the xset runner and by test fakes.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execOutput struct{}

func (execOutput) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// FallbackClient shells out to timedatectl. Reads run unprivileged, writes go
// through pkexec in a single sh -c invocation.
type FallbackClient struct {
	priv privexec.Runner
	run  CommandRunner
}

// NewFallback builds a timedatectl-based client using the given privilege
// runner.
func NewFallback(priv privexec.Runner) *FallbackClient {
	return &FallbackClient{priv: priv, run: execOutput{}}
}

// Status parses `timedatectl status` output.
func (c *FallbackClient) Status(ctx context.Context) (Status, error) {
	out, err := c.run.Output(ctx, "timedatectl", "status")
	if err != nil {
		return Status{}, fmt.Errorf("timedatectl status: %w", err)
	}
	return ParseStatus(string(out)), nil
}

// ParseStatus extracts the fields this suite cares about from timedatectl
// status output.
func ParseStatus(out string) Status {
	var st Status
	if m := reTimezone.FindStringSubmatch(out); m != nil {
		st.Timezone = m[1]
	}
	if m := reNTP.FindStringSubmatch(out); m != nil {
		st.NTP = m[1] == "active"
	}
	if m := reSynced.FindStringSubmatch(out); m != nil {
		st.NTPSynced = m[1] == "yes"
	}
	return st
}

// Apply builds one shell script from the changeset and runs it under pkexec so
// the user authenticates only once.
func (c *FallbackClient) Apply(ctx context.Context, ch Changeset) error {
	script := BuildScript(ch)
	if script == "" {
		return nil
	}
	return c.priv.Run(ctx, script)
}

// BuildScript renders the timedatectl commands for a changeset, NTP first.
func BuildScript(ch Changeset) string {
	var cmds []string
	if ch.NTP != nil {
		cmds = append(cmds, fmt.Sprintf("timedatectl set-ntp %t", *ch.NTP))
	}
	if ch.Timezone != "" {
		cmds = append(cmds, "timedatectl set-timezone "+privexec.Quote(ch.Timezone))
	}
	if ch.Time != nil {
		stamp := ch.Time.Format("2006-01-02 15:04:05")
		cmds = append(cmds, "timedatectl set-time "+privexec.Quote(stamp))
	}
	return privexec.Script(cmds...)
}
