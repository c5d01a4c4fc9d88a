// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package icewm

import (
	"path/filepath"
	"testing"
)

func TestConfigDirHonorsPrivcfg(t *testing.T) {
	t.Setenv("ICEWM_PRIVCFG", "/tmp/icewm-alt")
	if got := ConfigDir(); got != "/tmp/icewm-alt" {
		t.Errorf("got %q", got)
	}
	if got := KeysFile(); got != filepath.Join("/tmp/icewm-alt", "keys") {
		t.Errorf("got %q", got)
	}
}

func TestConfigDirDefaultsToHome(t *testing.T) {
	t.Setenv("ICEWM_PRIVCFG", "")
	t.Setenv("HOME", "/home/probe")
	if got := ConfigDir(); got != "/home/probe/.icewm" {
		t.Errorf("got %q", got)
	}
	if got := CursorsDir(); got != "/home/probe/.icewm/cursors" {
		t.Errorf("got %q", got)
	}
}

func TestInSession(t *testing.T) {
	t.Setenv("XDG_CURRENT_DESKTOP", "ICEWM")
	if !InSession() {
		t.Error("expected ICEWM to match")
	}
	t.Setenv("XDG_CURRENT_DESKTOP", "GNOME")
	if InSession() {
		t.Error("GNOME must not match")
	}
	t.Setenv("XDG_CURRENT_DESKTOP", "")
	if InSession() {
		t.Error("empty desktop must not match")
	}
}
