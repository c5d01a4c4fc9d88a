// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: internal/icewm/icewm.go
// Summary: IceWM configuration paths and window manager control.

package icewm

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ConfigDir returns the per-user IceWM configuration directory. IceWM honors
// $ICEWM_PRIVCFG when set, otherwise ~/.icewm.
func ConfigDir() string {
	if priv := os.Getenv("ICEWM_PRIVCFG"); priv != "" {
		return priv
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".icewm"
	}
	return filepath.Join(home, ".icewm")
}

// KeysFile returns the path of the custom keyboard shortcuts file.
func KeysFile() string {
	return filepath.Join(ConfigDir(), "keys")
}

// CursorsDir returns the directory IceWM reads themed cursors from.
func CursorsDir() string {
	return filepath.Join(ConfigDir(), "cursors")
}

// ThemesDir returns the per-user themes directory.
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

// InSession reports whether IceWM looks like the running window manager.
func InSession() bool {
	desktop := strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP"))
	return strings.Contains(desktop, "icewm")
}

// Restart sends SIGHUP to all icewm processes so the new configuration is
// picked up without ending the session.
func Restart(ctx context.Context) error {
	log.Info().Msg("IceWM: restarting window manager")
	out, err := exec.CommandContext(ctx, "killall", "-HUP", "icewm").CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("restart icewm: %s", msg)
		}
		return fmt.Errorf("restart icewm: %w", err)
	}
	return nil
}
