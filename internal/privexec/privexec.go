// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: internal/privexec/privexec.go
// Summary: Run privileged shell snippets through pkexec.

package privexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrCancelled is returned when the user dismissed the authentication dialog.
var ErrCancelled = errors.New("authentication cancelled")

// ErrNoPkexec is returned when pkexec is not installed.
var ErrNoPkexec = errors.New("pkexec not found; is Polkit installed?")

// Runner executes a shell snippet with elevated privileges.
type Runner interface {
	Run(ctx context.Context, script string) error
}

// PkexecRunner runs scripts as `pkexec sh -c script`. Several commands can be
// chained with && so a single authentication covers them all.
type PkexecRunner struct{}

// Run executes the script. pkexec exits with 126 when the authentication
// dialog is dismissed and 127 when authorization fails; both map to
// ErrCancelled so callers can downgrade them to a warning.
func (PkexecRunner) Run(ctx context.Context, script string) error {
	cmd := exec.CommandContext(ctx, "pkexec", "sh", "-c", script)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug().Str("script", script).Msg("running privileged command")
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code == 126 || code == 127 {
			return ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("privileged command failed: %s", msg)
		}
		return fmt.Errorf("privileged command failed: %w", err)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return ErrNoPkexec
	}
	return fmt.Errorf("run pkexec: %w", err)
}

// Quote wraps s in single quotes for safe embedding in an sh -c script.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Script joins commands with && so they share one authentication and stop at
// the first failure.
func Script(commands ...string) string {
	return strings.Join(commands, " && ")
}
