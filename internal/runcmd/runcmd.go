// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: internal/runcmd/runcmd.go
// Summary: Launch user commands, capture quick output, keep run history.

package runcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"github.com/go-enry/go-enry/v2"
	"github.com/google/shlex"
	"github.com/rs/zerolog/log"
)

// MaxHistory caps the number of remembered commands.
const MaxHistory = 20

// Launch starts a command detached from the panel. The command line is split
// with shell quoting rules, so arguments with spaces work when quoted.
func Launch(cmdline string) error {
	parts, err := shlex.Split(strings.TrimSpace(cmdline))
	if err != nil {
		return fmt.Errorf("parse command: %w", err)
	}
	if len(parts) == 0 {
		return fmt.Errorf("no command given")
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", parts[0], err)
	}
	log.Info().Str("command", cmdline).Int("pid", cmd.Process.Pid).Msg("Run: launched")

	// Reap in the background so the child never turns into a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// captureLimit bounds how much output Capture keeps.
const captureLimit = 64 * 1024

// Capture runs a command under a pseudo terminal and returns its output with
// terminal control sequences stripped. Curses-style programs expect a pty and
// refuse plain pipes.
func Capture(ctx context.Context, cmdline string) (string, error) {
	parts, err := shlex.Split(strings.TrimSpace(cmdline))
	if err != nil {
		return "", fmt.Errorf("parse command: %w", err)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no command given")
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	f, err := pty.Start(cmd)
	if err != nil {
		return "", fmt.Errorf("start %q: %w", parts[0], err)
	}
	defer f.Close()

	out, _ := io.ReadAll(io.LimitReader(f, captureLimit))
	waitErr := cmd.Wait()
	text := StripControl(string(out))
	if waitErr != nil {
		return text, fmt.Errorf("%q exited: %w", parts[0], waitErr)
	}
	return text, nil
}

// StripControl removes ANSI escape sequences and non-printing control bytes,
// keeping newlines and tabs.
func StripControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			// CSI sequences end on a byte in @-~; bare escapes end on any
			// final byte in the same range.
			if r >= '@' && r <= '~' {
				inEsc = false
			}
		case r == 0x1b:
			inEsc = true
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r == '\r':
			// drop
		case r < 0x20 || r == 0x7f:
			// drop
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Describe inspects the executable behind a command line and reports what kind
// of program it is. Scripts are classified by language, binaries by name only.
func Describe(cmdline string) string {
	parts, err := shlex.Split(strings.TrimSpace(cmdline))
	if err != nil || len(parts) == 0 {
		return ""
	}
	path, err := exec.LookPath(parts[0])
	if err != nil {
		return fmt.Sprintf("%s: not found in PATH", parts[0])
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path
	}
	if enry.IsBinary(data) {
		return fmt.Sprintf("%s (binary)", path)
	}
	if lang := enry.GetLanguage(filepath.Base(path), data); lang != "" {
		return fmt.Sprintf("%s (%s script)", path, lang)
	}
	return path
}

// historyHeader marks the MRU file. The format is shared with older tools, so
// the file stores entries oldest first under a comment line.
const historyHeader = "# IceWMControlPanel gtk.Run file: DO NOT EDIT!"

// HistoryFile returns the MRU file of the run dialog.
func HistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".icewmcp_gtkruncmd"
	}
	return filepath.Join(home, ".icewmcp_gtkruncmd")
}

// LoadHistory reads the MRU list, most recent first. Comment lines are
// skipped and the on-disk order is reversed. A missing file yields an empty
// list.
func LoadHistory(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append([]string{line}, entries...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if len(entries) > MaxHistory {
		entries = entries[:MaxHistory]
	}
	return entries, nil
}

// PushHistory moves cmdline to the front of the list, dropping duplicates and
// trimming to MaxHistory.
func PushHistory(entries []string, cmdline string) []string {
	cmdline = strings.TrimSpace(cmdline)
	if cmdline == "" {
		return entries
	}
	out := []string{cmdline}
	for _, e := range entries {
		if e != cmdline {
			out = append(out, e)
		}
	}
	if len(out) > MaxHistory {
		out = out[:MaxHistory]
	}
	return out
}

// SaveHistory writes the MRU list back in file order: header comment first,
// then one command per line, oldest first.
func SaveHistory(path string, entries []string) error {
	var b strings.Builder
	b.WriteString(historyHeader)
	b.WriteByte('\n')
	for i := len(entries) - 1; i >= 0; i-- {
		b.WriteString(entries[i])
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
