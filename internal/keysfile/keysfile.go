// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: internal/keysfile/keysfile.go
// Summary: Load, edit, and atomically save the IceWM "keys" file.

package keysfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/google/shlex"
)

// Binding is one `key "Combo" command args...` line.
type Binding struct {
	Combo   string
	Command string
}

// Set is the editable collection of bindings, keyed by combo.
type Set struct {
	bindings map[string]string
}

// NewSet returns an empty binding set.
func NewSet() *Set {
	return &Set{bindings: make(map[string]string)}
}

// Load reads the keys file. A missing file yields an empty set. Lines that do
// not start with the `key` keyword (comments, other directives) are skipped,
// matching how the suite has always treated the file. Later duplicates win.
func Load(path string) (*Set, error) {
	s := NewSet()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open keys file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "key") {
			continue
		}
		parts, err := shlex.Split(line)
		if err != nil || len(parts) < 3 || parts[0] != "key" {
			continue
		}
		s.bindings[parts[1]] = strings.Join(parts[2:], " ")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read keys file: %w", err)
	}
	return s, nil
}

// Len returns the number of bindings.
func (s *Set) Len() int { return len(s.bindings) }

// Get returns the command bound to combo, if any.
func (s *Set) Get(combo string) (string, bool) {
	cmd, ok := s.bindings[combo]
	return cmd, ok
}

// Add inserts a new binding; it fails on empty fields or duplicate combos.
func (s *Set) Add(combo, command string) error {
	combo = strings.TrimSpace(combo)
	command = strings.TrimSpace(command)
	if combo == "" || command == "" {
		return fmt.Errorf("both a key and a command must be specified")
	}
	if _, exists := s.bindings[combo]; exists {
		return fmt.Errorf("the key %q already exists", combo)
	}
	s.bindings[combo] = command
	return nil
}

// Update replaces the command of an existing binding.
func (s *Set) Update(combo, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return fmt.Errorf("command cannot be empty")
	}
	if _, exists := s.bindings[combo]; !exists {
		return fmt.Errorf("no binding for %q", combo)
	}
	s.bindings[combo] = command
	return nil
}

// Delete removes a binding.
func (s *Set) Delete(combo string) {
	delete(s.bindings, combo)
}

// Bindings returns the bindings sorted by combo.
func (s *Set) Bindings() []Binding {
	combos := make([]string, 0, len(s.bindings))
	for combo := range s.bindings {
		combos = append(combos, combo)
	}
	sort.Strings(combos)
	out := make([]Binding, len(combos))
	for i, combo := range combos {
		out[i] = Binding{Combo: combo, Command: s.bindings[combo]}
	}
	return out
}

// Serialize renders the file content written by Save.
func (s *Set) Serialize() string {
	var b strings.Builder
	b.WriteString("# IceWM custom keyboard shortcuts\n")
	b.WriteString("# Generated by IceWMCP\n\n")
	for _, binding := range s.Bindings() {
		fmt.Fprintf(&b, "key \"%s\"\t\t%s\n", binding.Combo, binding.Command)
	}
	return b.String()
}

// Save writes the keys file atomically, creating the parent directory if
// needed.
func Save(path string, s *Set) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create keys directory: %w", err)
	}
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending keys file: %w", err)
	}
	defer pending.Cleanup()

	if _, err := pending.WriteString(s.Serialize()); err != nil {
		return fmt.Errorf("write keys file: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace keys file: %w", err)
	}
	return nil
}

// Modifier names recognized in combos, in canonical order.
var modifiers = []string{"Ctrl", "Alt", "Shift"}

// SplitCombo separates a combo like "Ctrl+Alt+t" into its modifier flags and
// the remaining key part.
func SplitCombo(combo string) (ctrl, alt, shift bool, key string) {
	var rest []string
	for _, part := range strings.Split(combo, "+") {
		switch part {
		case "Ctrl":
			ctrl = true
		case "Alt":
			alt = true
		case "Shift":
			shift = true
		default:
			if part != "" {
				rest = append(rest, part)
			}
		}
	}
	return ctrl, alt, shift, strings.Join(rest, "+")
}

// JoinCombo builds a combo string in the canonical Ctrl+Alt+Shift+key order.
func JoinCombo(ctrl, alt, shift bool, key string) string {
	var parts []string
	for _, mod := range modifiers {
		switch {
		case mod == "Ctrl" && ctrl, mod == "Alt" && alt, mod == "Shift" && shift:
			parts = append(parts, mod)
		}
	}
	if key = strings.TrimSpace(key); key != "" {
		parts = append(parts, key)
	}
	return strings.Join(parts, "+")
}
