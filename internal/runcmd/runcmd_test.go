// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package runcmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestStripControl(t *testing.T) {
	in := "\x1b[31mred\x1b[0m text\r\nnext\tline\x07"
	want := "red text\nnext\tline"
	if got := StripControl(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStripControlPlainPassthrough(t *testing.T) {
	in := "nothing special here\n"
	if got := StripControl(in); got != in {
		t.Errorf("got %q", got)
	}
}

func TestPushHistoryFrontAndDedup(t *testing.T) {
	entries := []string{"xterm", "xclock", "firefox"}
	got := PushHistory(entries, "xclock")
	want := []string{"xclock", "xterm", "firefox"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPushHistoryTrimsToMax(t *testing.T) {
	var entries []string
	for i := 0; i < MaxHistory; i++ {
		entries = append(entries, string(rune('a'+i)))
	}
	got := PushHistory(entries, "new")
	if len(got) != MaxHistory {
		t.Fatalf("expected %d entries, got %d", MaxHistory, len(got))
	}
	if got[0] != "new" {
		t.Errorf("new entry must be first, got %q", got[0])
	}
}

func TestPushHistoryIgnoresBlank(t *testing.T) {
	entries := []string{"xterm"}
	if got := PushHistory(entries, "   "); !reflect.DeepEqual(got, entries) {
		t.Errorf("got %v", got)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	entries := []string{"xterm -fg white", "icewmcp clock"}
	if err := SaveHistory(path, entries); err != nil {
		t.Fatal(err)
	}
	got, err := LoadHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Errorf("got %v, want %v", got, entries)
	}
}

func TestSaveHistoryFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	if err := SaveHistory(path, []string{"newest", "older", "oldest"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := historyHeader + "\noldest\nolder\nnewest\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestLoadHistorySkipsCommentsAndReverses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	content := historyHeader + "\nxclock\nxeyes\nxterm\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"xterm", "xeyes", "xclock"}) {
		t.Errorf("got %v", got)
	}
}

func TestLoadHistoryMissingFile(t *testing.T) {
	got, err := LoadHistory(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestLoadHistorySkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(path, []byte("one\n\n  \ntwo\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"two", "one"}) {
		t.Errorf("got %v", got)
	}
}

func TestLaunchRejectsEmptyCommand(t *testing.T) {
	if err := Launch("   "); err == nil {
		t.Error("expected error for empty command")
	}
	if err := Launch(`broken "quote`); err == nil {
		t.Error("expected error for unbalanced quotes")
	}
}
