// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package history

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, "mousespeed", "acceleration", "4/1", "6/1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(ctx, "mousespeed", "threshold", "4", "10"); err != nil {
		t.Fatal(err)
	}

	changes, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if changes[0].Setting != "threshold" {
		t.Errorf("newest first expected, got %q", changes[0].Setting)
	}
	if changes[0].AppliedAt.IsZero() {
		t.Error("applied_at not recorded")
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, "energystar", "standby", "600", "1200"); err != nil {
			t.Fatal(err)
		}
	}
	changes, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 3 {
		t.Errorf("expected 3 changes, got %d", len(changes))
	}
}

func TestLastFor(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.LastFor(ctx, "mousespeed", "acceleration"); err != nil || ok {
		t.Fatalf("expected no change yet, ok=%v err=%v", ok, err)
	}

	if err := s.Record(ctx, "mousespeed", "acceleration", "4/1", "6/1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(ctx, "mousespeed", "acceleration", "6/1", "8/1"); err != nil {
		t.Fatal(err)
	}

	c, ok, err := s.LastFor(ctx, "mousespeed", "acceleration")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a change")
	}
	if c.Previous != "6/1" || c.Current != "8/1" {
		t.Errorf("got previous=%q current=%q", c.Previous, c.Current)
	}
}
