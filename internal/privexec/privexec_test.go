// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package privexec

import "testing"

func TestQuote(t *testing.T) {
	cases := map[string]string{
		"plain":        "'plain'",
		"with space":   "'with space'",
		"don't":        `'don'\''t'`,
		"a;rm -rf /":   "'a;rm -rf /'",
		"$HOME && env": "'$HOME && env'",
	}
	for in, want := range cases {
		if got := Quote(in); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestScriptJoinsWithAnd(t *testing.T) {
	got := Script("timedatectl set-ntp false", "timedatectl set-time '2025-01-01 12:00:00'")
	want := "timedatectl set-ntp false && timedatectl set-time '2025-01-01 12:00:00'"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if Script("one") != "one" {
		t.Error("single command must pass through unchanged")
	}
}
