// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package cursors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DeltaResero/IceWMCP/panel/widgets"
)

func newTestTable() *widgets.Table {
	return &widgets.Table{
		Columns: []widgets.Column{
			{Title: "Role", Width: 8},
			{Title: "Installed", Width: 10},
			{Title: "Geometry", Width: 24},
		},
	}
}

const sampleXPM = `/* XPM */
static char *cursor[] = {
/* columns rows colors chars-per-pixel */
"16 16 3 1",
"  c None",
". c black",
"X c white",
"................",
};
`

func writeXPM(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cursor.xpm")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseXPMHeader(t *testing.T) {
	info, err := ParseXPMHeader(writeXPM(t, sampleXPM))
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 16 || info.Height != 16 || info.Colors != 3 || info.CPP != 1 {
		t.Errorf("got %+v", info)
	}
	if info.String() != "16x16, 3 colors" {
		t.Errorf("got %q", info.String())
	}
}

func TestParseXPMHeaderRejectsNonXPM(t *testing.T) {
	path := writeXPM(t, "GIF89a not an xpm")
	if _, err := ParseXPMHeader(path); err == nil {
		t.Error("expected error for non-XPM file")
	}
}

func TestParseXPMHeaderMalformedValues(t *testing.T) {
	path := writeXPM(t, "/* XPM */\nstatic char *c[] = {\n\"16 16\",\n};\n")
	if _, err := ParseXPMHeader(path); err == nil {
		t.Error("expected error for short values line")
	}
}

func TestCopyFileInstallsIntoMissingDir(t *testing.T) {
	src := writeXPM(t, sampleXPM)
	dst := filepath.Join(t.TempDir(), "cursors", "left.xpm")
	if err := copyFile(src, dst); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sampleXPM {
		t.Error("copied content differs")
	}
}

func TestRoleTableCoversResizeCursors(t *testing.T) {
	want := []string{
		"left", "right", "move",
		"sizeB", "sizeBL", "sizeBR",
		"sizeL", "sizeR",
		"sizeT", "sizeTL", "sizeTR",
	}
	if len(roles) != len(want) {
		t.Fatalf("expected %d roles, got %d", len(want), len(roles))
	}
	for i, r := range want {
		if roles[i] != r {
			t.Errorf("roles[%d] = %q, want %q", i, roles[i], r)
		}
	}
}

func TestRefreshReportsInstalledRoles(t *testing.T) {
	a := &app{dir: t.TempDir()}
	a.table = newTestTable()
	if err := os.WriteFile(filepath.Join(a.dir, "left.xpm"), []byte(sampleXPM), 0o644); err != nil {
		t.Fatal(err)
	}

	a.refresh()

	if len(a.table.Rows) != len(roles) {
		t.Fatalf("expected %d rows, got %d", len(roles), len(a.table.Rows))
	}
	if a.table.Rows[0][1] != "yes" || a.table.Rows[0][2] != "16x16, 3 colors" {
		t.Errorf("left row = %v", a.table.Rows[0])
	}
	if a.table.Rows[1][1] != "no" {
		t.Errorf("right row = %v", a.table.Rows[1])
	}
}
