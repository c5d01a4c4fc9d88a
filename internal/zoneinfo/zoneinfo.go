// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: internal/zoneinfo/zoneinfo.go
// Summary: Locate the system zoneinfo database and resolve the active zone.

package zoneinfo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when no usable zoneinfo directory exists.
var ErrNotFound = errors.New("zoneinfo database not found")

// ErrNotSymlink is returned when /etc/localtime is not a symlink, so the
// active zone name cannot be derived.
var ErrNotSymlink = errors.New("localtime is not a symlink")

// Candidate directories, probed in order. $TZDIR, when set, is tried first.
var zoneDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/lib/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/local/share/zoneinfo",
	"/usr/local/share/lib/zoneinfo",
	"/etc/zoneinfo",
}

// localtime files, probed in order.
var localtimeFiles = []string{"/etc/localtime"}

// subdirectories probed when checking for a glibc-style database.
var glibcProbeDirs = []string{"America", "posix", "Africa", "Canada", "Asia", "right", "Indian"}

// DB describes a located zoneinfo installation.
type DB struct {
	// Dir is the root of the zone database, e.g. /usr/share/zoneinfo.
	Dir string
	// LocaltimeFile is the symlink holding the active zone, normally
	// /etc/localtime.
	LocaltimeFile string
}

// Locate finds the zoneinfo directory and the localtime file. The directory
// must look like a glibc database: directories shipping .ics calendar files
// (some commercial Unixes) are rejected because their zone names differ.
func Locate() (*DB, error) {
	dirs := zoneDirs
	if tzdir := strings.TrimSpace(os.Getenv("TZDIR")); tzdir != "" {
		dirs = append([]string{tzdir}, dirs...)
	}

	db := &DB{LocaltimeFile: "/etc/localtime"}
	for _, d := range dirs {
		if isGlibcDir(d) {
			db.Dir = d
			break
		}
	}
	if db.Dir == "" {
		return nil, ErrNotFound
	}

	files := localtimeFiles
	for _, d := range dirs {
		files = append(files, filepath.Join(d, "localtime"))
	}
	for _, f := range files {
		if _, err := os.Lstat(f); err == nil {
			db.LocaltimeFile = f
			break
		}
	}
	return db, nil
}

// isGlibcDir reports whether dir looks like a glibc zoneinfo database.
func isGlibcDir(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	if hasICS(dir) {
		return false
	}
	for _, sub := range glibcProbeDirs {
		if hasICS(filepath.Join(dir, sub)) {
			return false
		}
	}
	return true
}

func hasICS(dir string) bool {
	for _, pattern := range []string{"*.ics", "*.ICS"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// Zones walks the database and returns the sorted zone names (relative
// paths). Files with a dot in the name and editor backups are skipped.
func (db *DB) Zones() ([]string, error) {
	var zones []string
	err := filepath.WalkDir(db.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep walking
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.Contains(name, ".") || strings.HasSuffix(name, "~") {
			return nil
		}
		rel, err := filepath.Rel(db.Dir, path)
		if err != nil {
			return nil
		}
		zones = append(zones, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk zoneinfo: %w", err)
	}
	sort.Strings(zones)
	return zones, nil
}

// ZonePath returns the database file for a zone name.
func (db *DB) ZonePath(zone string) string {
	return filepath.Join(db.Dir, zone)
}

// HasZone reports whether the named zone exists in the database.
func (db *DB) HasZone(zone string) bool {
	info, err := os.Stat(db.ZonePath(zone))
	return err == nil && !info.IsDir()
}

// Current resolves the active zone name by inspecting the localtime symlink.
func (db *DB) Current() (string, error) {
	info, err := os.Lstat(db.LocaltimeFile)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", db.LocaltimeFile, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return "", ErrNotSymlink
	}
	target, err := filepath.EvalSymlinks(db.LocaltimeFile)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", db.LocaltimeFile, err)
	}
	root, err := filepath.EvalSymlinks(db.Dir)
	if err != nil {
		root = db.Dir
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s points outside %s", db.LocaltimeFile, db.Dir)
	}
	return rel, nil
}
