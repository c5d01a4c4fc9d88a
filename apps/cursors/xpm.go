// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: apps/cursors/xpm.go
// Summary: Minimal XPM header inspection for cursor files.

package cursors

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// XPMInfo is the geometry line of an XPM file.
type XPMInfo struct {
	Width  int
	Height int
	Colors int
	CPP    int // characters per pixel
}

// ParseXPMHeader reads the first values line of an XPM file. The format keeps
// the geometry in the first quoted string: "width height ncolors cpp".
func ParseXPMHeader(path string) (XPMInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return XPMInfo{}, fmt.Errorf("open cursor file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		if !strings.Contains(scanner.Text(), "XPM") {
			return XPMInfo{}, fmt.Errorf("%s is not an XPM file", path)
		}
	}
	for scanner.Scan() {
		line := scanner.Text()
		start := strings.IndexByte(line, '"')
		if start < 0 {
			continue
		}
		end := strings.IndexByte(line[start+1:], '"')
		if end < 0 {
			continue
		}
		fields := strings.Fields(line[start+1 : start+1+end])
		if len(fields) < 4 {
			return XPMInfo{}, fmt.Errorf("malformed XPM values line in %s", path)
		}
		var info XPMInfo
		var errs [4]error
		info.Width, errs[0] = strconv.Atoi(fields[0])
		info.Height, errs[1] = strconv.Atoi(fields[1])
		info.Colors, errs[2] = strconv.Atoi(fields[2])
		info.CPP, errs[3] = strconv.Atoi(fields[3])
		for _, err := range errs {
			if err != nil {
				return XPMInfo{}, fmt.Errorf("malformed XPM values line in %s", path)
			}
		}
		return info, nil
	}
	if err := scanner.Err(); err != nil {
		return XPMInfo{}, fmt.Errorf("read cursor file: %w", err)
	}
	return XPMInfo{}, fmt.Errorf("no XPM values line in %s", path)
}

// String renders the geometry the way the dialog displays it.
func (i XPMInfo) String() string {
	return fmt.Sprintf("%dx%d, %d colors", i.Width, i.Height, i.Colors)
}
