// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: panel/cell.go
// Summary: Cell buffer primitives shared by the dialog shell and all applets.

package panel

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell represents a single character cell in an applet's render buffer.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// NewBuffer allocates a w×h buffer filled with blank cells.
func NewBuffer(w, h int) [][]Cell {
	buf := make([][]Cell, h)
	for y := range buf {
		buf[y] = make([]Cell, w)
		for x := range buf[y] {
			buf[y][x] = Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}
	return buf
}

// ClearBuffer resets every cell to a blank with the given style.
func ClearBuffer(buf [][]Cell, style tcell.Style) {
	for y := range buf {
		for x := range buf[y] {
			buf[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
}

// Blit copies src onto dst at the given offset, clipping at dst's bounds.
func Blit(dst [][]Cell, x, y int, src [][]Cell) {
	for r, row := range src {
		dy := y + r
		if dy < 0 || dy >= len(dst) {
			continue
		}
		for c, cell := range row {
			dx := x + c
			if dx < 0 || dx >= len(dst[dy]) {
				continue
			}
			dst[dy][dx] = cell
		}
	}
}

// DrawText writes text into buf starting at (x, y) and returns the x position
// after the last written cell. Wide runes occupy two cells.
func DrawText(buf [][]Cell, x, y int, style tcell.Style, text string) int {
	if y < 0 || y >= len(buf) {
		return x
	}
	row := buf[y]
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x >= 0 && x < len(row) {
			row[x] = Cell{Ch: ch, Style: style}
		}
		if w == 2 && x+1 >= 0 && x+1 < len(row) {
			row[x+1] = Cell{Ch: ' ', Style: style}
		}
		x += w
	}
	return x
}

// FillRect paints a rectangle of blanks with the given style.
func FillRect(buf [][]Cell, x, y, w, h int, style tcell.Style) {
	for dy := y; dy < y+h; dy++ {
		if dy < 0 || dy >= len(buf) {
			continue
		}
		for dx := x; dx < x+w; dx++ {
			if dx < 0 || dx >= len(buf[dy]) {
				continue
			}
			buf[dy][dx] = Cell{Ch: ' ', Style: style}
		}
	}
}

// DrawBox draws a single-line border around the rectangle.
func DrawBox(buf [][]Cell, x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	set := func(px, py int, ch rune) {
		if py >= 0 && py < len(buf) && px >= 0 && px < len(buf[py]) {
			buf[py][px] = Cell{Ch: ch, Style: style}
		}
	}
	for dx := x + 1; dx < x+w-1; dx++ {
		set(dx, y, '─')
		set(dx, y+h-1, '─')
	}
	for dy := y + 1; dy < y+h-1; dy++ {
		set(x, dy, '│')
		set(x+w-1, dy, '│')
	}
	set(x, y, '┌')
	set(x+w-1, y, '┐')
	set(x, y+h-1, '└')
	set(x+w-1, y+h-1, '┘')
}
