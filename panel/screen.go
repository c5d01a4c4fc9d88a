// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: panel/screen.go
// Summary: The dialog shell: event loop, app stack, and modal message boxes.

package panel

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
)

// Screen hosts a stack of Apps, one visible at a time as a centered bordered
// dialog, and owns the terminal for the lifetime of Run.
type Screen struct {
	ts      tcell.Screen
	stack   []App
	refresh chan bool
	quit    chan struct{}
	modal   *messageBox

	width, height int
}

// messageBox is a modal overlay capturing all input until dismissed.
type messageBox struct {
	title   string
	lines   []string
	buttons []string
	sel     int
	done    func(choice int)
}

// NewScreen creates a shell. Apps are pushed with OpenApp before or during Run.
func NewScreen() (*Screen, error) {
	ts, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	return &Screen{
		ts:      ts,
		refresh: make(chan bool, 8),
		quit:    make(chan struct{}),
	}, nil
}

// Run initializes the terminal, pushes the root app, and processes events
// until the app stack empties or Quit is called.
func (s *Screen) Run(root App) error {
	if err := s.ts.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer s.ts.Fini()

	s.ts.SetStyle(theme.Background)
	s.ts.HideCursor()
	s.width, s.height = s.ts.Size()

	s.OpenApp(root)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := s.ts.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-s.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	s.draw()
	for {
		select {
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				s.handleKey(tev)
			case *tcell.EventResize:
				s.width, s.height = tev.Size()
				s.ts.Sync()
				s.resizeTop()
			}
			if s.closed() {
				return nil
			}
			s.draw()
		case <-s.refresh:
			s.draw()
		case <-ticker.C:
			s.draw()
		case <-s.quit:
			return nil
		}
	}
}

func (s *Screen) closed() bool {
	select {
	case <-s.quit:
		return true
	default:
		return false
	}
}

func (s *Screen) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		s.Quit()
		return
	}
	if s.modal != nil {
		s.modalKey(ev)
		return
	}
	if len(s.stack) == 0 {
		return
	}
	s.stack[len(s.stack)-1].HandleKey(ev)
}

func (s *Screen) modalKey(ev *tcell.EventKey) {
	m := s.modal
	switch ev.Key() {
	case tcell.KeyLeft, tcell.KeyBacktab:
		if m.sel > 0 {
			m.sel--
		}
	case tcell.KeyRight, tcell.KeyTab:
		if m.sel < len(m.buttons)-1 {
			m.sel++
		}
	case tcell.KeyEnter:
		s.modal = nil
		if m.done != nil {
			m.done(m.sel)
		}
	case tcell.KeyEscape:
		s.modal = nil
		if m.done != nil {
			m.done(-1)
		}
	}
}

// OpenApp pushes an app on the stack and starts its Run goroutine.
func (s *Screen) OpenApp(app App) {
	app.SetRefreshNotifier(s.refresh)
	s.stack = append(s.stack, app)
	s.resizeTop()
	go func() {
		if err := app.Run(); err != nil {
			log.Error().Err(err).Str("app", app.GetTitle()).Msg("app run failed")
		}
	}()
}

// CloseApp stops the visible app and returns to the previous one. Closing the
// last app terminates the shell.
func (s *Screen) CloseApp() {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	top.Stop()
	if len(s.stack) == 0 {
		s.Quit()
		return
	}
	s.resizeTop()
}

// Quit stops every app and ends Run.
func (s *Screen) Quit() {
	select {
	case <-s.quit:
		return
	default:
	}
	for _, app := range s.stack {
		app.Stop()
	}
	s.stack = nil
	close(s.quit)
}

// Beep rings the terminal bell.
func (s *Screen) Beep() {
	_ = s.ts.Beep()
}

// ShowInfo opens a modal information box.
func (s *Screen) ShowInfo(title, text string) {
	s.openModal(title, text, []string{"OK"}, nil)
}

// ShowWarning opens a modal warning box.
func (s *Screen) ShowWarning(title, text string) {
	s.openModal(title, text, []string{"OK"}, nil)
}

// ShowError opens a modal error box.
func (s *Screen) ShowError(title, text string) {
	s.openModal(title, text, []string{"OK"}, nil)
}

// Confirm opens a yes/no box; done receives true only for Yes.
func (s *Screen) Confirm(title, text string, done func(yes bool)) {
	s.openModal(title, text, []string{"Yes", "No"}, func(choice int) {
		if done != nil {
			done(choice == 0)
		}
	})
}

func (s *Screen) openModal(title, text string, buttons []string, done func(int)) {
	s.modal = &messageBox{
		title:   title,
		lines:   wrapText(text, 46),
		buttons: buttons,
		done:    done,
	}
	s.notify()
}

func (s *Screen) notify() {
	select {
	case s.refresh <- true:
	default:
	}
}

func (s *Screen) resizeTop() {
	if len(s.stack) == 0 {
		return
	}
	w, h := s.innerSize()
	s.stack[len(s.stack)-1].Resize(w, h)
}

// innerSize is the drawable area inside the dialog border.
func (s *Screen) innerSize() (int, int) {
	w := s.width - 4
	h := s.height - 2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

func (s *Screen) draw() {
	if s.closed() {
		return
	}
	root := NewBuffer(s.width, s.height)
	ClearBuffer(root, theme.Background)

	if len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		DrawBox(root, 0, 0, s.width, s.height, theme.Border)
		title := fmt.Sprintf(" %s ", top.GetTitle())
		DrawText(root, 2, 0, theme.Title, title)
		Blit(root, 2, 1, top.Render())
	}

	if s.modal != nil {
		s.drawModal(root)
	}

	for y := 0; y < s.height && y < len(root); y++ {
		for x := 0; x < s.width && x < len(root[y]); x++ {
			cell := root[y][x]
			s.ts.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
	s.ts.Show()
}

func (s *Screen) drawModal(root [][]Cell) {
	m := s.modal
	w := 0
	for _, line := range m.lines {
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	if tw := runewidth.StringWidth(m.title); tw > w {
		w = tw
	}
	btnW := 0
	for _, b := range m.buttons {
		btnW += runewidth.StringWidth(b) + 6
	}
	if btnW > w {
		w = btnW
	}
	w += 4
	h := len(m.lines) + 4

	x := (s.width - w) / 2
	y := (s.height - h) / 2

	FillRect(root, x, y, w, h, theme.Background)
	DrawBox(root, x, y, w, h, theme.Border)
	DrawText(root, x+2, y, theme.Title, fmt.Sprintf(" %s ", m.title))
	for i, line := range m.lines {
		DrawText(root, x+2, y+1+i, theme.Text, line)
	}

	bx := x + 2
	by := y + h - 2
	for i, b := range m.buttons {
		style := theme.Text
		if i == m.sel {
			style = theme.Focus
		}
		bx = DrawText(root, bx, by, style, fmt.Sprintf("[ %s ]", b))
		bx += 2
	}
}

// wrapText breaks text into lines no wider than limit, respecting embedded
// newlines.
func wrapText(text string, limit int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if runewidth.StringWidth(line)+1+runewidth.StringWidth(word) > limit {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return out
}
