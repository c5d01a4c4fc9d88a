// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: panel/app.go
// Summary: The App contract implemented by every control panel applet.

package panel

import "github.com/gdamore/tcell/v2"

// App is a single control panel dialog. The shell calls Resize and HandleKey
// from its event loop, Render whenever it needs a fresh frame, and runs Run in
// its own goroutine for apps that need background work (tickers, watchers).
type App interface {
	// Run blocks until Stop is called. Apps without background work return nil
	// immediately.
	Run() error

	// Stop signals Run to terminate. Must be safe to call once.
	Stop()

	// Resize informs the app of its inner dialog dimensions.
	Resize(cols, rows int)

	// Render returns the app's current buffer. Called from the shell loop.
	Render() [][]Cell

	// HandleKey processes a key event routed to the app.
	HandleKey(ev *tcell.EventKey)

	// GetTitle returns the dialog title.
	GetTitle() string

	// SetRefreshNotifier hands the app a channel it may signal (with a
	// non-blocking send) when its content changed outside a key event.
	SetRefreshNotifier(refresh chan<- bool)
}

// Host is the view an applet gets of the shell hosting it: modal dialogs,
// app navigation, and termination.
type Host interface {
	// ShowInfo, ShowWarning and ShowError open a modal message box.
	ShowInfo(title, text string)
	ShowWarning(title, text string)
	ShowError(title, text string)

	// Confirm opens a modal yes/no box and invokes done from the event loop
	// once the user decides.
	Confirm(title, text string, done func(yes bool))

	// OpenApp pushes an app onto the shell; CloseApp returns to the previous
	// one, terminating the shell when none is left.
	OpenApp(app App)
	CloseApp()

	// Beep rings the terminal bell.
	Beep()

	// Quit tears down the shell regardless of the app stack.
	Quit()
}
