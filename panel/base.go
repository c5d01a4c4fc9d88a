// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: panel/base.go
// Summary: Shared lifecycle plumbing embedded by every applet.

package panel

import "sync"

// BaseApp carries the App lifecycle every applet needs: dimensions, the stop
// channel, and the refresh notifier. Applets embed it and override Run when
// they need background work.
type BaseApp struct {
	mu       sync.RWMutex
	width    int
	height   int
	title    string
	stop     chan struct{}
	stopOnce sync.Once
	refresh  chan<- bool
}

// NewBaseApp initializes the embedded lifecycle state.
func NewBaseApp(title string) BaseApp {
	return BaseApp{title: title, stop: make(chan struct{})}
}

// Run blocks until Stop is called.
func (b *BaseApp) Run() error {
	<-b.stop
	return nil
}

// Stop signals Run to terminate. Safe to call more than once.
func (b *BaseApp) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
}

// Done returns the stop channel for applets that run their own loops.
func (b *BaseApp) Done() <-chan struct{} { return b.stop }

// Resize stores the inner dialog dimensions.
func (b *BaseApp) Resize(cols, rows int) {
	b.mu.Lock()
	b.width, b.height = cols, rows
	b.mu.Unlock()
}

// Size returns the current inner dimensions.
func (b *BaseApp) Size() (int, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.width, b.height
}

// GetTitle returns the dialog title.
func (b *BaseApp) GetTitle() string { return b.title }

// SetRefreshNotifier stores the shell's refresh channel.
func (b *BaseApp) SetRefreshNotifier(refresh chan<- bool) {
	b.mu.Lock()
	b.refresh = refresh
	b.mu.Unlock()
}

// Notify signals the shell to redraw without blocking.
func (b *BaseApp) Notify() {
	b.mu.RLock()
	refresh := b.refresh
	b.mu.RUnlock()
	if refresh != nil {
		select {
		case refresh <- true:
		default:
		}
	}
}
