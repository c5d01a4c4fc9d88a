// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: internal/applog/applog.go
// Summary: Shared zerolog setup for the IceWMCP binaries.

package applog

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/config"
)

// Setup configures the global logger. Level comes from the system config. With
// console set the log goes to stderr, otherwise to the log file under the
// config root. The returned function closes the log file.
func Setup(console bool) func() {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(config.System().GetString("log", "level", "info")); err == nil {
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	if console {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		return func() {}
	}

	path, err := config.LogPath()
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	var f *os.File
	if err == nil {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	}
	if err != nil {
		// The panel owns the terminal, so a broken log file means no logging.
		log.Logger = zerolog.Nop()
		return func() {}
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }
}
