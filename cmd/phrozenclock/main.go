// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: cmd/phrozenclock/main.go
// Summary: Standalone launcher for the date and time applet.

package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/DeltaResero/IceWMCP/apps/clock"
	"github.com/DeltaResero/IceWMCP/config"
	"github.com/DeltaResero/IceWMCP/internal/applog"
	"github.com/DeltaResero/IceWMCP/panel"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("phrozenclock", flag.ContinueOnError)
	showVersion := fs.Bool("version", false, "Print the version and exit")
	logConsole := fs.Bool("log-console", false, "Log to stderr instead of the log file")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Println("phrozenclock " + version)
		return nil
	}

	closeLog := applog.Setup(*logConsole)
	defer closeLog()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("phrozenclock needs a terminal")
	}

	panel.SetTheme(panel.ThemeByName(config.System().GetString("ui", "theme", "default")))
	screen, err := panel.NewScreen()
	if err != nil {
		return err
	}
	return screen.Run(clock.New(screen))
}
