// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: cmd/icewmcp-run/main.go
// Summary: Run dialog and command launcher.
// Usage: `icewmcp-run` opens the dialog; `icewmcp-run <command...>` launches
// directly and records the command in the history.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	rundlg "github.com/DeltaResero/IceWMCP/apps/run"
	"github.com/DeltaResero/IceWMCP/config"
	"github.com/DeltaResero/IceWMCP/internal/applog"
	"github.com/DeltaResero/IceWMCP/internal/runcmd"
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
	fs := flag.NewFlagSet("icewmcp-run", flag.ContinueOnError)
	capture := fs.Bool("capture", false, "Run under a pty and print the command's output")
	describe := fs.Bool("describe", false, "Describe the executable instead of running it")
	showVersion := fs.Bool("version", false, "Print the version and exit")
	logConsole := fs.Bool("log-console", false, "Log to stderr instead of the log file")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Println("icewmcp-run " + version)
		return nil
	}

	closeLog := applog.Setup(*logConsole)
	defer closeLog()

	cmdline := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if cmdline == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("icewmcp-run needs a terminal for the dialog")
		}
		panel.SetTheme(panel.ThemeByName(config.System().GetString("ui", "theme", "default")))
		screen, err := panel.NewScreen()
		if err != nil {
			return err
		}
		return screen.Run(rundlg.New(screen))
	}

	if *describe {
		fmt.Println(runcmd.Describe(cmdline))
		return nil
	}

	if *capture {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		out, err := runcmd.Capture(ctx, cmdline)
		fmt.Print(out)
		return err
	}

	if err := runcmd.Launch(cmdline); err != nil {
		return err
	}
	path := runcmd.HistoryFile()
	history, err := runcmd.LoadHistory(path)
	if err != nil {
		log.Warn().Err(err).Msg("Run: could not load history")
	}
	if err := runcmd.SaveHistory(path, runcmd.PushHistory(history, cmdline)); err != nil {
		log.Warn().Err(err).Msg("Run: could not save history")
	}
	return nil
}
