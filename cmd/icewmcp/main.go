// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: cmd/icewmcp/main.go
// Summary: The IceWM control panel binary.
// Usage: Run `icewmcp` for the hub, or `icewmcp <applet>` to open one directly.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/DeltaResero/IceWMCP/apps/hub"
	"github.com/DeltaResero/IceWMCP/config"
	"github.com/DeltaResero/IceWMCP/internal/applog"
	"github.com/DeltaResero/IceWMCP/panel"
	"github.com/DeltaResero/IceWMCP/registry"

	_ "github.com/DeltaResero/IceWMCP/apps/clock"
	_ "github.com/DeltaResero/IceWMCP/apps/cursors"
	_ "github.com/DeltaResero/IceWMCP/apps/energystar"
	_ "github.com/DeltaResero/IceWMCP/apps/help"
	_ "github.com/DeltaResero/IceWMCP/apps/keyrepeat"
	_ "github.com/DeltaResero/IceWMCP/apps/keysound"
	_ "github.com/DeltaResero/IceWMCP/apps/mousespeed"
	_ "github.com/DeltaResero/IceWMCP/apps/run"
	_ "github.com/DeltaResero/IceWMCP/apps/shortcuts"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("icewmcp", flag.ContinueOnError)
	list := fs.Bool("list", false, "List available applets and exit")
	showVersion := fs.Bool("version", false, "Print the version and exit")
	logConsole := fs.Bool("log-console", false, "Log to stderr instead of the log file")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Println("icewmcp " + version)
		return nil
	}

	closeLog := applog.Setup(*logConsole)
	defer closeLog()
	if err := config.Err(); err != nil {
		log.Warn().Err(err).Msg("Main: config load failed, using defaults")
	}

	reg := registry.New()
	registry.RegisterBuiltIns(reg)
	hub.Register(reg)
	if dir, err := config.AppsDir(); err == nil {
		if err := reg.Scan(dir); err != nil {
			log.Warn().Err(err).Msg("Main: applet scan failed")
		}
	}

	if *list {
		for _, entry := range reg.List() {
			fmt.Printf("%-12s %-10s %s\n", entry.Manifest.Name, entry.Manifest.Category, entry.Manifest.Description)
		}
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("icewmcp needs a terminal")
	}

	name := fs.Arg(0)
	if name == "" {
		name = config.System().GetString("", "defaultApp", "hub")
	}
	panel.SetTheme(panel.ThemeByName(config.System().GetString("ui", "theme", "default")))

	screen, err := panel.NewScreen()
	if err != nil {
		return err
	}
	root := reg.CreateApp(name, screen)
	if root == nil {
		return fmt.Errorf("unknown applet %q (try --list)", name)
	}

	log.Info().Str("app", name).Str("version", version).Msg("Main: starting")
	return screen.Run(root)
}
