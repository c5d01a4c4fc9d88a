// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and applet configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp": "hub",
	})
	cfg.RegisterDefaults("ui", Section{
		"theme": "default",
	})
	cfg.RegisterDefaults("log", Section{
		"level": "info",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "clock":
		cfg.RegisterDefaults("clock", Section{
			"format_24h":   false,
			"show_seconds": true,
		})
	case "mousespeed":
		cfg.RegisterDefaults("mousespeed", Section{
			"revert_timeout_sec": 7,
		})
	case "shortcuts":
		cfg.RegisterDefaults("shortcuts", Section{
			"keys_file":          "",
			"highlight_commands": true,
		})
	}
}
