// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func resetStore() {
	once = sync.Once{}
	system = nil
	apps = nil
	loadErr = nil
}

func TestSystemDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := System()
	if cfg.GetString("", "defaultApp", "") != "hub" {
		t.Fatalf("expected defaultApp hub, got %q", cfg.GetString("", "defaultApp", ""))
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if disk.Section("ui") == nil {
		t.Fatalf("expected ui section to be present")
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := Config{
		"defaultApp": "clock",
	}
	SetSystem(cfg)
	if err := SaveSystem(); err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if got := disk.GetString("", "defaultApp", ""); got != "clock" {
		t.Fatalf("expected defaultApp to be clock, got %q", got)
	}
}

func TestAppDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := App("clock")
	if cfg.Section("clock") == nil {
		t.Fatalf("expected clock section to be present")
	}
	if cfg.GetBool("clock", "format_24h", true) {
		t.Fatalf("expected format_24h default false")
	}

	path, err := appConfigPath("clock")
	if err != nil {
		t.Fatalf("appConfigPath: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected applet config to be written: %v", err)
	}
}

func TestSaveAppWritesUpdates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := Config{
		"mousespeed": map[string]interface{}{
			"revert_timeout_sec": 12,
		},
	}
	SetApp("mousespeed", cfg)
	if err := SaveApp("mousespeed"); err != nil {
		t.Fatalf("SaveApp: %v", err)
	}

	path, err := appConfigPath("mousespeed")
	if err != nil {
		t.Fatalf("appConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read applet config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal applet config: %v", err)
	}
	if got := disk.GetInt("mousespeed", "revert_timeout_sec", 0); got != 12 {
		t.Fatalf("expected revert_timeout_sec 12, got %d", got)
	}
}

func TestSystemMigrationFromLegacy(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	resetStore()

	cfgRoot := filepath.Join(root, "icewmcp")
	if err := os.MkdirAll(cfgRoot, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := writeConfig(filepath.Join(cfgRoot, "config.json"), Config{
		"defaultApp": "shortcuts",
		"ui": map[string]interface{}{
			"theme": "mono",
		},
	}); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}

	cfg := System()
	if got := cfg.GetString("", "defaultApp", ""); got != "shortcuts" {
		t.Fatalf("expected defaultApp migration, got %q", got)
	}
	if got := cfg.GetString("ui", "theme", ""); got != "mono" {
		t.Fatalf("expected theme migration, got %q", got)
	}
}

func TestReloadSystemPicksUpDiskChanges(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	_ = System()
	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	if err := writeConfig(path, Config{"defaultApp": "clock"}); err != nil {
		t.Fatalf("write system config: %v", err)
	}

	if err := ReloadSystem(); err != nil {
		t.Fatalf("ReloadSystem: %v", err)
	}
	if got := System().GetString("", "defaultApp", ""); got != "clock" {
		t.Fatalf("expected reloaded defaultApp clock, got %q", got)
	}
}

func TestReloadAppPicksUpDiskChanges(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	_ = App("mousespeed")
	path, err := appConfigPath("mousespeed")
	if err != nil {
		t.Fatalf("appConfigPath: %v", err)
	}
	if err := writeConfig(path, Config{
		"mousespeed": map[string]interface{}{
			"revert_timeout_sec": 3,
		},
	}); err != nil {
		t.Fatalf("write applet config: %v", err)
	}

	if err := Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := App("mousespeed").GetInt("mousespeed", "revert_timeout_sec", 0); got != 3 {
		t.Fatalf("expected reloaded timeout 3, got %d", got)
	}
}

func TestWriteConfigReplacesWholeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icewmcp.json")
	if err := writeConfig(path, Config{"defaultApp": "hub"}); err != nil {
		t.Fatal(err)
	}
	if err := writeConfig(path, Config{"defaultApp": "clock"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal rewritten config: %v", err)
	}
	if got := disk.GetString("", "defaultApp", ""); got != "clock" {
		t.Errorf("got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, dir has %d entries", len(entries))
	}
}

func TestAppConfigWithoutEmbeddedDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := App("energystar")
	if cfg == nil {
		t.Fatal("expected a config even without embedded defaults")
	}
	if got := cfg.GetInt("energystar", "standby_min", 10); got != 10 {
		t.Fatalf("expected fallback default, got %d", got)
	}
}
