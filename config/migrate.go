// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: config/migrate.go
// Summary: Legacy config migration helpers.

package config

// migrateSystemFromLegacy imports settings from the single config.json that
// earlier releases kept before the per-applet split.
func migrateSystemFromLegacy(cfg Config) (bool, error) {
	if cfg == nil {
		return false, nil
	}
	legacyPath, err := legacyConfigPath()
	if err != nil {
		return false, err
	}
	legacyCfg, exists, err := readConfig(legacyPath)
	if err != nil {
		return false, err
	}
	if !exists || legacyCfg == nil {
		return false, nil
	}

	migrated := false
	if _, ok := cfg["defaultApp"]; !ok {
		if val, ok := legacyCfg["defaultApp"]; ok {
			cfg["defaultApp"] = val
			migrated = true
		}
	}
	for _, section := range []string{"ui", "log"} {
		if copySection(cfg, legacyCfg, section) {
			migrated = true
		}
	}
	return migrated, nil
}

func copySection(dst Config, src Config, name string) bool {
	if dst == nil || src == nil || name == "" {
		return false
	}
	if _, ok := dst[name]; ok {
		return false
	}
	if section, ok := src[name]; ok {
		dst[name] = section
		return true
	}
	return false
}
