// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: config/store.go
// Summary: Load, reload, and migration logic for the config store.

package config

import "github.com/rs/zerolog/log"

func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.Warn().Err(err).Msg("Config: failed to resolve system config path")
		system = make(Config)
		applySystemDefaults(system)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Warn().Err(readErr).Str("path", path).Msg("Config: failed to read system config")
		cfg = make(Config)
	}

	if exists && len(cfg) == 0 {
		if def := defaultSystemConfig(); def != nil {
			cfg = def
			if err := writeConfig(path, cfg); err != nil {
				log.Warn().Err(err).Msg("Config: failed to write default system config")
				if readErr == nil {
					readErr = err
				}
			}
		}
	}

	if !exists {
		cfg = make(Config)
		migrated, migrateErr := migrateSystemFromLegacy(cfg)
		if migrateErr != nil {
			log.Warn().Err(migrateErr).Msg("Config: legacy system migration error")
			if readErr == nil {
				readErr = migrateErr
			}
		}
		if !migrated {
			if def := defaultSystemConfig(); def != nil {
				cfg = def
				migrated = true
			}
		}
		applySystemDefaults(cfg)
		if migrated {
			if err := writeConfig(path, cfg); err != nil {
				log.Warn().Err(err).Msg("Config: failed to write migrated system config")
				if readErr == nil {
					readErr = err
				}
			}
		}
	} else {
		applySystemDefaults(cfg)
	}

	system = cfg
	if readErr == nil && exists {
		log.Debug().Str("path", path).Msg("Config: loaded system config")
	}
	return readErr
}

func loadAppLocked(name string) (Config, error) {
	path, err := appConfigPath(name)
	if err != nil {
		return nil, err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Warn().Err(readErr).Str("path", path).Msg("Config: failed to read applet config")
		cfg = make(Config)
	}

	if exists && len(cfg) == 0 {
		if def := defaultAppConfig(name); def != nil {
			cfg = def
			if err := writeConfig(path, cfg); err != nil {
				log.Warn().Err(err).Msg("Config: failed to write default applet config")
				if readErr == nil {
					readErr = err
				}
			}
		}
	}

	if !exists {
		cfg = make(Config)
		if def := defaultAppConfig(name); def != nil {
			cfg = def
		}
		applyAppDefaults(name, cfg)
		if err := writeConfig(path, cfg); err != nil {
			log.Warn().Err(err).Msg("Config: failed to write initial applet config")
			if readErr == nil {
				readErr = err
			}
		}
	} else {
		applyAppDefaults(name, cfg)
	}

	if readErr == nil && exists {
		log.Debug().Str("app", name).Str("path", path).Msg("Config: loaded applet config")
	}
	return cfg, readErr
}
