// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: config/types.go
// Summary: Typed getters over the JSON-backed config maps.

package config

import "strconv"

// Section returns the named section, or nil when there is none. The empty
// name addresses the top level, where keys like defaultApp live outside any
// section.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if name == "" {
		return Section(c)
	}
	switch v := c[name].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills in missing keys without touching ones already set.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	section := c.Section(name)
	if section == nil {
		section = make(Section)
		c[name] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func (c Config) value(section, key string) (interface{}, bool) {
	s := c.Section(section)
	if s == nil {
		return nil, false
	}
	v, ok := s[key]
	return v, ok
}

// GetString reads a string setting, falling back when it is absent or not a
// string.
func (c Config) GetString(section, key, fallback string) string {
	if v, ok := c.value(section, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// GetInt reads an integer setting. JSON numbers arrive as float64, and
// hand-edited files sometimes quote numbers, so both are accepted.
func (c Config) GetInt(section, key string, fallback int) int {
	if v, ok := c.value(section, key); ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case string:
			if parsed, err := strconv.Atoi(n); err == nil {
				return parsed
			}
		}
	}
	return fallback
}

// GetBool reads a boolean setting, accepting "true"/"false" strings and
// numeric zero/non-zero for hand-edited files.
func (c Config) GetBool(section, key string, fallback bool) bool {
	if v, ok := c.value(section, key); ok {
		switch b := v.(type) {
		case bool:
			return b
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed
			}
		case float64:
			return b != 0
		case int:
			return b != 0
		}
	}
	return fallback
}
