// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: registry/manifest.go
// Summary: Defines applet manifest structure for the registry system.
// Usage: External tools provide a manifest.json file describing their metadata.

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppType specifies how the applet is launched.
type AppType string

const (
	// AppTypeBuiltIn uses a factory compiled into the binary.
	AppTypeBuiltIn AppType = "builtin"

	// AppTypeCommand launches an external command, detached from the panel.
	// Example: a manifest wrapping xdg-open or an external configuration tool.
	AppTypeCommand AppType = "command"
)

// Manifest describes an applet's metadata and how to launch it.
type Manifest struct {
	// Name is the unique identifier for this applet (e.g. "clock").
	Name string `json:"name"`

	// DisplayName is the human-readable name shown in the hub.
	DisplayName string `json:"displayName"`

	// Description provides a brief explanation of what the applet does.
	Description string `json:"description"`

	// Version follows semantic versioning (e.g. "1.0.0").
	Version string `json:"version"`

	// Type specifies how to launch this applet. Defaults to "command" for
	// manifests found on disk; built-ins are registered in code.
	Type AppType `json:"type,omitempty"`

	// Command is the command line run for command applets.
	Command string `json:"command,omitempty"`

	// Args are additional arguments appended to Command.
	Args []string `json:"args,omitempty"`

	// Category groups applets in the hub (e.g. "display", "input", "session").
	Category string `json:"category"`

	// Author is the creator's name or organization.
	Author string `json:"author,omitempty"`

	// Tags are searchable keywords.
	Tags []string `json:"tags,omitempty"`
}

// LoadManifest reads and parses a manifest.json file from the given directory.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("manifest missing required field: name")
	}
	if m.DisplayName == "" {
		return nil, fmt.Errorf("manifest missing required field: displayName")
	}
	if m.Type == "" {
		m.Type = AppTypeCommand
	}

	return &m, nil
}

// Validate checks that the manifest is well-formed.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if m.DisplayName == "" {
		return fmt.Errorf("displayName cannot be empty")
	}

	switch m.Type {
	case AppTypeCommand:
		if m.Command == "" {
			return fmt.Errorf("command applet must specify 'command' field")
		}

	case AppTypeBuiltIn:
		// Built-ins are registered in code and carry their own factory.

	default:
		return fmt.Errorf("unknown applet type: %s", m.Type)
	}

	return nil
}

// CommandLine returns the full command line for a command applet.
func (m *Manifest) CommandLine() string {
	line := m.Command
	for _, arg := range m.Args {
		line += " " + arg
	}
	return line
}
