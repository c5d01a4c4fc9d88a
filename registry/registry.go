// Copyright © 2025 IceWMCP contributors
// SPDX-License-Identifier: GPL-2.0-or-later
//
// File: registry/registry.go
// Summary: Implements the applet registry for discovering and launching tools.
// Usage: The hub scans external manifests from ~/.config/icewmcp/apps/

package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/DeltaResero/IceWMCP/panel"
)

// AppFactory creates a new applet instance bound to the given host.
type AppFactory func(host panel.Host) panel.App

// AppEntry represents a discovered applet with its metadata and factory.
type AppEntry struct {
	Manifest *Manifest
	Dir      string
	Factory  AppFactory
}

// Registry manages the collection of available applets.
type Registry struct {
	mu      sync.RWMutex
	apps    map[string]*AppEntry // name -> entry (external command applets)
	builtIn map[string]*AppEntry // name -> entry (built-in applets)
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		apps:    make(map[string]*AppEntry),
		builtIn: make(map[string]*AppEntry),
	}
}

// RegisterBuiltIn registers an applet compiled into the binary. Built-ins have
// priority over external applets with the same name.
func (r *Registry) RegisterBuiltIn(manifest *Manifest, factory AppFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if manifest.Type == "" {
		manifest.Type = AppTypeBuiltIn
	}
	r.builtIn[manifest.Name] = &AppEntry{
		Manifest: manifest,
		Factory:  factory,
	}
	log.Debug().Str("app", manifest.Name).Msg("Registry: registered built-in applet")
}

// Scan searches for applets in the given directory. Each subdirectory should
// contain a manifest.json file. External applets are replaced on every scan;
// built-ins are kept.
func (r *Registry) Scan(baseDir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.apps = make(map[string]*AppEntry)

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		log.Debug().Str("dir", baseDir).Msg("Registry: applet directory does not exist")
		return nil
	}

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return fmt.Errorf("read applet directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		appDir := filepath.Join(baseDir, entry.Name())
		if err := r.loadApp(appDir); err != nil {
			log.Warn().Err(err).Str("dir", appDir).Msg("Registry: failed to load applet")
			// keep loading the others
		}
	}

	log.Info().Int("external", len(r.apps)).Int("builtin", len(r.builtIn)).Msg("Registry: scan complete")
	return nil
}

// loadApp attempts to load a single applet from a directory.
func (r *Registry) loadApp(dir string) error {
	manifest, err := LoadManifest(dir)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("validate manifest: %w", err)
	}
	if manifest.Type == AppTypeBuiltIn {
		return fmt.Errorf("on-disk manifests cannot declare built-in applets")
	}

	r.apps[manifest.Name] = &AppEntry{
		Manifest: manifest,
		Dir:      dir,
	}

	log.Debug().Str("app", manifest.Name).Str("dir", dir).Msg("Registry: loaded command applet")
	return nil
}

// Get retrieves an applet entry by name. Returns nil if it doesn't exist.
func (r *Registry) Get(name string) *AppEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.builtIn[name]; ok {
		return entry
	}
	return r.apps[name]
}

// List returns all available applets sorted by display name. An external
// applet whose name collides with a built-in is shadowed, matching Get.
func (r *Registry) List() []*AppEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*AppEntry
	for _, entry := range r.builtIn {
		entries = append(entries, entry)
	}
	for name, entry := range r.apps {
		if _, ok := r.builtIn[name]; ok {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Manifest.DisplayName < entries[j].Manifest.DisplayName
	})
	return entries
}

// ListByCategory returns applets grouped by category, sorted within each
// group. Applets without a category land in "other".
func (r *Registry) ListByCategory() map[string][]*AppEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make(map[string][]*AppEntry)
	add := func(entry *AppEntry) {
		category := entry.Manifest.Category
		if category == "" {
			category = "other"
		}
		categories[category] = append(categories[category], entry)
	}
	for _, entry := range r.builtIn {
		add(entry)
	}
	for name, entry := range r.apps {
		if _, ok := r.builtIn[name]; ok {
			continue
		}
		add(entry)
	}

	for _, entries := range categories {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Manifest.DisplayName < entries[j].Manifest.DisplayName
		})
	}
	return categories
}

// CreateApp creates a new instance of a built-in applet bound to host.
// Returns nil for unknown names and for command applets, which are launched
// externally instead of instantiated.
func (r *Registry) CreateApp(name string, host panel.Host) panel.App {
	entry := r.Get(name)
	if entry == nil {
		log.Warn().Str("app", name).Msg("Registry: applet not found")
		return nil
	}
	if entry.Factory == nil {
		return nil
	}
	return entry.Factory(host)
}

// Count returns the number of distinct applet names.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.builtIn)
	for name := range r.apps {
		if _, ok := r.builtIn[name]; !ok {
			n++
		}
	}
	return n
}
