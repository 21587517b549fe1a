// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package store

import (
	"sync"

	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

// Options selects and configures a storage backend.
type Options struct {
	Backend string // "memory" or "sqlite"; empty defaults to "sqlite".
	Path    string // database file path, ignored by the memory backend.
	Wipe    bool   // recreate the database if it already exists.
}

// Factory creates a GraphStore from backend options.
type Factory func(opts Options) (GraphStore, error)

var (
	factories   = map[string]Factory{}
	factoriesMu sync.RWMutex
)

// RegisterBackend registers a factory function for a named storage backend.
// Backend packages call this from init(). This function is goroutine-safe.
func RegisterBackend(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// resolveBackend returns the effective backend name, defaulting to "sqlite".
func resolveBackend(opts Options) string {
	if opts.Backend == "" {
		return "sqlite"
	}
	return opts.Backend
}

// New creates a GraphStore for the configured backend.
func New(opts Options) (GraphStore, error) {
	backend := resolveBackend(opts)

	factoriesMu.RLock()
	factory, ok := factories[backend]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fgerr.Errorf(fgerr.CodeStoreBackendUnsupported, "unsupported storage backend: %q", backend)
	}

	return factory(opts)
}
