// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package sqlite

import (
	"github.com/fedigraph/fedigraph/internal/store"
)

const defaultDBPath = "fedigraph.db"

func init() {
	store.RegisterBackend("sqlite", func(opts store.Options) (store.GraphStore, error) {
		path := opts.Path
		if path == "" {
			path = defaultDBPath
		}
		return New(path, opts.Wipe)
	})
}
