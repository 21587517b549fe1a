// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package store

import "context"

// GraphStore is the durable node/edge mapping the expansion engine writes to.
// It is the single source of truth for whether a node has been expanded.
type GraphStore interface {
	// GetOrCreate returns the node for key, creating it unexpanded with the
	// given external id if absent. Creation is idempotent: repeated calls
	// with the same key return the stored node unchanged.
	GetOrCreate(ctx context.Context, key, externalID string) (*Node, error)

	// Get returns the node for key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Node, error)

	// MarkExpanded sets the expanded flag for key. No-op if already set.
	MarkExpanded(ctx context.Context, key string) error

	// AddEdge records the unordered pair (a, b). No-op if the edge exists
	// or a == b. Both nodes must already exist.
	AddEdge(ctx context.Context, a, b string) error

	// Neighbors returns the keys connected to key by a stored edge.
	Neighbors(ctx context.Context, key string) ([]string, error)

	Close() error
}
