// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package graph

import (
	"context"

	"github.com/fedigraph/fedigraph/internal/directory"
	"github.com/fedigraph/fedigraph/internal/store"
)

// Graph is the public entry point composing resolver, key encoder, store
// and expander. Every node it hands back has its immediate neighborhood
// materialised (lazy-on-read: expansion happens at first materialisation,
// never eagerly).
type Graph struct {
	store    store.GraphStore
	resolver *Resolver
	expander *Expander
}

// New wires a Graph over the given store and directory client.
func New(st store.GraphStore, dir directory.Client, cfg ExpandConfig) *Graph {
	return &Graph{
		store:    st,
		resolver: NewResolver(dir),
		expander: NewExpander(st, dir, cfg),
	}
}

// NodeForHandle resolves a handle to its graph node, creating and
// expanding it as needed. A handle that resolves to no unique account
// returns a not-found error (see Resolver.Resolve).
func (g *Graph) NodeForHandle(ctx context.Context, handle string) (*store.Node, error) {
	account, err := g.resolver.Resolve(ctx, handle)
	if err != nil {
		return nil, err
	}

	key := EncodeKey(account.ID, account.Acct)
	node, err := g.store.GetOrCreate(ctx, key, account.Acct)
	if err != nil {
		return nil, err
	}

	if err := g.expander.Expand(ctx, node); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the post-expansion flag.
	return g.store.Get(ctx, key)
}

// Node returns the stored node for a key without triggering expansion.
func (g *Graph) Node(ctx context.Context, key string) (*store.Node, error) {
	return g.store.Get(ctx, key)
}

// Neighbors returns the stored neighbor keys of a node without
// triggering expansion.
func (g *Graph) Neighbors(ctx context.Context, key string) ([]string, error) {
	return g.store.Neighbors(ctx, key)
}
