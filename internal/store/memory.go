// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

func init() {
	RegisterBackend("memory", func(Options) (GraphStore, error) {
		return NewMemoryStore(), nil
	})
}

// MemoryStore is an ephemeral GraphStore for tests and one-shot runs.
// It shares the contract of the durable backends but survives nothing.
type MemoryStore struct {
	mu    sync.Mutex
	nodes map[string]*Node
	// adjacency, mirrored on both endpoints so Neighbors is a map read.
	edges map[string]map[string]struct{}
}

// NewMemoryStore creates an empty in-memory graph store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes: map[string]*Node{},
		edges: map[string]map[string]struct{}{},
	}
}

var _ GraphStore = (*MemoryStore)(nil)

func (m *MemoryStore) GetOrCreate(_ context.Context, key, externalID string) (*Node, error) {
	if key == "" {
		return nil, fmt.Errorf("node key must not be empty: %w", ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if n, ok := m.nodes[key]; ok {
		return cloneNode(n), nil
	}

	n := &Node{
		Key:        key,
		ExternalID: externalID,
		CreatedAt:  time.Now().UTC(),
	}
	m.nodes[key] = n
	return cloneNode(n), nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (*Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[key]
	if !ok {
		return nil, fmt.Errorf("node %s: %w", key, ErrNotFound)
	}
	return cloneNode(n), nil
}

func (m *MemoryStore) MarkExpanded(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[key]
	if !ok {
		return fmt.Errorf("node %s: %w", key, ErrNotFound)
	}
	n.Expanded = true
	return nil
}

func (m *MemoryStore) AddEdge(_ context.Context, a, b string) error {
	if a == b {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nodes[a]; !ok {
		return fmt.Errorf("edge endpoint %s: %w", a, ErrNotFound)
	}
	if _, ok := m.nodes[b]; !ok {
		return fmt.Errorf("edge endpoint %s: %w", b, ErrNotFound)
	}

	m.link(a, b)
	m.link(b, a)
	return nil
}

func (m *MemoryStore) link(from, to string) {
	adj, ok := m.edges[from]
	if !ok {
		adj = map[string]struct{}{}
		m.edges[from] = adj
	}
	adj[to] = struct{}{}
}

func (m *MemoryStore) Neighbors(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nodes[key]; !ok {
		return nil, fmt.Errorf("node %s: %w", key, ErrNotFound)
	}

	keys := make([]string, 0, len(m.edges[key]))
	for k := range m.edges[key] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Close() error { return nil }

func cloneNode(n *Node) *Node {
	c := *n
	return &c
}
