// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package graph_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedigraph/fedigraph/internal/directory"
	"github.com/fedigraph/fedigraph/internal/graph"
	"github.com/fedigraph/fedigraph/internal/store"
	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

func TestExpandCreatesNeighborsAndEdges(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	dir := newFakeDirectory()
	dir.following["1"] = []directory.Account{
		{ID: "2", Acct: "bob"},
		{ID: "3", Acct: "carol@other.example"},
	}

	node, err := st.GetOrCreate(ctx, "1", "alice")
	require.NoError(t, err)

	exp := graph.NewExpander(st, dir, graph.DefaultExpandConfig())
	require.NoError(t, exp.Expand(ctx, node))

	neighbors, err := st.Neighbors(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3@other.example"}, neighbors)

	// Discovered neighbors exist as unexpanded nodes.
	remote, err := st.Get(ctx, "3@other.example")
	require.NoError(t, err)
	assert.Equal(t, "carol@other.example", remote.ExternalID)
	assert.False(t, remote.Expanded)

	expanded, err := st.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, expanded.Expanded)
}

func TestExpandIsAtMostOnce(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	dir := newFakeDirectory()
	dir.following["1"] = []directory.Account{{ID: "2", Acct: "bob"}}

	node, err := st.GetOrCreate(ctx, "1", "alice")
	require.NoError(t, err)

	exp := graph.NewExpander(st, dir, graph.DefaultExpandConfig())
	require.NoError(t, exp.Expand(ctx, node))
	calls := dir.relationsCalls

	// Expanding again, via either the stale or the fresh node value,
	// performs zero network calls and changes no edges.
	require.NoError(t, exp.Expand(ctx, node))
	fresh, err := st.Get(ctx, "1")
	require.NoError(t, err)
	require.NoError(t, exp.Expand(ctx, fresh))

	assert.Equal(t, calls, dir.relationsCalls)

	neighbors, err := st.Neighbors(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, neighbors)
}

func TestExpandConcurrentCallersCollapse(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	dir := newFakeDirectory()
	dir.delay = 50 * time.Millisecond
	dir.following["1"] = []directory.Account{{ID: "2", Acct: "bob"}}

	node, err := st.GetOrCreate(ctx, "1", "alice")
	require.NoError(t, err)

	exp := graph.NewExpander(st, dir, graph.DefaultExpandConfig())

	// All callers observe expanded == false; exactly one may do the
	// network work, the rest either join its flight or no-op on the
	// re-read of the flag.
	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = exp.Expand(ctx, node)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, dir.relationsCalls, "concurrent expansions must collapse to one fetch")

	neighbors, err := st.Neighbors(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, neighbors)

	fresh, err := st.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, fresh.Expanded)
}

func TestExpandRemoteNodeIsLeaf(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	dir := newFakeDirectory()

	node, err := st.GetOrCreate(ctx, "42@other.example", "carol@other.example")
	require.NoError(t, err)

	exp := graph.NewExpander(st, dir, graph.DefaultExpandConfig())
	require.NoError(t, exp.Expand(ctx, node))

	assert.Zero(t, dir.relationsCalls, "remote expansion must not touch the network")

	fresh, err := st.Get(ctx, "42@other.example")
	require.NoError(t, err)
	assert.True(t, fresh.Expanded)

	neighbors, err := st.Neighbors(ctx, "42@other.example")
	require.NoError(t, err)
	assert.Empty(t, neighbors)
}

func TestExpandFollowersAndFollowingConcatenated(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	dir := newFakeDirectory()
	// bob appears in both lists; idempotent edge insertion absorbs the
	// duplicate without pre-deduplication.
	dir.followers["1"] = []directory.Account{{ID: "2", Acct: "bob"}}
	dir.following["1"] = []directory.Account{
		{ID: "2", Acct: "bob"},
		{ID: "3", Acct: "carol"},
	}

	node, err := st.GetOrCreate(ctx, "1", "alice")
	require.NoError(t, err)

	exp := graph.NewExpander(st, dir, graph.ExpandConfig{Followers: true, Following: true})
	require.NoError(t, exp.Expand(ctx, node))

	neighbors, err := st.Neighbors(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, neighbors)
	assert.Equal(t, 2, dir.relationsCalls)
}

func TestExpandSwallowsVanishedAccount(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	dir := newFakeDirectory()
	dir.gone["1"] = true

	node, err := st.GetOrCreate(ctx, "1", "alice")
	require.NoError(t, err)

	exp := graph.NewExpander(st, dir, graph.DefaultExpandConfig())
	require.NoError(t, exp.Expand(ctx, node))

	fresh, err := st.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, fresh.Expanded, "vanished account counts as zero neighbors")

	neighbors, err := st.Neighbors(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, neighbors)
}

func TestExpandStrictPropagatesVanishedAccount(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	dir := newFakeDirectory()
	dir.gone["1"] = true

	node, err := st.GetOrCreate(ctx, "1", "alice")
	require.NoError(t, err)

	exp := graph.NewExpander(st, dir, graph.ExpandConfig{Following: true, Strict: true})
	err = exp.Expand(ctx, node)
	require.Error(t, err)
	assert.ErrorIs(t, err, directory.ErrAccountGone)
	assert.True(t, fgerr.HasCode(err, fgerr.CodeDirectoryAccountGone))

	fresh, err := st.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, fresh.Expanded, "strict failure leaves the node retryable")
}
