// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedigraph/fedigraph/internal/store"
	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

func TestNewMemoryBackend(t *testing.T) {
	s, err := store.New(store.Options{Backend: "memory"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.IsType(t, &store.MemoryStore{}, s)
}

func TestNewUnsupportedBackend(t *testing.T) {
	_, err := store.New(store.Options{Backend: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage backend")
	assert.True(t, fgerr.HasCode(err, fgerr.CodeStoreBackendUnsupported))
}

func TestNewDefaultsToSQLite(t *testing.T) {
	// The sqlite backend package is not imported here, so defaulting must
	// fail with the unsupported-backend error rather than panic.
	_, err := store.New(store.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sqlite"`)
}
