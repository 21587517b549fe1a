// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package sqlite_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testDBPath returns a temp SQLite database path.
func testDBPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "fedigraph-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "graph.db")
}
