// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fedigraph/fedigraph/internal/graph"
)

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		handle    string
		want      string
	}{
		{"local account", "42", "alice", "42"},
		{"remote account", "42", "alice@example.social", "42@example.social"},
		{"id with whitespace", " 42 ", "alice", "42"},
		{"remote id with whitespace", " 42 ", "alice@example.social", "42@example.social"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, graph.EncodeKey(tt.accountID, tt.handle))
		})
	}
}

func TestIsRemoteKey(t *testing.T) {
	assert.False(t, graph.IsRemoteKey("42"))
	assert.True(t, graph.IsRemoteKey("42@example.social"))
}

func TestSameIDDifferentInstancesDoNotCollide(t *testing.T) {
	a := graph.EncodeKey("42", "alice@one.example")
	b := graph.EncodeKey("42", "bob@two.example")
	c := graph.EncodeKey("42", "carol")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}
