// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package store

import (
	"strings"
	"time"
)

// Node is one discovered account in the social graph.
//
// Key is the canonical node identifier: the bare account id for accounts on
// the local instance, or id@instance for remote accounts. ExternalID is the
// human-readable handle recorded at creation time; it is display-only and
// never used to join edges.
type Node struct {
	Key        string
	ExternalID string
	Expanded   bool
	CreatedAt  time.Time
}

// Remote reports whether the node lives on a different instance than the
// one the directory client is bound to. Remote nodes are leaves: their
// neighbor lists cannot be enumerated through the local directory.
func (n *Node) Remote() bool {
	return strings.Contains(n.Key, "@")
}
