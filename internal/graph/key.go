// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

// Package graph implements the incremental social-graph engine: handle
// resolution, federated key encoding, at-most-once neighbor expansion, and
// the facade composing them over a GraphStore.
package graph

import "strings"

// EncodeKey derives the canonical node key for an account.
//
// Account ids are only unique within one instance, so accounts whose
// handle carries an instance part get the instance suffix appended to the
// id. Two accounts with the same numeric id on different instances then
// never collide, and key encoding needs no second directory lookup.
func EncodeKey(accountID, handle string) string {
	id := strings.TrimSpace(accountID)
	if at := strings.Index(handle, "@"); at != -1 {
		return id + handle[at:]
	}
	return id
}

// IsRemoteKey reports whether key encodes an account on another instance.
func IsRemoteKey(key string) bool {
	return strings.Contains(key, "@")
}
