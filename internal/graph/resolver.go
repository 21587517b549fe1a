// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package graph

import (
	"context"
	"strings"

	"github.com/fedigraph/fedigraph/internal/directory"
	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

// Resolver maps human-supplied handles to directory accounts.
type Resolver struct {
	dir directory.Client
}

// NewResolver creates a Resolver backed by the given directory client.
func NewResolver(dir directory.Client) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve looks up the unique account for a handle.
//
// Directory search is fuzzy and handles are case-insensitive on the wire
// but stored with mixed case, so disambiguation prefers precision over
// recall: a single raw result wins, then a unique exact case-sensitive
// match, then a unique case-insensitive match. Anything still ambiguous
// or empty resolves to a not-found error rather than a guess.
func (r *Resolver) Resolve(ctx context.Context, handle string) (*directory.Account, error) {
	accounts, err := r.dir.SearchAccounts(ctx, handle)
	if err != nil {
		return nil, err
	}

	// Only one match?
	if len(accounts) == 1 {
		return &accounts[0], nil
	}

	// Multiple matches, is there an exact one?
	if a := uniqueMatch(accounts, func(a directory.Account) bool {
		return a.Acct == handle
	}); a != nil {
		return a, nil
	}

	// Still nothing - is there a case-insensitive exact match?
	if a := uniqueMatch(accounts, func(a directory.Account) bool {
		return strings.EqualFold(a.Acct, handle)
	}); a != nil {
		return a, nil
	}

	return nil, fgerr.New(
		fgerr.CodeGraphHandleNotFound,
		"handle does not resolve to a unique account",
		fgerr.FieldHandle(handle),
		fgerr.Field("candidates", len(accounts)),
	)
}

// uniqueMatch returns the single account satisfying keep, or nil when
// zero or several do.
func uniqueMatch(accounts []directory.Account, keep func(directory.Account) bool) *directory.Account {
	var found *directory.Account
	for i := range accounts {
		if !keep(accounts[i]) {
			continue
		}
		if found != nil {
			return nil
		}
		found = &accounts[i]
	}
	return found
}
