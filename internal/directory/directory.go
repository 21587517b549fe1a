// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

// Package directory defines the account-directory contract the graph core
// depends on. The engine only ever talks to the directory of the one
// instance it is bound to; remote accounts are reachable by reference but
// their relationships cannot be enumerated here.
package directory

import (
	"context"
	"errors"
)

// Account is the minimal account record the graph core needs.
//
// Acct is the webfinger-style handle: bare username for accounts on the
// local instance, username@instance for remote accounts.
type Account struct {
	ID          string
	Acct        string
	DisplayName string
}

// Client enumerates accounts and relationships on one instance.
//
// Followers and Following return ErrAccountGone (wrapped) when the
// directory reports the account no longer exists; callers decide whether
// that aborts or is treated as an empty list.
type Client interface {
	// SearchAccounts runs a free-text account search. Results are fuzzy:
	// substring and partial matches are expected, exact matching is the
	// caller's job.
	SearchAccounts(ctx context.Context, query string) ([]Account, error)

	// Followers returns all accounts following the given account,
	// following pagination to exhaustion.
	Followers(ctx context.Context, accountID string) ([]Account, error)

	// Following returns all accounts the given account follows,
	// following pagination to exhaustion.
	Following(ctx context.Context, accountID string) ([]Account, error)
}

// ErrAccountGone indicates the directory no longer knows the account,
// typically because it was deleted or suspended server-side.
var ErrAccountGone = errors.New("account gone")
