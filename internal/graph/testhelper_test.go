// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package graph_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fedigraph/fedigraph/internal/directory"
)

// fakeDirectory implements directory.Client from canned data and counts
// calls so tests can assert on network usage. delay stretches every
// relationship fetch so concurrent callers overlap.
type fakeDirectory struct {
	searchResults map[string][]directory.Account
	followers     map[string][]directory.Account
	following     map[string][]directory.Account
	gone          map[string]bool
	delay         time.Duration

	mu             sync.Mutex
	searchCalls    int
	relationsCalls int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		searchResults: map[string][]directory.Account{},
		followers:     map[string][]directory.Account{},
		following:     map[string][]directory.Account{},
		gone:          map[string]bool{},
	}
}

func (f *fakeDirectory) SearchAccounts(_ context.Context, query string) ([]directory.Account, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()
	return f.searchResults[query], nil
}

func (f *fakeDirectory) Followers(_ context.Context, accountID string) ([]directory.Account, error) {
	return f.relations(f.followers, accountID)
}

func (f *fakeDirectory) Following(_ context.Context, accountID string) ([]directory.Account, error) {
	return f.relations(f.following, accountID)
}

func (f *fakeDirectory) relations(lists map[string][]directory.Account, accountID string) ([]directory.Account, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.relationsCalls++
	f.mu.Unlock()
	if f.gone[accountID] {
		return nil, fmt.Errorf("account %s: %w", accountID, directory.ErrAccountGone)
	}
	return lists[accountID], nil
}
