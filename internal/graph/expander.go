// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package graph

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/fedigraph/fedigraph/internal/directory"
	"github.com/fedigraph/fedigraph/internal/store"
	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

// ExpandConfig controls which relationship lists feed expansion and how
// directory not-found conditions are handled.
type ExpandConfig struct {
	// Followers treats follower accounts as connections. Off by default:
	// follower lists of well-connected accounts are where API rate limits
	// hurt most.
	Followers bool
	// Following treats followed accounts as connections. The default.
	Following bool
	// Strict propagates a directory account-gone error to the caller and
	// leaves the node unexpanded for a later retry. When off, the error
	// is logged and the vanished list counts as empty.
	Strict bool
}

// DefaultExpandConfig is following-only with errors swallowed.
func DefaultExpandConfig() ExpandConfig {
	return ExpandConfig{Following: true}
}

// Expander materialises a node's direct neighborhood at most once.
//
// The store's expanded flag is the source of truth: once set it is never
// recomputed, so however often the graph is queried each account costs a
// bounded number of directory calls. Concurrent expansions of the same
// key are collapsed so only one performs network work.
type Expander struct {
	store store.GraphStore
	dir   directory.Client
	cfg   ExpandConfig
	group singleflight.Group
}

// NewExpander creates an Expander over the given store and directory.
func NewExpander(st store.GraphStore, dir directory.Client, cfg ExpandConfig) *Expander {
	return &Expander{store: st, dir: dir, cfg: cfg}
}

// Expand fetches and records the node's neighbors unless that already
// happened. Partial failure (some edges written, expanded unset) is the
// safe retryable state: edges are idempotent and a retry re-fetches.
func (e *Expander) Expand(ctx context.Context, node *store.Node) error {
	if node.Expanded {
		return nil
	}

	_, err, _ := e.group.Do(node.Key, func() (any, error) {
		return nil, e.expand(ctx, node.Key)
	})
	return err
}

func (e *Expander) expand(ctx context.Context, key string) error {
	// Re-read the flag inside the flight: a caller queued behind the
	// winning expansion must become a no-op, not a second crawl.
	node, err := e.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if node.Expanded {
		return nil
	}

	// Remote accounts are leaves: the local instance's directory cannot
	// enumerate their relationships. Marking them expanded keeps later
	// lookups from re-considering them.
	if node.Remote() {
		return e.store.MarkExpanded(ctx, key)
	}

	accounts, err := e.neighborAccounts(ctx, key)
	if err != nil {
		return err
	}

	for _, account := range accounts {
		neighborKey := EncodeKey(account.ID, account.Acct)
		if _, err := e.store.GetOrCreate(ctx, neighborKey, account.Acct); err != nil {
			return err
		}
		if err := e.store.AddEdge(ctx, key, neighborKey); err != nil {
			return err
		}
	}

	return e.store.MarkExpanded(ctx, key)
}

// neighborAccounts concatenates the configured relationship lists.
// Duplicates across the two lists are left in place; edge insertion is
// idempotent so deduplicating here would buy nothing.
func (e *Expander) neighborAccounts(ctx context.Context, accountID string) ([]directory.Account, error) {
	var accounts []directory.Account

	if e.cfg.Followers {
		followers, err := e.loadList(ctx, accountID, "followers", e.dir.Followers)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, followers...)
	}

	if e.cfg.Following {
		following, err := e.loadList(ctx, accountID, "following", e.dir.Following)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, following...)
	}

	return accounts, nil
}

// loadList fetches one relationship list, applying the account-gone
// policy: log and treat as empty, or in strict mode surface the error.
func (e *Expander) loadList(
	ctx context.Context,
	accountID, relation string,
	fetch func(context.Context, string) ([]directory.Account, error),
) ([]directory.Account, error) {
	accounts, err := fetch(ctx, accountID)
	if err == nil {
		return accounts, nil
	}

	if errors.Is(err, directory.ErrAccountGone) {
		slog.Warn("account vanished during expansion",
			"account_id", accountID,
			"relation", relation,
			"error", err,
		)
		if !e.cfg.Strict {
			return nil, nil
		}
		return nil, fgerr.Wrap(err, fgerr.CodeDirectoryAccountGone, "account gone",
			fgerr.FieldAccountID(accountID))
	}

	return nil, fgerr.Wrap(err, fgerr.CodeGraphExpandFailure, "fetching "+relation,
		fgerr.FieldAccountID(accountID))
}
