// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

// Package mastodon implements directory.Client against the Mastodon REST
// API of a single instance.
package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fedigraph/fedigraph/internal/directory"
	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

// searchPageLimit is the maximum the v2 search endpoint accepts.
const searchPageLimit = 40

// relationPageLimit is the maximum page size for follower/following lists.
const relationPageLimit = 80

// Config holds Mastodon client configuration.
type Config struct {
	// BaseURL is the instance root, e.g. "https://mastodon.social".
	BaseURL string
	// AccessToken is an OAuth bearer token for the instance. Optional for
	// public endpoints, but unauthenticated clients hit much lower rate
	// limits.
	AccessToken string
	// HTTPClient overrides the default client, useful for tests.
	HTTPClient *http.Client
}

// Client implements directory.Client for one Mastodon instance.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ directory.Client = (*Client)(nil)

// New creates a Mastodon directory client. Returns an error if the base
// URL is missing or unparsable.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("mastodon: missing instance base URL")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("mastodon: invalid base URL %q: %w", cfg.BaseURL, err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.AccessToken,
		http:    hc,
	}, nil
}

// apiAccount is the wire shape of a Mastodon account, reduced to the
// fields the graph core consumes.
type apiAccount struct {
	ID          string `json:"id"`
	Acct        string `json:"acct"`
	DisplayName string `json:"display_name"`
}

func (a apiAccount) toDirectory() directory.Account {
	return directory.Account{
		ID:          a.ID,
		Acct:        a.Acct,
		DisplayName: a.DisplayName,
	}
}

// SearchAccounts queries /api/v2/search with type=accounts. A single page
// is returned; the search endpoint is a disambiguation aid, not a crawl
// surface.
func (c *Client) SearchAccounts(ctx context.Context, query string) ([]directory.Account, error) {
	u := fmt.Sprintf("%s/api/v2/search?q=%s&type=accounts&limit=%d",
		c.baseURL, url.QueryEscape(query), searchPageLimit)

	body, _, err := c.get(ctx, u)
	if err != nil {
		return nil, fgerr.Wrap(err, fgerr.CodeDirectorySearchFailure, "account search failed",
			fgerr.Field("query", query))
	}

	var payload struct {
		Accounts []apiAccount `json:"accounts"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fgerr.Errorf(fgerr.CodeDirectoryResponseInvalid, "decoding search response: %w", err)
	}

	accounts := make([]directory.Account, 0, len(payload.Accounts))
	for _, a := range payload.Accounts {
		accounts = append(accounts, a.toDirectory())
	}
	return accounts, nil
}

// Followers returns every follower of the account, walking Link-header
// pagination to exhaustion.
func (c *Client) Followers(ctx context.Context, accountID string) ([]directory.Account, error) {
	return c.relationPages(ctx, accountID, "followers")
}

// Following returns every account the given account follows.
func (c *Client) Following(ctx context.Context, accountID string) ([]directory.Account, error) {
	return c.relationPages(ctx, accountID, "following")
}

// relationPages fetches /api/v1/accounts/{id}/{relation} and follows the
// rel="next" Link header until the server stops paging. Well-connected
// accounts can take many requests to exhaust.
func (c *Client) relationPages(ctx context.Context, accountID, relation string) ([]directory.Account, error) {
	next := fmt.Sprintf("%s/api/v1/accounts/%s/%s?limit=%d",
		c.baseURL, url.PathEscape(accountID), relation, relationPageLimit)

	var accounts []directory.Account
	for next != "" {
		body, header, err := c.get(ctx, next)
		if err != nil {
			return nil, fgerr.Wrap(err, fgerr.CodeDirectoryRelationsFailure, "fetching "+relation,
				fgerr.FieldAccountID(accountID))
		}

		var page []apiAccount
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fgerr.Errorf(fgerr.CodeDirectoryResponseInvalid, "decoding %s page: %w", relation, err)
		}
		for _, a := range page {
			accounts = append(accounts, a.toDirectory())
		}

		next = nextLink(header.Get("Link"))
	}
	return accounts, nil
}

// get performs an authenticated GET and returns the body and headers.
// A 404 maps to directory.ErrAccountGone so callers can classify it.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("requesting %s: %w", rawURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck // error on read-path close is not actionable

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response from %s: %w", rawURL, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, nil, fmt.Errorf("%s: %w", rawURL, directory.ErrAccountGone)
	case resp.StatusCode != http.StatusOK:
		return nil, nil, fmt.Errorf("%s: unexpected status %d", rawURL, resp.StatusCode)
	}

	return body, resp.Header, nil
}

// nextLink extracts the rel="next" target from an RFC 5988 Link header.
// Returns the empty string when there is no next page.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(segments[0]), "<>")
		for _, param := range segments[1:] {
			if strings.EqualFold(strings.TrimSpace(param), `rel="next"`) {
				return target
			}
		}
	}
	return ""
}
