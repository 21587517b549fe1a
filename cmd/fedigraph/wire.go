// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package main

import (
	"github.com/spf13/viper"

	"github.com/fedigraph/fedigraph/internal/config"
	"github.com/fedigraph/fedigraph/internal/directory/mastodon"
	"github.com/fedigraph/fedigraph/internal/graph"
	"github.com/fedigraph/fedigraph/internal/store"
	_ "github.com/fedigraph/fedigraph/internal/store/sqlite" // register sqlite backend
	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

// App holds the wired subsystems behind every subcommand.
type App struct {
	Config *config.Config
	Store  store.GraphStore
	Graph  *graph.Graph
}

// Close releases the app's persistent resources.
func (a *App) Close() error {
	return a.Store.Close()
}

// loadConfig resolves the effective configuration from the global Viper
// state prepared by initViper.
func loadConfig() (*config.Config, error) {
	return config.FromViper(viper.GetViper())
}

// wireApp builds the store, directory client, and graph from config.
func wireApp(cfg *config.Config) (*App, error) {
	st, err := store.New(store.Options{
		Backend: cfg.Storage.Backend,
		Path:    cfg.Storage.Path,
		Wipe:    cfg.Storage.Wipe,
	})
	if err != nil {
		return nil, fgerr.Errorf(fgerr.CodeCLISetupFailure, "creating graph store: %w", err)
	}

	dir, err := mastodon.New(mastodon.Config{
		BaseURL:     cfg.Instance.URL,
		AccessToken: cfg.Instance.AccessToken,
	})
	if err != nil {
		_ = st.Close()
		return nil, fgerr.Errorf(fgerr.CodeCLISetupFailure, "creating directory client: %w", err)
	}

	g := graph.New(st, dir, graph.ExpandConfig{
		Followers: cfg.Expansion.Followers,
		Following: cfg.Expansion.Following,
		Strict:    cfg.Expansion.Strict,
	})

	return &App{Config: cfg, Store: st, Graph: g}, nil
}
