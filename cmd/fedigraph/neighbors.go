// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fedigraph/fedigraph/internal/store"
	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

func newNeighborsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors <key>",
		Short: "Print the stored neighbors of a node",
		Long:  "Print the neighbors already persisted for a node key. Performs no network calls and never triggers expansion.",
		Args:  cobra.ExactArgs(1),
		RunE:  runNeighbors,
	}
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	key := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := wireApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close() //nolint:errcheck

	ctx := cmd.Context()
	node, err := app.Graph.Node(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fgerr.Errorf(fgerr.CodeCLIInputInvalid, "node %q is not in the graph", key)
		}
		return err
	}

	neighbors, err := app.Graph.Neighbors(ctx, key)
	if err != nil {
		return err
	}

	return printNodeView(cmd, nodeView{
		Key:        node.Key,
		ExternalID: node.ExternalID,
		Expanded:   node.Expanded,
		Neighbors:  neighbors,
	})
}
