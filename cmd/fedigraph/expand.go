// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

// nodeView is the YAML shape printed by expand and neighbors.
type nodeView struct {
	Key        string   `yaml:"key"`
	ExternalID string   `yaml:"external_id"`
	Expanded   bool     `yaml:"expanded"`
	Neighbors  []string `yaml:"neighbors"`
}

func newExpandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <handle>",
		Short: "Resolve a handle and materialise its neighborhood",
		Long:  "Resolve the handle against the instance directory, create the graph node if needed, expand its neighbor relationships (at most once), and print the result.",
		Args:  cobra.ExactArgs(1),
		RunE:  runExpand,
	}
}

func runExpand(cmd *cobra.Command, args []string) error {
	handle := args[0]

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
	node, err := app.Graph.NodeForHandle(ctx, handle)
	if err != nil {
		if fgerr.IsNotFound(err) {
			return fgerr.Errorf(fgerr.CodeCLIInputInvalid, "%q does not resolve to a unique account", handle)
		}
		return err
	}

	neighbors, err := app.Graph.Neighbors(ctx, node.Key)
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

func printNodeView(cmd *cobra.Command, view nodeView) error {
	out, err := yaml.Marshal(view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
	return err
}
