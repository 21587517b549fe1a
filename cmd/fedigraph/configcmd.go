// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after merging defaults, config file, environment, and flags. The access token is redacted.",
		RunE:  runConfig,
	}
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	view := *cfg
	if view.Instance.AccessToken != "" {
		view.Instance.AccessToken = "(redacted)"
	}

	out, err := yaml.Marshal(view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
	return err
}
