// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(env *env) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check EC_TYPE",
		Short: "check a codec family for availability",
		Long:  "Exits with 0 when the family is available, 1 when it is known but missing and 2 when it is unknown.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			state := availability(name)
			if !quiet {
				printf(cmd.OutOrStdout(), "%s is %s\n", name, state)
			}

			switch state {
			case "available":
				return nil
			case "missing":
				return exitWith(1)
			default:
				return exitWith(2)
			}
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only set the exit status")
	return cmd
}
