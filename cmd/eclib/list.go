// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"github.com/spf13/cobra"
)

func newListCmd(env *env) *cobra.Command {
	var onlyAvailable bool

	cmd := &cobra.Command{
		Use:   "list [EC_TYPE...]",
		Short: "list availability of codec families",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := expandTypes(args)
			w := width(names)
			out := cmd.OutOrStdout()

			found := 0
			for _, name := range names {
				state := availability(name)
				if state == "available" {
					found++
				}
				switch {
				case onlyAvailable && state == "available":
					printf(out, "%s\n", name)
				case !onlyAvailable:
					printf(out, "%-*s %s\n", w, name, state)
				}
			}

			if found == 0 {
				return exitWith(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&onlyAvailable, "available", "a", false, "display only available families")
	return cmd
}
