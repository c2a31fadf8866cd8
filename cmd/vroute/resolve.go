package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/pkg/location"
)

func resolveCmd() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "resolve PATH",
		Short: "Resolve a raw path against a base mount point",
		Long: `Project a raw host path into the value observers would see under
--base. Paths outside the mount point come back with the ~ escape
marker.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(location.Resolve(args[0], base))
			return nil
		},
	}

	cmd.Flags().StringVarP(&base, "base", "b", "", "Base path the application mounts under")

	return cmd
}
