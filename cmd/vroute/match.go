package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/pkg/location"
	"github.com/vango-dev/vroute/pkg/pattern"
)

func matchCmd() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "match PATTERN PATH",
		Short: "Match a pattern against a path",
		Long: `Compile PATTERN and match it against PATH, printing any captured
parameters. With --base, PATH is resolved against the base mount point
first, the way a location store would project it.

Exits non-zero when the path does not match.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pat, path := args[0], args[1]
			if base != "" {
				path = location.Resolve(path, base)
			}

			res, err := pattern.Match(pat, path)
			if err != nil {
				return err
			}
			if !res.Matched {
				return fmt.Errorf("%s does not match %s", path, pat)
			}

			success("%s matches %s", path, pat)
			names := make([]string, 0, len(res.Params))
			for name := range res.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %-12s %s\n", name, res.Params[name])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&base, "base", "b", "", "Base path to resolve PATH against first")

	return cmd
}
