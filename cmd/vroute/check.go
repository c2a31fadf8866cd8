package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/routefile"
	"github.com/vango-dev/vroute/pkg/pattern"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Compile-check a JSON route manifest",
		Long: `Load a route manifest and compile every declared pattern, reporting
syntax errors and duplicate patterns. Exits non-zero when any route
fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := routefile.Load(args[0])
			if err != nil {
				return err
			}

			compiler := pattern.NewCompiler()
			bad := 0
			for _, route := range file.Routes {
				label := route.Pattern
				if route.Name != "" {
					label = fmt.Sprintf("%s (%s)", route.Name, route.Pattern)
				}

				if _, err := compiler.Compile(route.Pattern); err != nil {
					fail("%s: %v", label, err)
					bad++
					continue
				}
				success("%s", label)
			}

			for _, dup := range file.Duplicates() {
				fail("duplicate pattern %q", dup)
				bad++
			}

			if bad > 0 {
				return fmt.Errorf("%d of %d routes failed", bad, len(file.Routes))
			}
			fmt.Printf("%d routes ok\n", len(file.Routes))
			return nil
		},
	}

	return cmd
}
