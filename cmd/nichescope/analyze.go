package main

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nichescope/internal/cli"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(f *rootFlags) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "analyze <topic>",
		Short: "Run one market analysis and print the niches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			c, err := wire(ctx, cfg)
			if err != nil {
				if c != nil {
					c.close()
				}
				return err
			}
			defer c.close()

			res, err := c.deps.Analyzer.Analyze(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Results for %q:\n", res.Topic)
			cli.PrintNiches(out, res.Niches, nil)

			if export {
				loc, err := c.exporter.Export(ctx, c.deps.Sink, res.Topic, res.Niches)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "Report written to", loc)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "Also export the niches as a PDF report")
	return cmd
}
