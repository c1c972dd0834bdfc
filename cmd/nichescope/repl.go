package main

import (
	"errors"

	"github.com/dmitrijs2005/nichescope/internal/cli"
	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/spf13/cobra"
)

func runREPL(cmd *cobra.Command, f *rootFlags) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	c, err := wire(ctx, cfg)
	if err != nil && !errors.Is(err, common.ErrConfiguration) {
		return err
	}
	defer c.close()
	if err != nil {
		c.log.Warn(ctx, "search is disabled", "error", err)
	}

	return cli.NewApp(c.deps, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}
