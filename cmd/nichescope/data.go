package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/nichescope/internal/kv"
	"github.com/dmitrijs2005/nichescope/internal/logging"
	"github.com/spf13/cobra"
)

// newDataCmd inspects and wipes the keys NicheScope keeps in the store.
// Only keys under the configured prefix are listed or removed.
func newDataCmd(f *rootFlags) *cobra.Command {
	data := &cobra.Command{
		Use:   "data",
		Short: "Inspect or clear stored NicheScope data",
	}

	withStore := func(cmd *cobra.Command, fn func(s kv.Store) error) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd, f)
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.LogFormat, os.Stderr)
		if err != nil {
			return err
		}
		store, closeStore, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				log.Error(ctx, "failed to close store", "error", err)
			}
		}()
		return fn(store)
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove accounts, the session and every saved list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear data without --yes")
			}
			return withStore(cmd, func(s kv.Store) error {
				n, err := kv.Clear(cmd.Context(), s)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d keys.\n", n)
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "Confirm removal")

	data.AddCommand(
		&cobra.Command{
			Use:   "keys [prefix]",
			Short: "List stored keys",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				prefix := ""
				if len(args) == 1 {
					prefix = args[0]
				}
				return withStore(cmd, func(s kv.Store) error {
					keys, err := kv.Keys(cmd.Context(), s, prefix)
					if err != nil {
						return err
					}
					for _, k := range keys {
						fmt.Fprintln(cmd.OutOrStdout(), k)
					}
					return nil
				})
			},
		},
		clearCmd,
	)
	return data
}
