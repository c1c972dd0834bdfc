package main

import (
	"github.com/dmitrijs2005/nichescope/internal/buildinfo"
	"github.com/dmitrijs2005/nichescope/internal/config"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath  string
	storeDriver string
	storeDSN    string
	logFormat   string
	model       string
	reportDir   string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:           "nichescope",
		Short:         "Discover under-served micro-niches for a topic",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	pf.StringVar(&f.storeDriver, "store-driver", "", "Key-value backend: memory, sqlite or postgres")
	pf.StringVar(&f.storeDSN, "store-dsn", "", "Backend DSN (SQLite file or PostgreSQL URL)")
	pf.StringVar(&f.logFormat, "log-format", "", "Log format: text, json or zap")
	pf.StringVar(&f.model, "model", "", "Completion model identifier")
	pf.StringVar(&f.reportDir, "report-dir", "", "Directory for exported reports")

	root.AddCommand(
		&cobra.Command{
			Use:   "repl",
			Short: "Start the interactive shell (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runREPL(cmd, f)
			},
		},
		newAnalyzeCmd(f),
		newDataCmd(f),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
	)

	return root
}

// loadConfig reads defaults, the config file and the environment, then
// applies the flags the user set explicitly.
func loadConfig(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overlay := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	overlay("store-driver", &cfg.StoreDriver, f.storeDriver)
	overlay("store-dsn", &cfg.StoreDSN, f.storeDSN)
	overlay("log-format", &cfg.LogFormat, f.logFormat)
	overlay("model", &cfg.Model, f.model)
	overlay("report-dir", &cfg.ReportDir, f.reportDir)

	return cfg, nil
}
