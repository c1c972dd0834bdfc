package main

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/nichescope/internal/accounts"
	"github.com/dmitrijs2005/nichescope/internal/analysis"
	"github.com/dmitrijs2005/nichescope/internal/cli"
	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/config"
	"github.com/dmitrijs2005/nichescope/internal/kv"
	"github.com/dmitrijs2005/nichescope/internal/logging"
	"github.com/dmitrijs2005/nichescope/internal/report"
	"github.com/dmitrijs2005/nichescope/internal/saved"
	"github.com/dmitrijs2005/nichescope/internal/session"
)

// newAnalyzer is a seam so tests can run without the Gemini API.
var newAnalyzer = func(ctx context.Context, cfg *config.Config, log logging.Logger) (cli.Analyzer, error) {
	c, err := analysis.NewGemini(ctx, analysis.OptionsFromConfig(cfg), log)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type components struct {
	log      logging.Logger
	deps     cli.Deps
	exporter *report.Exporter
	close    func()
}

// openStore opens the configured backend wrapped in the key prefix.
func openStore(ctx context.Context, cfg *config.Config, log logging.Logger) (kv.Store, func() error, error) {
	store, closeStore, err := kv.Open(ctx, cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return nil, nil, err
	}
	log.Info(ctx, "store opened", "driver", cfg.StoreDriver)
	return kv.Prefixed(store, cfg.KeyPrefix), closeStore, nil
}

// wire builds every component from cfg. A missing API key leaves
// deps.Analyzer nil; the returned error is then common.ErrConfiguration
// alongside valid components.
func wire(ctx context.Context, cfg *config.Config) (*components, error) {
	log, err := logging.New(cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(store)
	exporter := report.NewExporter(log)

	c := &components{
		log:      log,
		exporter: exporter,
		deps: cli.Deps{
			Accounts: accounts.NewStore(store, sessions),
			Sessions: sessions,
			Saved:    saved.NewStore(store),
			Exporter: exporter,
			Sink:     report.SinkFromConfig(cfg),
			Log:      log,
		},
		close: func() {
			if err := closeStore(); err != nil {
				log.Error(ctx, "failed to close store", "error", err)
			}
			if s, ok := log.(interface{ Sync() error }); ok {
				_ = s.Sync()
			}
		},
	}

	analyzer, err := newAnalyzer(ctx, cfg, log)
	switch {
	case errors.Is(err, common.ErrConfiguration):
		return c, err
	case err != nil:
		c.close()
		return nil, err
	}
	c.deps.Analyzer = analyzer
	return c, nil
}
