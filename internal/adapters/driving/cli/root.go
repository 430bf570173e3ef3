// Package cli exposes the command-line interface: harvest, filter,
// merge, stats, and version commands over the core services.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/provenlabs/repotrawl/internal/adapters/driven/catalog/file"
	"github.com/provenlabs/repotrawl/internal/adapters/driven/catalog/sqlite"
	"github.com/provenlabs/repotrawl/internal/config"
	"github.com/provenlabs/repotrawl/internal/connectors/github"
	"github.com/provenlabs/repotrawl/internal/core/ports/driven"
	"github.com/provenlabs/repotrawl/internal/core/ports/driving"
	"github.com/provenlabs/repotrawl/internal/core/services"
	"github.com/provenlabs/repotrawl/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services consumed by the commands. Wired from configuration on first
// use; tests assign fakes directly.
var (
	harvestService driving.Harvester
	curateService  driving.Curator
)

var (
	cfg       *config.Config
	tokenErr  error
	wired     bool
	wireErr   error
	catalogDB *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "repotrawl",
	Short: "Trawl GitHub for repositories built with an AI coding assistant",
	Long: `repotrawl sweeps the GitHub search surfaces for repositories that
credit an AI coding assistant: repository descriptions, indexed code,
commit messages, issues and pull requests, and characteristic
configuration paths. Each sweep phase writes its own catalog, and the
catalogs can then be filtered by description, merged across runs, and
enriched with repository statistics.`,
	SilenceUsage: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context, which aborts an in-flight sweep between requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeCatalog()
	return rootCmd.ExecuteContext(ctx)
}

// wire loads configuration and builds the services, once. Commands call
// it before touching their service. Without a token only the curation
// service is built, so filter and merge work offline while harvest and
// stats report the missing token.
func wire() error {
	if wired {
		return wireErr
	}
	wired = true

	cfg, wireErr = config.Load()
	if wireErr != nil {
		return wireErr
	}

	logging.Init(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	store := file.NewStore()
	tokenErr = cfg.RequireToken()
	if tokenErr != nil {
		curateService = services.NewCurator(store, store, nil, cfg.Profile)
		return nil
	}

	client, err := github.NewClient(context.Background(), github.Config{
		Token:        cfg.Token,
		PerPage:      cfg.PerPage,
		MaxResults:   cfg.MaxResults,
		PageDelay:    cfg.PageDelay,
		SafetyMargin: cfg.SafetyMargin,
	})
	if err != nil {
		wireErr = fmt.Errorf("github client: %w", err)
		return wireErr
	}

	sink, err := newCatalogSink()
	if err != nil {
		wireErr = err
		return wireErr
	}

	harvestService = services.NewHarvester(client, sink, cfg.Profile)
	curateService = services.NewCurator(store, store, client, cfg.Profile)
	return nil
}

// newCatalogSink builds the configured catalog writer.
func newCatalogSink() (driven.CatalogWriter, error) {
	if cfg.Catalog == config.CatalogSQLite {
		store, err := sqlite.NewStore(cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite catalog: %w", err)
		}
		catalogDB = store
		return store, nil
	}

	w, err := file.NewWriter(cfg.OutputDir, cfg.Profile.Slug())
	if err != nil {
		return nil, fmt.Errorf("open catalog directory: %w", err)
	}
	return w, nil
}

func closeCatalog() {
	if catalogDB != nil {
		_ = catalogDB.Close()
	}
}
