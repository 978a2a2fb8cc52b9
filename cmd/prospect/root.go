package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/akapil/prospect/internal/config"
	"github.com/akapil/prospect/internal/enrich"
	"github.com/akapil/prospect/internal/extract"
	"github.com/akapil/prospect/internal/fetch"
	"github.com/akapil/prospect/internal/listing"
	"github.com/akapil/prospect/internal/model"
	"github.com/akapil/prospect/internal/pace"
	"github.com/akapil/prospect/internal/resolve"
	"github.com/akapil/prospect/internal/search"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "prospect",
	Short: "Company enrichment — from a name to its job board",
	Long:  "Prospect takes a spreadsheet of company names and fills in official site, LinkedIn, careers page, ATS job board, and a sample of open postings.",
	// Default to `run` so that `prospect -i companies.csv` works without
	// naming the subcommand.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: PROSPECT_CONFIG env var or ./config.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > PROSPECT_CONFIG env var > "./config.yaml".
// The file is optional: when nothing resolves, built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("PROSPECT_CONFIG"); env != "" {
			path = env
		} else if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func buildFetcher(cfg *config.Config) *fetch.Client {
	return fetch.NewClient(
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithRetries(cfg.Retries),
	)
}

func buildRules(cfg *config.Config) resolve.Rules {
	rules := resolve.DefaultRules()
	rules.MaxSiteResults = cfg.MaxSearchResults
	if len(cfg.CareersPaths) > 0 {
		rules.CareersPaths = cfg.CareersPaths
	}
	return rules
}

func buildResolver(cfg *config.Config, fetcher model.Fetcher, pacer model.Pacer, logger *slog.Logger) *resolve.Resolver {
	// Search queries get a single attempt; the retry budget applies to page
	// fetches only.
	searchClient := fetch.NewClient(
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithRetries(0),
	)
	searcher := search.NewDuckDuckGo(searchClient)
	return resolve.New(searcher, fetcher, pacer, buildRules(cfg), logger)
}

func buildEnricher(cfg *config.Config, maxJobs int, logger *slog.Logger) *enrich.Enricher {
	fetcher := buildFetcher(cfg)
	pacer := pace.NewFixedDelay(cfg.StepDelay, cfg.JobDelay)
	resolver := buildResolver(cfg, fetcher, pacer, logger)
	lister := listing.NewDispatcher(fetcher, maxJobs, logger)
	extractor := extract.New(fetcher, logger)
	return enrich.New(resolver, lister, extractor, pacer, maxJobs, logger)
}
