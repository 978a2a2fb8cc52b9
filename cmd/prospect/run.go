package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akapil/prospect/internal/dataset"
	"github.com/akapil/prospect/internal/model"
)

var (
	runInput   string
	runOutput  string
	runMaxJobs int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enrich a CSV of companies into an annotated workbook",
	Long:  "Reads the input CSV, discovers the four URL fields and up to N postings per company, and writes an XLSX workbook with a methodology sheet.",
	RunE:  runRun,
}

func init() {
	addRunFlags(runCmd)
	addRunFlags(rootCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&runInput, "input", "i", "companies.csv", "input CSV with Company Name and Company Description columns")
	cmd.Flags().StringVarP(&runOutput, "output", "o", "enriched.xlsx", "output XLSX workbook")
	cmd.Flags().IntVar(&runMaxJobs, "max-jobs", 0, "postings per company (overrides config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	maxJobs := cfg.MaxJobs
	if runMaxJobs > 0 {
		maxJobs = runMaxJobs
	}

	table, err := dataset.Load(runInput)
	if err != nil {
		var missing *model.MissingColumnError
		if errors.As(err, &missing) {
			logger.Error("input is missing a required column", "column", missing.Column)
			os.Exit(1)
		}
		logger.Error("failed to load input", "path", runInput, "error", err)
		os.Exit(1)
	}

	logger.Info("input loaded",
		"path", runInput,
		"companies", len(table.Records),
		"skipped_rows", table.Skipped,
		"max_jobs", maxJobs,
	)

	enricher := buildEnricher(cfg, maxJobs, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary := enricher.Run(ctx, table)
	if ctx.Err() != nil {
		logger.Warn("interrupted, writing partial results", "companies_done", summary.Companies)
	}

	if err := dataset.WriteWorkbook(runOutput, table, maxJobs, time.Now().UTC()); err != nil {
		logger.Error("failed to write workbook", "path", runOutput, "error", err)
		os.Exit(1)
	}

	logger.Info("workbook written",
		"path", runOutput,
		"companies", summary.Companies,
		"jobs", summary.JobsFound,
		"elapsed", summary.Elapsed.Round(time.Second).String(),
	)
	return nil
}
