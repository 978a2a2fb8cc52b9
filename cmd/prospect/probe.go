package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akapil/prospect/internal/model"
	"github.com/akapil/prospect/internal/pace"
	"github.com/akapil/prospect/internal/review"
)

var probeJobs bool

var probeCmd = &cobra.Command{
	Use:   "probe <company name>",
	Short: "Run the discovery chain for one company, print the result",
	Long:  "One-shot discovery: resolves official site, LinkedIn, careers page, and job board for a single company name, optionally with postings, and prints what it found.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProbe,
}

func init() {
	probeCmd.Flags().BoolVar(&probeJobs, "jobs", false, "also parse the job board and extract postings")
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The spinner owns the terminal; log output would corrupt it.
	logger := setupLogger(debug)
	if !debug {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	name := strings.Join(args, " ")
	enricher := buildEnricher(cfg, cfg.MaxJobs, logger)

	rec, err := review.RunProbe(name, func(ctx context.Context) (model.CompanyRecord, error) {
		r := model.CompanyRecord{Name: name}
		if probeJobs {
			enricher.EnrichCompany(ctx, &r)
		} else {
			resolver := buildResolver(cfg, buildFetcher(cfg), pace.NewFixedDelay(cfg.StepDelay, cfg.JobDelay), logger)
			resolver.Resolve(ctx, &r)
		}
		return r, ctx.Err()
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe failed: %v\n", err)
		os.Exit(1)
	}

	printField := func(label, value string) {
		if value == "" {
			value = "(not found)"
		}
		fmt.Printf("%-14s %s\n", label, value)
	}

	printField("Company:", rec.Name)
	printField("Website:", rec.Website)
	printField("LinkedIn:", rec.LinkedIn)
	printField("Careers:", rec.Careers)
	printField("Job board:", rec.JobBoard)

	for i, job := range rec.Jobs {
		fmt.Printf("\nPosting %d\n", i+1)
		printField("  Title:", job.Title)
		printField("  Location:", job.Location)
		printField("  Posted:", job.Date)
		printField("  URL:", job.URL)
		if job.Snippet != "" {
			fmt.Printf("  %s\n", job.Snippet)
		}
	}
	return nil
}
