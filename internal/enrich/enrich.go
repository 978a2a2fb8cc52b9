// Package enrich owns the full pipeline for a company record: resolve the
// four URL fields, parse the job board, extract detail for each posting.
// A run processes records strictly sequentially with pacing in between.
package enrich

import (
	"context"
	"log/slog"
	"time"

	"github.com/akapil/prospect/internal/dataset"
	"github.com/akapil/prospect/internal/extract"
	"github.com/akapil/prospect/internal/listing"
	"github.com/akapil/prospect/internal/model"
	"github.com/akapil/prospect/internal/resolve"
)

// Enricher wires the discovery chain, listing dispatcher, and detail
// extractor for one record at a time.
type Enricher struct {
	resolver  *resolve.Resolver
	lister    *listing.Dispatcher
	extractor *extract.Extractor
	pacer     model.Pacer
	maxJobs   int
	logger    *slog.Logger
}

// New creates an Enricher bounded to maxJobs postings per company.
func New(
	resolver *resolve.Resolver,
	lister *listing.Dispatcher,
	extractor *extract.Extractor,
	pacer model.Pacer,
	maxJobs int,
	logger *slog.Logger,
) *Enricher {
	if maxJobs <= 0 {
		maxJobs = model.DefaultMaxJobs
	}
	return &Enricher{
		resolver:  resolver,
		lister:    lister,
		extractor: extractor,
		pacer:     pacer,
		maxJobs:   maxJobs,
		logger:    logger,
	}
}

// EnrichCompany runs all stages for one record. Stages only write fields that
// were empty, and no remote failure ever fails the record: undiscoverable
// fields stay empty and the job list is simply as long as it got.
func (e *Enricher) EnrichCompany(ctx context.Context, rec *model.CompanyRecord) {
	e.resolver.Resolve(ctx, rec)

	if rec.JobBoard == "" {
		return
	}

	for _, l := range e.lister.ParseListings(ctx, rec.JobBoard) {
		if len(rec.Jobs) >= e.maxJobs {
			break
		}

		posting := model.JobPosting{URL: l.URL, Title: l.Title}
		if l.URL != "" {
			d := e.extractor.Extract(ctx, l.URL)
			if d.Title != "" {
				posting.Title = d.Title
			}
			posting.Location = d.Location
			posting.Date = d.Date
			posting.Snippet = d.Snippet
		}
		rec.Jobs = append(rec.Jobs, posting)
		e.pacer.JobPause(ctx)
	}
}

// Summary reports what a run did.
type Summary struct {
	Companies int
	JobsFound int
	Elapsed   time.Duration
}

// Run enriches every record in the table sequentially, pausing between
// companies. A cancelled context stops between records, never mid-record.
func (e *Enricher) Run(ctx context.Context, table *dataset.Table) Summary {
	start := time.Now()
	summary := Summary{}

	for i := range table.Records {
		if ctx.Err() != nil {
			break
		}
		rec := &table.Records[i]

		e.EnrichCompany(ctx, rec)
		summary.Companies++
		summary.JobsFound += len(rec.Jobs)

		e.logger.Info("enriched company",
			"company", rec.Name,
			"website", rec.Website,
			"job_board", rec.JobBoard,
			"jobs", len(rec.Jobs),
		)

		if i < len(table.Records)-1 {
			e.pacer.Pause(ctx)
		}
	}

	summary.Elapsed = time.Since(start)
	return summary
}
