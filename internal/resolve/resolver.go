// Package resolve implements the per-company discovery chain: official site,
// LinkedIn page, careers page, and ATS job board, each step falling back
// through multiple strategies and writing only fields that were empty.
package resolve

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/akapil/prospect/internal/model"
	"github.com/akapil/prospect/internal/score"
	"github.com/akapil/prospect/internal/urlutil"
)

// Rules is the immutable configuration a Resolver runs under. Tests override
// limits; production uses DefaultRules.
type Rules struct {
	Providers      []model.ProviderMatch
	Priority       []string // fixed total order; workday deliberately absent
	CareersPaths   []string
	MaxSiteResults int
	MaxLinkedIn    int
	MaxCareers     int
	MaxATSResults  int
	MaxJobSearch   int

	// MinCareersBody is the minimum body length for a probed careers path
	// to count as a real page rather than a soft 404.
	MinCareersBody int
}

// DefaultProviders is the fixed ATS detection table. Order matters: it is
// the tie-break for the "first hit" fallback.
var DefaultProviders = []model.ProviderMatch{
	{Label: "teamtailor", Host: "teamtailor.com"},
	{Label: "lever", Host: "lever.co"},
	{Label: "greenhouse", Host: "greenhouse.io"},
	{Label: "workable", Host: "apply.workable.com"},
	{Label: "personio", Host: "personio.com"},
	{Label: "zohorecruit", Host: "zohorecruit.com"},
	{Label: "smartrecruiters", Host: "smartrecruiters.com"},
	{Label: "workday", Host: "workday.com"},
}

// DefaultPriority ranks providers for job-board selection. Workday is
// detectable but never wins here; it can still be chosen by the first-hit
// fallback when nothing prioritized matched.
var DefaultPriority = []string{
	"teamtailor", "lever", "greenhouse", "workable",
	"personio", "zohorecruit", "smartrecruiters",
}

// DefaultCareersPaths are probed in order against a known website root.
var DefaultCareersPaths = []string{
	"/careers",
	"/jobs",
	"/about/careers",
	"/company/careers",
	"/careers-us",
	"/join-us",
	"/work-with-us",
	"/join-our-team",
}

// DefaultRules returns the production rule set.
func DefaultRules() Rules {
	return Rules{
		Providers:      DefaultProviders,
		Priority:       DefaultPriority,
		CareersPaths:   DefaultCareersPaths,
		MaxSiteResults: 10,
		MaxLinkedIn:    6,
		MaxCareers:     6,
		MaxATSResults:  5,
		MaxJobSearch:   6,
		MinCareersBody: 200,
	}
}

// careersPattern spots careers-ish URLs in search results.
var careersPattern = regexp.MustCompile(`(?i)caree|job|join`)

// Resolver runs the discovery chain for one company at a time.
type Resolver struct {
	searcher model.Searcher
	fetcher  model.Fetcher
	pacer    model.Pacer
	rules    Rules
	jobHosts *regexp.Regexp
	logger   *slog.Logger
}

// New wires a Resolver with its collaborators.
func New(searcher model.Searcher, fetcher model.Fetcher, pacer model.Pacer, rules Rules, logger *slog.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		fetcher:  fetcher,
		pacer:    pacer,
		rules:    rules,
		jobHosts: jobSearchPattern(rules),
		logger:   logger,
	}
}

// Resolve fills the record's empty URL fields in order: site, LinkedIn,
// careers, job board. Pre-filled fields are left alone and no step ever
// fails the record; an undiscoverable field stays empty.
func (r *Resolver) Resolve(ctx context.Context, rec *model.CompanyRecord) {
	if rec.Website == "" {
		rec.Website = r.OfficialSite(ctx, rec.Name)
		r.pacer.Pause(ctx)
	}
	if rec.LinkedIn == "" {
		rec.LinkedIn = r.LinkedInPage(ctx, rec.Name)
		r.pacer.Pause(ctx)
	}
	if rec.Careers == "" {
		rec.Careers = r.CareersPage(ctx, rec.Name, rec.Website)
		r.pacer.Pause(ctx)
	}
	if rec.JobBoard == "" {
		rec.JobBoard = r.JobBoard(ctx, rec.Name, rec.Careers)
		r.pacer.Pause(ctx)
	}

	r.logger.Debug("resolved company",
		"company", rec.Name,
		"website", rec.Website,
		"linkedin", rec.LinkedIn,
		"careers", rec.Careers,
		"job_board", rec.JobBoard,
	)
}

// OfficialSite queries "<name> official website", scoring candidates against
// the name; an empty result set retries with the bare name.
func (r *Resolver) OfficialSite(ctx context.Context, name string) string {
	for _, query := range []string{name + " official website", name} {
		results := r.searcher.Search(ctx, query, r.rules.MaxSiteResults)
		if best := score.PickBest(results, name); best != "" {
			return urlutil.Normalize(best)
		}
	}
	return ""
}

// LinkedInPage returns the first search hit that is a company page.
func (r *Resolver) LinkedInPage(ctx context.Context, name string) string {
	results := r.searcher.Search(ctx, "site:linkedin.com/company "+name, r.rules.MaxLinkedIn)
	for _, u := range results {
		if strings.Contains(u, "linkedin.com/company") {
			return urlutil.Normalize(u)
		}
	}
	return ""
}

// CareersPage discovers a careers page: probe well-known paths under the
// website, then a site-scoped search, then a plain "<name> careers" search.
func (r *Resolver) CareersPage(ctx context.Context, name, website string) string {
	if website != "" {
		if found := r.careersOnSite(ctx, website); found != "" {
			return found
		}
	}

	results := r.searcher.Search(ctx, name+" careers", r.rules.MaxCareers)
	for _, u := range results {
		if careersPattern.MatchString(u) {
			return urlutil.Normalize(u)
		}
	}
	return ""
}

// careersOnSite probes the fixed path list against the site root, accepting
// the first 200 response with a non-trivial body, then falls back to a
// site-scoped search constrained to the same domain.
func (r *Resolver) careersOnSite(ctx context.Context, website string) string {
	root := urlutil.Normalize(website)
	if root == "" {
		return ""
	}

	for _, path := range r.rules.CareersPaths {
		candidate := root + path
		page, ok := r.fetcher.Get(ctx, candidate)
		if ok && page.StatusCode == 200 && len(page.Body) > r.rules.MinCareersBody {
			return urlutil.Normalize(candidate)
		}
	}

	domain := urlutil.DomainOf(root)
	results := r.searcher.Search(ctx, "site:"+domain+" careers OR jobs", r.rules.MaxCareers)
	for _, u := range results {
		if urlutil.DomainOf(u) == domain && careersPattern.MatchString(u) {
			return urlutil.Normalize(u)
		}
	}
	return ""
}

// JobBoard picks the company's job listing page: ATS detection with the fixed
// priority order first, then the careers URL when it looks like a listing
// page, then a "<name> jobs" search filtered to known ATS hosts.
func (r *Resolver) JobBoard(ctx context.Context, name, careers string) string {
	if hits := r.DetectATS(ctx, name); len(hits) > 0 {
		return r.pickATS(hits)
	}

	if careers != "" {
		lower := strings.ToLower(careers)
		for _, marker := range []string{"careers", "jobs", "join"} {
			if strings.Contains(lower, marker) {
				return careers
			}
		}
	}

	results := r.searcher.Search(ctx, name+" jobs", r.rules.MaxJobSearch)
	for _, u := range results {
		if r.jobHosts.MatchString(u) {
			return urlutil.Normalize(u)
		}
	}
	return ""
}
