// Package listing turns a job-board URL into a bounded list of job links.
// A provider-specific parse strategy is chosen from the URL's host; unknown
// boards get a generic anchor scan. All strategies share one shape: fetch,
// select provider-appropriate anchors, resolve relative links, dedup, cap.
package listing

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akapil/prospect/internal/model"
	"github.com/akapil/prospect/internal/urlutil"
)

// provider couples a label with its anchor selector and a dispatch predicate.
type provider struct {
	name     string
	selector string
	match    func(host, rawURL string) bool
}

// providers is checked in order; the first match wins, so dispatch is
// deterministic for any URL.
var providers = []provider{
	{
		name:     "teamtailor",
		selector: "a[href*='/jobs/']",
		match: func(host, _ string) bool {
			return strings.Contains(host, "teamtailor")
		},
	},
	{
		name:     "lever",
		selector: "a[href*='/jobs/']",
		match: func(host, rawURL string) bool {
			return strings.Contains(host, "lever.co") || strings.Contains(rawURL, "lever")
		},
	},
	{
		name:     "greenhouse",
		selector: "a[href*='/jobs/'], div.opening a",
		match: func(host, rawURL string) bool {
			return strings.Contains(host, "greenhouse") || strings.Contains(rawURL, "greenhouse")
		},
	},
	{
		name:     "workable",
		selector: "a[href*='/jobs/']",
		match: func(host, _ string) bool {
			return strings.Contains(host, "workable")
		},
	},
	{
		name:     "personio",
		selector: "a[href*='/job/'], a[href*='/jobs/']",
		match: func(host, _ string) bool {
			return strings.Contains(host, "personio")
		},
	},
}

// generic is the fallback strategy for boards we have no dedicated parser for.
var generic = provider{
	name:     "generic",
	selector: "a[href*='/jobs/'], a[href*='/careers/'], a[href*='/job/']",
	match:    func(_, _ string) bool { return true },
}

// Dispatcher fetches listing pages and parses them with the right strategy.
type Dispatcher struct {
	fetcher model.Fetcher
	maxJobs int
	logger  *slog.Logger
}

// NewDispatcher returns a Dispatcher bounded to maxJobs entries per page.
func NewDispatcher(fetcher model.Fetcher, maxJobs int, logger *slog.Logger) *Dispatcher {
	if maxJobs <= 0 {
		maxJobs = model.DefaultMaxJobs
	}
	return &Dispatcher{fetcher: fetcher, maxJobs: maxJobs, logger: logger}
}

// providerFor selects the parse strategy for a listing URL.
func providerFor(listingURL string) provider {
	host := ""
	if u, err := url.Parse(listingURL); err == nil {
		host = strings.ToLower(u.Host)
	}
	lower := strings.ToLower(listingURL)
	for _, p := range providers {
		if p.match(host, lower) {
			return p
		}
	}
	return generic
}

// ParseListings fetches the page at listingURL and extracts up to maxJobs job
// links in document order, deduplicated by resolved absolute URL. It fails
// closed: an unreachable page or non-200 response yields an empty list.
func (d *Dispatcher) ParseListings(ctx context.Context, listingURL string) []model.Listing {
	p := providerFor(listingURL)

	page, ok := d.fetcher.Get(ctx, listingURL)
	if !ok || page.StatusCode != 200 {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil
	}

	base, err := url.Parse(listingURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var out []model.Listing
	doc.Find(p.selector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return true
		}

		resolved := resolveHref(base, href)
		if resolved == "" {
			return true
		}
		if _, dup := seen[resolved]; dup {
			return true
		}
		seen[resolved] = struct{}{}

		out = append(out, model.Listing{
			URL:   resolved,
			Title: strings.TrimSpace(a.Text()),
		})
		return len(out) < d.maxJobs
	})

	d.logger.Debug("parsed listings", "provider", p.name, "url", listingURL, "jobs", len(out))
	return out
}

// resolveHref resolves href against the listing page URL and normalizes it.
// Non-http link schemes are dropped.
func resolveHref(base *url.URL, href string) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return urlutil.Normalize(base.ResolveReference(u).String())
}
