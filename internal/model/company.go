package model

import "context"

// DefaultMaxJobs bounds how many postings are attached per company.
const DefaultMaxJobs = 3

// CompanyRecord is one row of the input table plus everything discovery adds.
// URL fields are either empty (unresolved) or a normalized absolute URL.
type CompanyRecord struct {
	Name        string
	Description string

	Website  string // official site
	LinkedIn string // linkedin.com/company page
	Careers  string // company-operated careers page
	JobBoard string // ATS listing page

	Jobs []JobPosting // at most MaxJobs entries

	// Extra holds passthrough column values keyed by header, untouched.
	Extra map[string]string
}

// JobPosting is one scraped job, enriched from its detail page.
type JobPosting struct {
	URL      string
	Title    string
	Location string
	Date     string // ISO-8601 when parseable, else raw matched text
	Snippet  string // ≤500 chars plus "..." when truncated
}

// Listing is a single entry parsed off a job-board listing page.
type Listing struct {
	URL   string
	Title string // anchor text, possibly empty
}

// ProviderMatch associates a canonical ATS label with its host suffix.
// The host is used both for site: detection queries and for dispatch.
type ProviderMatch struct {
	Label string
	Host  string
}

// Searcher issues a text query against an external search engine and returns
// at most max result URLs. Provider failures surface as an empty slice —
// "no results" is a normal outcome, never an error.
type Searcher interface {
	Search(ctx context.Context, query string, max int) []string
}

// Page is a fetched document. Body is the raw markup.
type Page struct {
	StatusCode int
	Body       string
}

// Fetcher retrieves a page. ok is false on transport failure after retries;
// a non-2xx response still returns ok=true so callers can inspect the status.
type Fetcher interface {
	Get(ctx context.Context, url string) (Page, bool)
}

// Pacer throttles outbound traffic between network-issuing steps.
type Pacer interface {
	Pause(ctx context.Context)
	JobPause(ctx context.Context)
}
