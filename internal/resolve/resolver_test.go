package resolve

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/akapil/prospect/internal/model"
	"github.com/akapil/prospect/internal/pace"
)

// stubSearcher maps query substrings to canned result lists.
type stubSearcher struct {
	results map[string][]string
	queries []string
}

func (s *stubSearcher) Search(_ context.Context, query string, max int) []string {
	s.queries = append(s.queries, query)
	for key, urls := range s.results {
		if strings.Contains(query, key) {
			if len(urls) > max {
				return urls[:max]
			}
			return urls
		}
	}
	return nil
}

// stubFetcher maps exact URLs to pages; everything else is absent.
type stubFetcher struct {
	pages map[string]model.Page
}

func (s *stubFetcher) Get(_ context.Context, url string) (model.Page, bool) {
	p, ok := s.pages[url]
	return p, ok
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newResolver(s *stubSearcher, f *stubFetcher) *Resolver {
	if s == nil {
		s = &stubSearcher{}
	}
	if f == nil {
		f = &stubFetcher{}
	}
	return New(s, f, pace.Nop{}, DefaultRules(), discard())
}

func TestOfficialSite_PicksBestAndNormalizes(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"official website": {"https://jobs.example.org/acme", "https://acme-corp.com/"},
	}}
	r := newResolver(s, nil)

	got := r.OfficialSite(context.Background(), "Acme Corp")
	if got != "https://acme-corp.com" {
		t.Errorf("OfficialSite = %q, want https://acme-corp.com", got)
	}
}

// bareNameSearcher returns nothing for the "official website" phrasing so the
// resolver has to retry with the bare company name.
type bareNameSearcher struct {
	queries []string
}

func (s *bareNameSearcher) Search(_ context.Context, query string, _ int) []string {
	s.queries = append(s.queries, query)
	if strings.Contains(query, "official website") {
		return nil
	}
	return []string{"https://acme-corp.com"}
}

func TestOfficialSite_RetriesWithBareName(t *testing.T) {
	s := &bareNameSearcher{}
	r := New(s, &stubFetcher{}, pace.Nop{}, DefaultRules(), discard())

	got := r.OfficialSite(context.Background(), "Acme Corp")
	if got != "https://acme-corp.com" {
		t.Errorf("OfficialSite = %q, want https://acme-corp.com", got)
	}
	if len(s.queries) != 2 {
		t.Errorf("issued %d queries, want 2 (retry with bare name)", len(s.queries))
	}
}

func TestLinkedInPage_FiltersToCompanyPages(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"site:linkedin.com/company": {
			"https://linkedin.com/in/some-person",
			"https://www.linkedin.com/company/acme-corp/",
		},
	}}
	r := newResolver(s, nil)

	got := r.LinkedInPage(context.Background(), "Acme Corp")
	if got != "https://www.linkedin.com/company/acme-corp" {
		t.Errorf("LinkedInPage = %q", got)
	}
}

func TestLinkedInPage_NoMatchYieldsEmpty(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"site:linkedin.com/company": {"https://linkedin.com/in/person"},
	}}
	r := newResolver(s, nil)
	if got := r.LinkedInPage(context.Background(), "Acme"); got != "" {
		t.Errorf("LinkedInPage = %q, want empty", got)
	}
}

func TestCareersPage_ProbesPathsInOrder(t *testing.T) {
	big := strings.Repeat("x", 300)
	f := &stubFetcher{pages: map[string]model.Page{
		"https://acme.com/careers": {StatusCode: 404, Body: big},
		"https://acme.com/jobs":    {StatusCode: 200, Body: big},
	}}
	r := newResolver(nil, f)

	got := r.CareersPage(context.Background(), "Acme", "https://acme.com")
	if got != "https://acme.com/jobs" {
		t.Errorf("CareersPage = %q, want https://acme.com/jobs", got)
	}
}

func TestCareersPage_RejectsThinBodies(t *testing.T) {
	f := &stubFetcher{pages: map[string]model.Page{
		"https://acme.com/careers": {StatusCode: 200, Body: "short"},
	}}
	s := &stubSearcher{results: map[string][]string{
		"site:acme.com": {"https://acme.com/join-our-team"},
	}}
	r := newResolver(s, f)

	got := r.CareersPage(context.Background(), "Acme", "https://acme.com")
	if got != "https://acme.com/join-our-team" {
		t.Errorf("CareersPage = %q, want the site-scoped search fallback", got)
	}
}

func TestCareersPage_SiteScopedSearchStaysOnDomain(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"site:acme.com": {
			"https://jobs.other.com/acme-careers", // wrong domain
			"https://acme.com/working-here",       // right domain, no keyword
			"https://acme.com/jobs/all",
		},
	}}
	r := newResolver(s, &stubFetcher{})

	got := r.CareersPage(context.Background(), "Acme", "https://acme.com")
	if got != "https://acme.com/jobs/all" {
		t.Errorf("CareersPage = %q, want https://acme.com/jobs/all", got)
	}
}

func TestCareersPage_NoWebsiteFallsBackToPlainSearch(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		" careers": {
			"https://news.example.com/acme-raises-round",
			"https://careers.acme.com/openings",
		},
	}}
	r := newResolver(s, nil)

	got := r.CareersPage(context.Background(), "Acme", "")
	if got != "https://careers.acme.com/openings" {
		t.Errorf("CareersPage = %q, want https://careers.acme.com/openings", got)
	}
}

func TestDetectATS_FirstResultOnHostWins(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"site:lever.co":       {"https://unrelated.com/post", "https://jobs.lever.co/acme"},
		"site:greenhouse.io":  {"https://boards.greenhouse.io/acme/"},
		"site:teamtailor.com": nil,
	}}
	r := newResolver(s, nil)

	hits := r.DetectATS(context.Background(), "Acme")
	if len(hits) != 2 {
		t.Fatalf("DetectATS returned %d hits, want 2: %v", len(hits), hits)
	}
	// Provider table order: lever before greenhouse.
	if hits[0].Label != "lever" || hits[0].URL != "https://jobs.lever.co/acme" {
		t.Errorf("hits[0] = %+v", hits[0])
	}
	if hits[1].Label != "greenhouse" || hits[1].URL != "https://boards.greenhouse.io/acme" {
		t.Errorf("hits[1] = %+v", hits[1])
	}
}

func TestJobBoard_PriorityPrefersLeverOverWorkable(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"site:apply.workable.com": {"https://apply.workable.com/acme"},
		"site:lever.co":           {"https://jobs.lever.co/acme"},
	}}
	r := newResolver(s, nil)

	got := r.JobBoard(context.Background(), "Acme", "")
	if got != "https://jobs.lever.co/acme" {
		t.Errorf("JobBoard = %q, want the lever hit", got)
	}
}

func TestJobBoard_WorkdayNeverWinsPriorityButIsFallback(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"site:workday.com": {"https://acme.workday.com/careers"},
	}}
	r := newResolver(s, nil)

	// Workday is the only hit: the first-found fallback picks it.
	got := r.JobBoard(context.Background(), "Acme", "")
	if got != "https://acme.workday.com/careers" {
		t.Errorf("JobBoard = %q, want the workday hit via fallback", got)
	}

	// With a prioritized provider also present, workday loses.
	s = &stubSearcher{results: map[string][]string{
		"site:workday.com":     {"https://acme.workday.com/careers"},
		"site:smartrecruiters": {"https://jobs.smartrecruiters.com/acme"},
	}}
	r = newResolver(s, nil)
	got = r.JobBoard(context.Background(), "Acme", "")
	if got != "https://jobs.smartrecruiters.com/acme" {
		t.Errorf("JobBoard = %q, want the smartrecruiters hit", got)
	}
}

func TestJobBoard_ReusesCareersURLWithListingMarker(t *testing.T) {
	r := newResolver(&stubSearcher{}, nil)
	got := r.JobBoard(context.Background(), "Acme", "https://acme.com/jobs")
	if got != "https://acme.com/jobs" {
		t.Errorf("JobBoard = %q, want the careers URL reused", got)
	}

	// A careers URL without a listing marker is not reused.
	got = r.JobBoard(context.Background(), "Acme", "https://acme.com/about-hiring")
	if got != "" {
		t.Errorf("JobBoard = %q, want empty", got)
	}
}

func TestJobBoard_SearchFallbackFiltersToATSHosts(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"Acme jobs": {
			"https://www.glassdoor.com/acme-jobs",
			"https://acme.teamtailor.com/jobs/",
		},
	}}
	r := newResolver(s, nil)

	got := r.JobBoard(context.Background(), "Acme", "")
	if got != "https://acme.teamtailor.com/jobs" {
		t.Errorf("JobBoard = %q, want the teamtailor result", got)
	}
}

func TestJobBoard_SearchFallbackMatchesTeamtailorBrandToken(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"Acme jobs": {
			"https://jobs.teamtailor.dev/acme",
		},
	}}
	r := newResolver(s, nil)

	got := r.JobBoard(context.Background(), "Acme", "")
	if got != "https://jobs.teamtailor.dev/acme" {
		t.Errorf("JobBoard = %q, want the brand-token match", got)
	}
}

func TestResolve_PrefilledFieldsArePreserved(t *testing.T) {
	s := &stubSearcher{results: map[string][]string{
		"site:linkedin.com/company": {"https://linkedin.com/company/acme"},
	}}
	r := newResolver(s, nil)

	rec := &model.CompanyRecord{Name: "Acme", Website: "https://acme.com"}
	r.Resolve(context.Background(), rec)

	if rec.Website != "https://acme.com" {
		t.Errorf("Website = %q, want pre-filled value untouched", rec.Website)
	}
	if rec.LinkedIn != "https://linkedin.com/company/acme" {
		t.Errorf("LinkedIn = %q", rec.LinkedIn)
	}
	// Website discovery must have been skipped entirely.
	for _, q := range s.queries {
		if strings.Contains(q, "official website") {
			t.Errorf("website discovery ran despite pre-filled field: %q", q)
		}
	}
}

func TestResolve_AllCollaboratorsFailingYieldsEmptyFields(t *testing.T) {
	r := newResolver(&stubSearcher{}, &stubFetcher{})
	rec := &model.CompanyRecord{Name: "Acme"}
	r.Resolve(context.Background(), rec)

	if rec.Website != "" || rec.LinkedIn != "" || rec.Careers != "" || rec.JobBoard != "" {
		t.Errorf("expected all fields empty, got %+v", rec)
	}
}
