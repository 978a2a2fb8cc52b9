package extract

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/akapil/prospect/internal/model"
)

type stubFetcher struct {
	pages map[string]model.Page
}

func (s *stubFetcher) Get(_ context.Context, url string) (model.Page, bool) {
	p, ok := s.pages[url]
	return p, ok
}

func extractorFor(t *testing.T, body string) (*Extractor, string) {
	t.Helper()
	const jobURL = "https://jobs.lever.co/acme/123"
	f := &stubFetcher{pages: map[string]model.Page{
		jobURL: {StatusCode: 200, Body: body},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(f, logger), jobURL
}

func TestExtract_UnreachableOrNon200YieldsEmpty(t *testing.T) {
	f := &stubFetcher{pages: map[string]model.Page{
		"https://jobs.lever.co/500": {StatusCode: 500, Body: "oops"},
	}}
	e := New(f, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, u := range []string{"https://jobs.lever.co/500", "https://jobs.lever.co/gone"} {
		if d := e.Extract(context.Background(), u); d != (Details{}) {
			t.Errorf("Extract(%q) = %+v, want zero Details", u, d)
		}
	}
}

func TestExtract_TitleH1OverridesPageTitle(t *testing.T) {
	e, u := extractorFor(t, `<html><head><title>Acme Careers</title></head>
		<body><h1> Senior Backend Engineer </h1></body></html>`)
	d := e.Extract(context.Background(), u)
	if d.Title != "Senior Backend Engineer" {
		t.Errorf("Title = %q, want h1 text", d.Title)
	}
}

func TestExtract_TitleFallsBackToPageTitle(t *testing.T) {
	e, u := extractorFor(t, `<html><head><title>Backend Engineer - Acme</title></head>
		<body><h1>   </h1><p>text</p></body></html>`)
	d := e.Extract(context.Background(), u)
	if d.Title != "Backend Engineer - Acme" {
		t.Errorf("Title = %q, want page title", d.Title)
	}
}

func TestExtract_LocationFromLabelSibling(t *testing.T) {
	e, u := extractorFor(t, `<html><body>
		<div><span>Location:</span><span> Berlin,
		Germany </span></div>
	</body></html>`)
	d := e.Extract(context.Background(), u)
	if d.Location != "Berlin, Germany" {
		t.Errorf("Location = %q, want %q", d.Location, "Berlin, Germany")
	}
}

func TestExtract_LocationRejectsLongSiblings(t *testing.T) {
	long := strings.Repeat("y", 250)
	e, u := extractorFor(t, `<html><body>
		<div><span>Location</span><span>`+long+`</span></div>
	</body></html>`)
	d := e.Extract(context.Background(), u)
	if d.Location != "" {
		t.Errorf("Location = %q, want empty for oversized sibling", d.Location)
	}
}

func TestExtract_DateShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"month day comma year",
			`<div>Posted on March 3, 2024 by Acme</div>`,
			"2024-03-03",
		},
		{
			"day month year",
			`<div>Published: 7 October 2023</div>`,
			"2023-10-07",
		},
		{
			"iso passthrough",
			`<div>Date: 2024-01-15</div>`,
			"2024-01-15",
		},
		{
			"date behind inline markup",
			`<div>Posted<span>2024-01-15</span></div>`,
			"2024-01-15",
		},
		{
			"no label no date",
			`<div>We are hiring since 2020-01-01</div>`,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, u := extractorFor(t, "<html><body>"+tt.body+"</body></html>")
			d := e.Extract(context.Background(), u)
			if d.Date != tt.want {
				t.Errorf("Date = %q, want %q", d.Date, tt.want)
			}
		})
	}
}

func TestExtract_UnparseableDateKeepsRawText(t *testing.T) {
	e, u := extractorFor(t, `<html><body>
		<div>Posted 45 Blursday 2024</div>
	</body></html>`)
	d := e.Extract(context.Background(), u)
	if d.Date != "45 Blursday 2024" {
		t.Errorf("Date = %q, want the raw matched text", d.Date)
	}
}

func TestExtract_SnippetFromDescriptionContainer(t *testing.T) {
	e, u := extractorFor(t, `<html><body>
		<div class="job-description">Build   distributed systems
		with a small team.</div>
		<article>`+strings.Repeat("z", 100)+`</article>
	</body></html>`)
	d := e.Extract(context.Background(), u)
	if d.Snippet != "Build distributed systems with a small team." {
		t.Errorf("Snippet = %q, want the job-description container text", d.Snippet)
	}
}

func TestExtract_SnippetFallsBackToLongestParagraph(t *testing.T) {
	short := strings.Repeat("a", 60)
	long := strings.Repeat("b", 90)
	e, u := extractorFor(t, `<html><body>
		<p>too short</p>
		<p>`+short+`</p>
		<p>`+long+`</p>
	</body></html>`)
	d := e.Extract(context.Background(), u)
	if d.Snippet != long {
		t.Errorf("Snippet = %q, want the longest paragraph", d.Snippet)
	}
}

func TestExtract_SnippetTruncation(t *testing.T) {
	over := strings.Repeat("x", 600)
	e, u := extractorFor(t, `<html><body><div class="description">`+over+`</div></body></html>`)
	d := e.Extract(context.Background(), u)
	if len(d.Snippet) != maxSnippetLen+3 || !strings.HasSuffix(d.Snippet, "...") {
		t.Errorf("truncated snippet has len %d, want %d plus ellipsis", len(d.Snippet), maxSnippetLen+3)
	}

	exact := strings.Repeat("x", maxSnippetLen)
	e2, u2 := extractorFor(t, `<html><body><div class="description">`+exact+`</div></body></html>`)
	d2 := e2.Extract(context.Background(), u2)
	if d2.Snippet != exact {
		t.Errorf("snippet of exactly %d chars must pass through unmodified", maxSnippetLen)
	}
}

func TestExtract_FieldsDegradeIndependently(t *testing.T) {
	// Title and snippet present; no location label, no date.
	e, u := extractorFor(t, `<html><head><title>Engineer</title></head><body>
		<div class="description">`+strings.Repeat("d", 80)+`</div>
	</body></html>`)
	d := e.Extract(context.Background(), u)
	if d.Title != "Engineer" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.Snippet == "" {
		t.Error("Snippet empty, want container text")
	}
	if d.Location != "" || d.Date != "" {
		t.Errorf("Location/Date = %q/%q, want empty", d.Location, d.Date)
	}
}
