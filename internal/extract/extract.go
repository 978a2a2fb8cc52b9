// Package extract pulls structured detail out of a single job posting page.
// Every heuristic degrades independently: a miss leaves its field empty and
// never aborts the others.
package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"golang.org/x/net/html"

	"github.com/akapil/prospect/internal/model"
)

// Details holds the four independently-extracted fields of a posting.
type Details struct {
	Title    string
	Location string
	Date     string // ISO-8601 when parseable, else the raw matched text
	Snippet  string
}

const (
	maxSnippetLen   = 500
	maxLocationRaw  = 200 // raw sibling markup longer than this is not a location
	minFallbackText = 50  // fallback snippet paragraphs must exceed this
)

// snippetSelectors are tried in order; the first container that exists wins.
var snippetSelectors = []string{
	"div.job-description",
	"div.description",
	"section.job",
	"div#job",
	"article",
	"div[class*='description']",
}

var (
	locationLabelRe = regexp.MustCompile(`(?i)location|city`)
	dateLabelRe     = regexp.MustCompile(`(?i)posted|date|published`)

	// Three accepted date shapes: "3 March 2024", "March 3, 2024", "2024-03-03".
	dateShapeRe = regexp.MustCompile(`\b\d{1,2}\s+\w+\s+\d{4}\b|\b\w+\s+\d{1,2},\s*\d{4}\b|\b\d{4}-\d{2}-\d{2}\b`)
)

// Extractor fetches job pages and applies the detail heuristics.
type Extractor struct {
	fetcher model.Fetcher
	logger  *slog.Logger
}

// New returns an Extractor backed by the given fetcher.
func New(fetcher model.Fetcher, logger *slog.Logger) *Extractor {
	return &Extractor{fetcher: fetcher, logger: logger}
}

// Extract fetches jobURL and pulls title, location, date, and snippet.
// An unreachable page or non-200 status yields all-empty Details.
func (e *Extractor) Extract(ctx context.Context, jobURL string) Details {
	page, ok := e.fetcher.Get(ctx, jobURL)
	if !ok || page.StatusCode != 200 {
		return Details{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return Details{}
	}

	d := Details{
		Title:    extractTitle(doc),
		Location: extractLocation(doc),
		Date:     extractDate(doc),
		Snippet:  extractSnippet(doc),
	}
	e.logger.Debug("extracted job detail", "url", jobURL, "title", d.Title, "date", d.Date)
	return d
}

// extractTitle prefers the first non-empty <h1> over the page <title>.
func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		title = h1
	}
	return title
}

// extractLocation scans text nodes mentioning a location label and inspects
// the DOM sibling following the labelled element. Short sibling markup is
// accepted as the location once stripped and whitespace-collapsed.
func extractLocation(doc *goquery.Document) string {
	location := ""
	eachTextNode(doc, func(n *html.Node) bool {
		if !locationLabelRe.MatchString(n.Data) {
			return true
		}
		parent := n.Parent
		if parent == nil || parent.NextSibling == nil {
			return true
		}
		sib := parent.NextSibling
		if len(renderNode(sib)) >= maxLocationRaw {
			return true
		}
		if text := collapse(nodeText(sib)); text != "" {
			location = text
			return false
		}
		return true
	})
	return location
}

// extractDate scans text nodes near posted/date labels, matches the first of
// the three accepted date shapes in the enclosing element's text, and
// re-emits it as an ISO calendar date. Unparseable matches stay raw.
func extractDate(doc *goquery.Document) string {
	raw := ""
	eachTextNode(doc, func(n *html.Node) bool {
		if !dateLabelRe.MatchString(n.Data) {
			return true
		}
		if n.Parent == nil {
			return true
		}
		if m := dateShapeRe.FindString(collapse(nodeText(n.Parent))); m != "" {
			raw = m
			return false
		}
		return true
	})
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

// extractSnippet tries the description-container selectors in order, then
// falls back to the longest paragraph-ish text on the page. Output is capped
// at maxSnippetLen characters with a trailing ellipsis when truncated.
func extractSnippet(doc *goquery.Document) string {
	text := ""
	for _, sel := range snippetSelectors {
		node := doc.Find(sel).First()
		if node.Length() > 0 {
			text = collapse(node.Text())
			break
		}
	}

	if text == "" {
		doc.Find("p, div").Each(func(_ int, s *goquery.Selection) {
			candidate := collapse(s.Text())
			if len(candidate) > minFallbackText && len(candidate) > len(text) {
				text = candidate
			}
		})
	}

	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) > maxSnippetLen {
		return string(runes[:maxSnippetLen]) + "..."
	}
	return text
}

// eachTextNode walks every text node in document order. visit returns false
// to stop the walk.
func eachTextNode(doc *goquery.Document, visit func(*html.Node) bool) {
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.TextNode && !visit(n) {
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	for _, root := range doc.Nodes {
		if !walk(root) {
			return
		}
	}
}

// nodeText concatenates all text under n, n itself included. Child pieces
// are space-separated so adjacent inline elements don't fuse into one word.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
		sb.WriteByte(' ')
	}
	return sb.String()
}

// renderNode renders n back to markup; used only for length checks.
func renderNode(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

// collapse strips and collapses all whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
