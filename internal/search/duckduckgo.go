// Package search issues text queries against DuckDuckGo's HTML endpoint and
// returns result URLs. The engine is an untrusted external oracle: any
// provider-level failure (transport, status, markup) yields an empty slice,
// never an error, so callers treat "no results" as a normal outcome.
package search

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akapil/prospect/internal/model"
)

const htmlEndpoint = "https://duckduckgo.com/html/"

// DefaultMaxResults caps a query when the caller does not.
const DefaultMaxResults = 10

// DuckDuckGo scrapes the no-JS HTML results page.
type DuckDuckGo struct {
	fetcher model.Fetcher
	baseURL string
}

// NewDuckDuckGo returns a search provider backed by the given fetcher.
func NewDuckDuckGo(fetcher model.Fetcher) *DuckDuckGo {
	return &DuckDuckGo{fetcher: fetcher, baseURL: htmlEndpoint}
}

// SetBaseURL points the provider at a different endpoint. Tests use it to
// target an httptest server.
func (d *DuckDuckGo) SetBaseURL(u string) {
	d.baseURL = u
}

var _ model.Searcher = (*DuckDuckGo)(nil)

// Search returns up to max result URLs for query, in result-page order.
func (d *DuckDuckGo) Search(ctx context.Context, query string, max int) []string {
	if max <= 0 {
		max = DefaultMaxResults
	}

	page, ok := d.fetcher.Get(ctx, d.baseURL+"?q="+url.QueryEscape(query))
	if !ok || page.StatusCode < 200 || page.StatusCode > 299 {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil
	}

	var urls []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		urls = append(urls, decodeRedirect(href))
		return len(urls) < max
	})
	return urls
}

// decodeRedirect unwraps DuckDuckGo's /l/?uddg=<urlencoded> redirect links.
func decodeRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}
