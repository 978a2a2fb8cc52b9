// Package urlutil canonicalizes URL-ish strings and extracts domain identity.
// Nothing here touches the network.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

var schemeRe = regexp.MustCompile(`^https?://`)

// Normalize turns a free-text URL into a consistent absolute form: trimmed,
// https:// prepended when no scheme is present, trailing slashes stripped.
// Empty input yields "". Normalize is idempotent.
func Normalize(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if !schemeRe.MatchString(u) {
		u = "https://" + u
	}
	return strings.TrimRight(u, "/")
}

// DomainOf returns the lowercased host of rawURL with a leading "www."
// stripped. Any parse failure yields "" — it never fails upward.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	return strings.TrimPrefix(host, "www.")
}
