package resolve

import (
	"context"
	"regexp"
	"strings"

	"github.com/akapil/prospect/internal/urlutil"
)

// Hit is one detected ATS presence for a company.
type Hit struct {
	Label string
	URL   string
}

// DetectATS probes each configured provider with a site:<host> query and
// records the first result living on that host. Hits come back in provider
// table order, so "first hit" is deterministic. Providers with no hit are
// simply absent.
func (r *Resolver) DetectATS(ctx context.Context, companyName string) []Hit {
	var hits []Hit
	for _, p := range r.rules.Providers {
		results := r.searcher.Search(ctx, "site:"+p.Host+" "+companyName, r.rules.MaxATSResults)
		for _, u := range results {
			if strings.Contains(u, p.Host) {
				hits = append(hits, Hit{Label: p.Label, URL: urlutil.Normalize(u)})
				break
			}
		}
	}
	return hits
}

// pickATS applies the fixed priority order across detected hits; when none of
// the prioritized providers matched, the first hit in table order wins.
func (r *Resolver) pickATS(hits []Hit) string {
	for _, label := range r.rules.Priority {
		for _, h := range hits {
			if h.Label == label {
				return h.URL
			}
		}
	}
	if len(hits) > 0 {
		return hits[0].URL
	}
	return ""
}

// jobSearchPattern matches result URLs hosted on any prioritized ATS. Hosts
// lose their "apply." prefix so subdomain variants still match. Teamtailor
// boards sit on per-company subdomains and vanity hosts, so that entry
// matches the bare brand token rather than the full host.
func jobSearchPattern(rules Rules) *regexp.Regexp {
	inPriority := make(map[string]bool, len(rules.Priority))
	for _, label := range rules.Priority {
		inPriority[label] = true
	}

	var parts []string
	for _, p := range rules.Providers {
		if !inPriority[p.Label] {
			continue
		}
		part := strings.TrimPrefix(p.Host, "apply.")
		if p.Label == "teamtailor" {
			part = p.Label
		}
		parts = append(parts, regexp.QuoteMeta(part))
	}
	return regexp.MustCompile("(?i)" + strings.Join(parts, "|"))
}
