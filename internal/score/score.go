// Package score ranks candidate URLs against a company name to pick the most
// plausible official site. It is a relevance heuristic, not a guarantee.
package score

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/akapil/prospect/internal/urlutil"
)

var (
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
	goodTLDRe  = regexp.MustCompile(`\.(com|org|net|io|co|gov|edu)$`)
)

// PickBest returns the candidate whose domain best matches the company name,
// or "" for an empty candidate list.
//
// Score per candidate: +3 for each name token (lowercase alphanumeric runs
// longer than 2 chars) appearing as a substring of the domain, minus the path
// segment count capped at 3, plus 1 when the domain ends in a common TLD.
// Ties break to the lexicographically largest URL string so results are
// reproducible.
func PickBest(candidates []string, companyName string) string {
	if len(candidates) == 0 {
		return ""
	}

	tokens := nameTokens(companyName)

	best := ""
	bestScore := 0
	for _, cand := range candidates {
		s := scoreCandidate(cand, tokens)
		if best == "" || s > bestScore || (s == bestScore && cand > best) {
			best = cand
			bestScore = s
		}
	}
	return best
}

func scoreCandidate(cand string, tokens []string) int {
	d := urlutil.DomainOf(cand)
	score := 0
	for _, t := range tokens {
		if strings.Contains(d, t) {
			score += 3
		}
	}
	score -= min(pathSegments(cand), 3)
	if goodTLDRe.MatchString(d) {
		score++
	}
	return score
}

// nameTokens lowercases the name, splits on non-alphanumeric runs, and keeps
// tokens longer than 2 characters.
func nameTokens(name string) []string {
	cleaned := nonAlnumRe.ReplaceAllString(strings.ToLower(name), " ")
	var tokens []string
	for _, t := range strings.Fields(cleaned) {
		if len(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// pathSegments counts path segments; a root or empty path counts as one, so
// every candidate carries at least a -1 path penalty and deeper paths lose.
func pathSegments(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 1
	}
	return len(strings.Split(strings.Trim(u.Path, "/"), "/"))
}
