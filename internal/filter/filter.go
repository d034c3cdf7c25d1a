// Package filter narrows an aggregated posting list by free-text query and
// location.
package filter

import (
	"strings"

	"github.com/abhigl/jobscout/internal/model"
)

// Apply filters postings by query and location. When both are empty the input
// is returned unchanged. The query is tokenized on whitespace and a posting
// matches if any token appears in its searchable blob (OR across tokens, to
// avoid over-filtering). The location filter is a case-insensitive substring
// test against the posting's location; a posting without a location never
// matches a non-empty location filter. A posting must pass both dimensions.
func Apply(postings []model.JobPosting, query, location string) []model.JobPosting {
	if query == "" && location == "" {
		return postings
	}

	tokens := strings.Fields(strings.ToLower(query))
	loc := strings.ToLower(location)

	out := make([]model.JobPosting, 0, len(postings))
	for _, p := range postings {
		if !matchesQuery(p, tokens) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(p.Location), loc) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p model.JobPosting, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	blob := strings.ToLower(strings.Join([]string{
		p.Title,
		p.Company,
		p.Location,
		strings.Join(p.TechStack, " "),
		p.DescriptionSnippet,
	}, " "))
	for _, t := range tokens {
		if strings.Contains(blob, t) {
			return true
		}
	}
	return false
}
