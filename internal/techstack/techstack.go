// Package techstack infers technology tags from free text using a fixed
// keyword vocabulary. Matching is case-insensitive substring membership with
// no stemming or word-boundary enforcement, so a keyword appearing inside an
// unrelated word is a known false-positive.
package techstack

import "strings"

// entry pairs the canonical display form of a tag with its lower-cased match
// string. The table is initialized once and never mutated.
type entry struct {
	display string
	match   string
}

// vocabulary is the full controlled tag set, in canonical order. Tags may only
// come from this list; there are no free-form tags.
var vocabulary = buildVocabulary([]string{
	"python", "flask", "fastapi", "django",
	"javascript", "typescript", "react", "Next.js", "node",
	"java", "spring", "kotlin", "go", "golang", "rust", "swift", "swiftui",
	"aws", "gcp", "azure", "docker", "kubernetes", "postgres", "mysql",
	"mongodb", "redis", "graphql",
})

func buildVocabulary(display []string) []entry {
	out := make([]entry, 0, len(display))
	for _, d := range display {
		out = append(out, entry{display: d, match: strings.ToLower(d)})
	}
	return out
}

// Infer scans text for vocabulary keywords and returns the canonical display
// form of every keyword present. "Next.js" is the one entry whose display
// form differs from its match string; everything else is emitted lower-cased.
func Infer(text string) []string {
	blob := strings.ToLower(text)
	var tags []string
	for _, e := range vocabulary {
		if strings.Contains(blob, e.match) {
			tags = append(tags, e.display)
		}
	}
	return tags
}
