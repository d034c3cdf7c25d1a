package model

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Source names used in JobPosting.Source.
const (
	SourceAmazon  = "amazon"
	SourceWorkday = "workday"
	SourceNetflix = "netflix"
)

// MaxSnippetLen is the rune cap for DescriptionSnippet.
const MaxSnippetLen = 240

// JobPosting is the unified representation of a job listing from any source.
// A posting is never mutated after normalization; downstream stages filter
// collections or wrap postings in larger structures, they do not edit fields.
type JobPosting struct {
	ID                 string        `json:"id,omitempty" bson:"_id,omitempty"`
	Source             string        `json:"source" bson:"source"`
	Company            string        `json:"company" bson:"company"`
	Title              string        `json:"title" bson:"title"`
	Location           string        `json:"location,omitempty" bson:"location,omitempty"`
	Remote             *bool         `json:"remote,omitempty" bson:"remote,omitempty"`
	TechStack          []string      `json:"tech_stack" bson:"tech_stack"`
	Compensation       *Compensation `json:"compensation,omitempty" bson:"compensation,omitempty"`
	URL                string        `json:"url,omitempty" bson:"url,omitempty"`
	JobID              string        `json:"job_id,omitempty" bson:"job_id,omitempty"`
	DescriptionSnippet string        `json:"description_snippet,omitempty" bson:"description_snippet,omitempty"`
}

// Compensation is an optional structured pay range. Most sources never
// populate it; no cross-source invariant is enforced beyond min <= max.
type Compensation struct {
	Currency string   `json:"currency,omitempty" bson:"currency,omitempty"` // ISO-4217-like, e.g. "INR"
	Min      *float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max      *float64 `json:"max,omitempty" bson:"max,omitempty"`
	Period   string   `json:"period,omitempty" bson:"period,omitempty"` // hour, day, month, year, total
	Notes    string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

// SkillDetail describes a single skill called out by the insight researcher.
type SkillDetail struct {
	Name             string `json:"name" bson:"name"`
	Description      string `json:"description" bson:"description"`
	ProficiencyLevel string `json:"proficiency_level" bson:"proficiency_level"` // Beginner, Intermediate, Expert
	Category         string `json:"category,omitempty" bson:"category,omitempty"`
}

// JobInsights is the researcher's analysis of a set of postings or search
// parameters.
type JobInsights struct {
	ID       string        `json:"id,omitempty" bson:"_id,omitempty"`
	Summary  string        `json:"summary" bson:"summary"`
	Skills   []SkillDetail `json:"skills" bson:"skills"`
	Feedback string        `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Postings []JobPosting  `json:"postings,omitempty" bson:"postings,omitempty"`
}

// MultiJobInsights wraps several insight results, one per researched role.
type MultiJobInsights struct {
	Insights []JobInsights `json:"insights"`
}

// DerivePostingID returns a stable id for a posting: a SHA-1 over source and
// job_id (or source and url) when either exists, a random UUID otherwise.
func DerivePostingID(p JobPosting) string {
	seed := ""
	switch {
	case p.JobID != "":
		seed = p.Source + "|" + p.JobID
	case p.URL != "":
		seed = p.Source + "|" + p.URL
	default:
		return uuid.NewString()
	}
	sum := sha1.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// TruncateSnippet caps s at MaxSnippetLen runes. No ellipsis is appended.
func TruncateSnippet(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxSnippetLen {
		return s
	}
	return string(runes[:MaxSnippetLen])
}

// PostingFetcher fetches normalized postings from one source.
type PostingFetcher interface {
	FetchPostings(ctx context.Context) ([]JobPosting, error)
}

// PostingStore persists postings and supports retrieval/delete by id.
type PostingStore interface {
	SavePosting(ctx context.Context, p JobPosting) (string, error)
	ListPostings(ctx context.Context) ([]JobPosting, error)
	DeletePosting(ctx context.Context, id string) error
}

// InsightStore persists researcher output.
type InsightStore interface {
	SaveInsight(ctx context.Context, in JobInsights) (string, error)
	ListInsights(ctx context.Context) ([]JobInsights, error)
	DeleteInsight(ctx context.Context, id string) error
}

// SeenStore tracks which posting ids have been seen, for watch-mode dedup.
type SeenStore interface {
	HasSeen(postingID string) (bool, error)
	MarkSeen(postingID string) error
	Cleanup(olderThan time.Duration) error
}

// Notifier delivers newly discovered postings.
type Notifier interface {
	Notify(postings []JobPosting) error
}
