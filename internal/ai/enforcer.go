package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhigl/jobscout/internal/model"
)

// Enforcer validates and repairs a posting list via an external service.
// Callers must treat failures as non-fatal and fall back to their input.
type Enforcer interface {
	Enforce(ctx context.Context, postings []model.JobPosting) ([]model.JobPosting, error)
}

// postingsSchema constrains the enforcer response to a JSON object wrapping a
// JobPosting array (structured outputs require an object at the top level).
var postingsSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"jobs": map[string]any{
			"type":  "array",
			"items": postingSchema,
		},
	},
	"required": []string{"jobs"},
}

var postingSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"source":              map[string]any{"type": "string"},
		"company":             map[string]any{"type": "string"},
		"title":               map[string]any{"type": "string"},
		"location":            map[string]any{"type": "string"},
		"tech_stack":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"url":                 map[string]any{"type": "string"},
		"job_id":              map[string]any{"type": "string"},
		"description_snippet": map[string]any{"type": "string"},
	},
	"required": []string{"source", "company", "title"},
}

const enforcerPrompt = "Validate and strictly conform the following records to the JobPosting shape. " +
	"Do not invent salary; keep tech_stack entries only when clearly evidenced in title or description.\n\n"

// LLMEnforcer implements Enforcer on top of an LLMProvider.
type LLMEnforcer struct {
	provider LLMProvider
	logger   *slog.Logger
}

// NewLLMEnforcer creates an enforcer backed by the given provider.
func NewLLMEnforcer(provider LLMProvider, logger *slog.Logger) *LLMEnforcer {
	return &LLMEnforcer{provider: provider, logger: logger}
}

// Enforce sends the postings through the LLM and returns the repaired list.
// Any error leaves the caller's original list authoritative.
func (e *LLMEnforcer) Enforce(ctx context.Context, postings []model.JobPosting) ([]model.JobPosting, error) {
	payload, err := json.Marshal(postings)
	if err != nil {
		return nil, fmt.Errorf("marshal postings: %w", err)
	}

	raw, err := e.provider.Complete(ctx, enforcerPrompt+string(payload), "job_postings", postingsSchema)
	if err != nil {
		return nil, fmt.Errorf("llm complete: %w", err)
	}

	var wrapped struct {
		Jobs []model.JobPosting `json:"jobs"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, fmt.Errorf("unmarshal enforced postings: %w", err)
	}

	e.logger.Debug("enforcement complete", "in", len(postings), "out", len(wrapped.Jobs))
	return wrapped.Jobs, nil
}

// NopEnforcer returns its input unchanged. Used when ai is disabled.
type NopEnforcer struct{}

func NewNopEnforcer() *NopEnforcer { return &NopEnforcer{} }

func (NopEnforcer) Enforce(_ context.Context, postings []model.JobPosting) ([]model.JobPosting, error) {
	return postings, nil
}
