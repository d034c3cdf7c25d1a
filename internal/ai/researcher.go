package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhigl/jobscout/internal/model"
)

// InsightQuery describes the role a candidate wants researched.
type InsightQuery struct {
	Position        string
	Companies       []string
	YearsExperience string
	Remote          bool
}

// Researcher produces skill insights for a role query.
type Researcher interface {
	Research(ctx context.Context, q InsightQuery) (model.JobInsights, error)
}

// insightsSchema constrains the researcher response to the JobInsights shape.
var insightsSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"summary": map[string]any{"type": "string"},
		"skills": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"name":              map[string]any{"type": "string"},
					"description":       map[string]any{"type": "string"},
					"proficiency_level": map[string]any{"type": "string", "enum": []string{"Beginner", "Intermediate", "Expert"}},
					"category":          map[string]any{"type": "string"},
				},
				"required": []string{"name", "description", "proficiency_level"},
			},
		},
		"feedback": map[string]any{"type": "string"},
	},
	"required": []string{"summary", "skills"},
}

// LLMResearcher implements Researcher on top of an LLMProvider.
type LLMResearcher struct {
	provider LLMProvider
}

// NewLLMResearcher creates a researcher backed by the given provider.
func NewLLMResearcher(provider LLMProvider) *LLMResearcher {
	return &LLMResearcher{provider: provider}
}

// Research asks the LLM for a skills breakdown of the queried role.
func (r *LLMResearcher) Research(ctx context.Context, q InsightQuery) (model.JobInsights, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Provide job insights (required skills, proficiency levels, candidate feedback) for a %s position", q.Position)
	if len(q.Companies) > 0 {
		fmt.Fprintf(&b, " at companies like %s", strings.Join(q.Companies, ", "))
	}
	if q.YearsExperience != "" {
		fmt.Fprintf(&b, " with %s years of experience", q.YearsExperience)
	}
	if q.Remote {
		b.WriteString(" in a remote role")
	}
	b.WriteString(". Summarize the required skills in the summary field and list them in skills.")

	raw, err := r.provider.Complete(ctx, b.String(), "job_insights", insightsSchema)
	if err != nil {
		return model.JobInsights{}, fmt.Errorf("llm complete: %w", err)
	}

	var insights model.JobInsights
	if err := json.Unmarshal([]byte(raw), &insights); err != nil {
		return model.JobInsights{}, fmt.Errorf("unmarshal insights: %w", err)
	}
	return insights, nil
}
