package ai

import (
	"context"
	"strings"
	"testing"
)

func TestLLMResearcherBuildsPromptFromQuery(t *testing.T) {
	provider := &stubProvider{
		response: `{"summary": "Strong Go and Kubernetes background expected.", "skills": [
			{"name": "Go", "description": "Primary backend language", "proficiency_level": "Expert"},
			{"name": "Kubernetes", "description": "Deployment platform", "proficiency_level": "Intermediate"}
		], "feedback": "Highlight distributed systems work."}`,
	}
	r := NewLLMResearcher(provider)

	insights, err := r.Research(context.Background(), InsightQuery{
		Position:        "Platform Engineer",
		Companies:       []string{"Amazon", "Netflix"},
		YearsExperience: "5",
		Remote:          true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{"Platform Engineer", "Amazon, Netflix", "5 years", "remote"} {
		if !strings.Contains(provider.lastPrompt, fragment) {
			t.Errorf("prompt missing %q: %q", fragment, provider.lastPrompt)
		}
	}
	if provider.lastSchema != "job_insights" {
		t.Errorf("expected job_insights schema, got %q", provider.lastSchema)
	}

	if len(insights.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(insights.Skills))
	}
	if insights.Skills[0].Name != "Go" || insights.Skills[0].ProficiencyLevel != "Expert" {
		t.Errorf("unexpected first skill %+v", insights.Skills[0])
	}
	if insights.Feedback == "" {
		t.Error("expected feedback to survive decoding")
	}
}

func TestLLMResearcherRejectsMalformedResponse(t *testing.T) {
	r := NewLLMResearcher(&stubProvider{response: `{"summary":`})
	if _, err := r.Research(context.Background(), InsightQuery{Position: "SRE"}); err == nil {
		t.Fatal("expected error for malformed response")
	}
}
