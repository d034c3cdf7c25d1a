package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhigl/jobscout/internal/model"
)

// stubProvider records the last prompt and returns canned output.
type stubProvider struct {
	lastPrompt string
	lastSchema string
	response   string
	err        error
}

func (s *stubProvider) Complete(_ context.Context, prompt, schemaName string, _ map[string]any) (string, error) {
	s.lastPrompt = prompt
	s.lastSchema = schemaName
	return s.response, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLLMEnforcerUnwrapsJobs(t *testing.T) {
	provider := &stubProvider{
		response: `{"jobs": [{"source": "amazon", "company": "Amazon", "title": "Backend Engineer", "tech_stack": ["java"]}]}`,
	}
	e := NewLLMEnforcer(provider, discardLogger())

	in := []model.JobPosting{{Source: model.SourceAmazon, Company: "amazon", Title: "backend engineer"}}
	got, err := e.Enforce(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Backend Engineer" {
		t.Fatalf("expected repaired posting back, got %+v", got)
	}
	if provider.lastSchema != "job_postings" {
		t.Errorf("expected job_postings schema, got %q", provider.lastSchema)
	}
	if !strings.Contains(provider.lastPrompt, `"title":"backend engineer"`) {
		t.Errorf("prompt missing serialized input: %q", provider.lastPrompt)
	}
}

func TestLLMEnforcerPropagatesProviderError(t *testing.T) {
	e := NewLLMEnforcer(&stubProvider{err: errors.New("rate limited")}, discardLogger())
	if _, err := e.Enforce(context.Background(), nil); err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestLLMEnforcerRejectsMalformedResponse(t *testing.T) {
	e := NewLLMEnforcer(&stubProvider{response: `not json`}, discardLogger())
	if _, err := e.Enforce(context.Background(), nil); err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestNopEnforcerReturnsInputUnchanged(t *testing.T) {
	in := []model.JobPosting{{Title: "A"}, {Title: "B"}}
	got, err := NewNopEnforcer().Enforce(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "A" || got[1].Title != "B" {
		t.Errorf("input altered: %+v", got)
	}
}
