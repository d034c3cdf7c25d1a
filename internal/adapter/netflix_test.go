package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const netflixSamplePage = `<html><head><script>
window.__APP_DATA__ = {"some": "noise", "positions": [
	{"id": 790298, "ats_job_id": "JR-790298", "name": "Senior Software Engineer, Streaming",
	 "location": "Mumbai, India", "canonicalPositionUrl": "https://explore.jobs.netflix.net/careers/job/790298"},
	{"id": 790299, "name": "Content Analyst", "location": "Los Gatos, CA"},
	{"id": 790300, "name": "", "location": "Delhi, India"}
], "trailing": true};
</script></head><body></body></html>`

func TestNetflixFetchPostings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(netflixSamplePage))
	}))
	defer srv.Close()

	a := NewNetflixAdapter(srv.Client())
	a.careersURL = srv.URL

	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("expected 1 posting (India with a name), got %d", len(postings))
	}
	p := postings[0]
	if p.Company != "Netflix" {
		t.Errorf("expected company Netflix, got %s", p.Company)
	}
	if p.Title != "Senior Software Engineer, Streaming" {
		t.Errorf("unexpected title %q", p.Title)
	}
	if p.JobID != "JR-790298" {
		t.Errorf("expected ats_job_id preferred, got %q", p.JobID)
	}
	if p.URL != "https://explore.jobs.netflix.net/careers/job/790298" {
		t.Errorf("unexpected url %q", p.URL)
	}
	if p.DescriptionSnippet != p.Title {
		t.Errorf("expected snippet to mirror title, got %q", p.DescriptionSnippet)
	}
}

func TestNetflixMissingPatternYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>new layout, no embedded payload</body></html>`))
	}))
	defer srv.Close()

	a := NewNetflixAdapter(srv.Client())
	a.careersURL = srv.URL

	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("a layout change should not be an error, got %v", err)
	}
	if len(postings) != 0 {
		t.Errorf("expected no postings, got %d", len(postings))
	}
}

func TestExtractNetflixPositions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid fragment", `{"positions": [{"name": "A"}, {"name": "B"}]}`, 2},
		{"no match", `{"openings": []}`, 0},
		{"malformed fragment", `"positions": [{"name": }]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractNetflixPositions([]byte(tt.body))
			if len(got) != tt.want {
				t.Errorf("expected %d positions, got %d", tt.want, len(got))
			}
		})
	}
}
