package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhigl/jobscout/internal/model"
)

func TestWorkdayFetchPostings(t *testing.T) {
	var gotPath string
	var gotReq workdayListingRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total": 2,
			"jobPostings": [
				{
					"title": "Senior Software Engineer",
					"externalPath": "/job/Bengaluru/Senior-Software-Engineer_JR100",
					"locationsText": "Bengaluru, India",
					"bulletFields": {"jobId": "JR100"},
					"jobFamily": "Engineering"
				},
				{
					"title": "Audit Manager",
					"externalPath": "/job/London/Audit-Manager_JR200",
					"locationsText": "London, UK"
				}
			]
		}`))
	}))
	defer srv.Close()

	a := NewWorkdayAdapter("testco.wd1.myworkdayjobs.com", "External_Careers", "testco", "engineer", srv.Client())
	a.baseURL = srv.URL

	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/wday/cxs/testco/External_Careers/jobs" {
		t.Errorf("unexpected request path %q", gotPath)
	}
	if gotReq.SearchText != "engineer" {
		t.Errorf("expected searchText engineer, got %q", gotReq.SearchText)
	}
	if _, ok := gotReq.AppliedFacets["Country"]; !ok {
		t.Error("expected Country facet in request")
	}

	if len(postings) != 1 {
		t.Fatalf("expected 1 posting (India only), got %d", len(postings))
	}
	p := postings[0]
	if p.Company != "Testco" {
		t.Errorf("expected company Testco, got %s", p.Company)
	}
	if p.JobID != "JR100" {
		t.Errorf("expected job_id JR100, got %q", p.JobID)
	}
	if p.URL != "https://testco.myworkdayjobs.com/job/Bengaluru/Senior-Software-Engineer_JR100" {
		t.Errorf("unexpected url %q", p.URL)
	}
}

func TestWorkdayFetchHTTPErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad facet"}`))
	}))
	defer srv.Close()

	a := NewWorkdayAdapter("testco.wd1.myworkdayjobs.com", "External_Careers", "testco", "", srv.Client())
	a.baseURL = srv.URL

	_, err := a.FetchPostings(context.Background())
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %v", err)
	}
	if httpErr.Body != `{"error":"bad facet"}` {
		t.Errorf("expected response body in error, got %q", httpErr.Body)
	}
}

func TestNormalizeWorkday(t *testing.T) {
	tests := []struct {
		name string
		row  workdayPosting
		want *model.JobPosting // nil means dropped
	}{
		{
			name: "url rewritten from relative external path",
			row: workdayPosting{
				Title:         "Platform Engineer",
				LocationsText: "Mumbai, India",
				ExternalPath:  "/job/123",
			},
			want: &model.JobPosting{
				Source:   model.SourceWorkday,
				Company:  "Pwc",
				Title:    "Platform Engineer",
				Location: "Mumbai, India",
				URL:      "https://pwc.myworkdayjobs.com/job/123",
			},
		},
		{
			name: "location synthesized from structured locations",
			row: workdayPosting{
				Title:     "Data Engineer",
				Locations: []workdayLocation{{City: "Bengaluru, India"}, {City: "Pune"}},
			},
			want: &model.JobPosting{
				Source:   model.SourceWorkday,
				Company:  "Pwc",
				Title:    "Data Engineer",
				Location: "Bengaluru, India, Pune",
			},
		},
		{
			name: "title facet fallback",
			row: workdayPosting{
				TitleFacet:    "SRE",
				LocationsText: "Hyderabad, India",
			},
			want: &model.JobPosting{
				Source:   model.SourceWorkday,
				Company:  "Pwc",
				Title:    "SRE",
				Location: "Hyderabad, India",
			},
		},
		{
			name: "non-india location dropped",
			row: workdayPosting{
				Title:         "Engineer",
				LocationsText: "Dublin, Ireland",
			},
			want: nil,
		},
		{
			name: "missing location dropped",
			row:  workdayPosting{Title: "Engineer"},
			want: nil,
		},
		{
			name: "missing title skipped",
			row:  workdayPosting{LocationsText: "Delhi, India"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWorkday([]workdayPosting{tt.row}, "pwc")
			if tt.want == nil {
				if len(got) != 0 {
					t.Fatalf("expected record to be dropped, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 posting, got %d", len(got))
			}
			p := got[0]
			if p.Company != tt.want.Company || p.Title != tt.want.Title ||
				p.Location != tt.want.Location || p.URL != tt.want.URL {
				t.Errorf("got %+v, want %+v", p, *tt.want)
			}
		})
	}
}

func TestBulletJobID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"map with string jobId", `{"jobId": "JR42"}`, "JR42"},
		{"map with numeric jobId", `{"jobId": 42}`, "42"},
		{"array-shaped bulletFields tolerated", `["Full-Time"]`, ""},
		{"absent", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bulletJobID(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("bulletJobID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
