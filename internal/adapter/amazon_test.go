package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/abhigl/jobscout/internal/model"
)

func indiaRows(n int) []amazonJob {
	rows := make([]amazonJob, n)
	for i := range rows {
		rows[i] = amazonJob{
			Title:              fmt.Sprintf("Software Engineer %d", i),
			NormalizedLocation: "Bengaluru, India",
		}
	}
	return rows
}

func newAmazonTestAdapter(srv *httptest.Server, city string, pageSize int) *AmazonAdapter {
	a := NewAmazonAdapter("Full Stack", city, srv.Client())
	a.baseURL = srv.URL
	a.pageSize = pageSize
	return a
}

func TestAmazonPaginationStopsOnEmptyPage(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		var rows []amazonJob
		if offset == 0 {
			rows = indiaRows(3) // exactly one full page
		}
		json.NewEncoder(w).Encode(amazonSearchResponse{Jobs: rows})
	}))
	defer srv.Close()

	a := newAmazonTestAdapter(srv, "", 3)
	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 2 {
		t.Errorf("expected exactly 2 page requests, got %d", requests)
	}
	if len(postings) != 3 {
		t.Errorf("expected 3 postings, got %d", len(postings))
	}
}

func TestAmazonPaginationStopsOnShortPage(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(amazonSearchResponse{Jobs: indiaRows(2)})
	}))
	defer srv.Close()

	a := newAmazonTestAdapter(srv, "", 3)
	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected 1 page request after a short page, got %d", requests)
	}
	if len(postings) != 2 {
		t.Errorf("expected 2 postings, got %d", len(postings))
	}
}

func TestAmazonDropsNonIndiaAndAppliesCityFilter(t *testing.T) {
	rows := []amazonJob{
		{Title: "Engineer A", NormalizedLocation: "Bengaluru, India"},
		{Title: "Engineer B", CityStateOrCountry: "Pune, India"},
		{Title: "Engineer C", Location: "Seattle, WA"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(amazonSearchResponse{Jobs: rows})
	}))
	defer srv.Close()

	a := newAmazonTestAdapter(srv, "Bengaluru", 50)
	postings, err := a.FetchPostings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("expected 1 posting, got %d", len(postings))
	}
	if postings[0].Title != "Engineer A" {
		t.Errorf("expected Engineer A, got %s", postings[0].Title)
	}
}

func TestAmazonFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	a := newAmazonTestAdapter(srv, "", 3)
	_, err := a.FetchPostings(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", httpErr.StatusCode)
	}
	if httpErr.Body != "upstream down" {
		t.Errorf("expected body excerpt, got %q", httpErr.Body)
	}
}

func TestNormalizeAmazon(t *testing.T) {
	rows := []amazonJob{
		{
			// Full record: explicit company, path, qualifications, summary.
			ID:                  float64(123),
			Title:               "Backend Engineer",
			NormalizedLocation:  "Hyderabad, India",
			JobPath:             "/en/jobs/123",
			CompanyName:         "Amazon Web Services",
			BasicQualifications: "Experience with Java and AWS",
			DescriptionSummary:  "<p>Build services at scale.</p>",
		},
		{
			// Sparse record: title fallback, company default, snippet defaults to title.
			JobTitle: "SDE II",
			Location: "Chennai, India",
		},
		{
			// No resolvable title: skipped.
			NormalizedLocation: "Mumbai, India",
		},
	}

	postings := normalizeAmazon(rows)
	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}

	p := postings[0]
	if p.Source != model.SourceAmazon {
		t.Errorf("expected source amazon, got %s", p.Source)
	}
	if p.Company != "Amazon Web Services" {
		t.Errorf("expected explicit company, got %s", p.Company)
	}
	if p.URL != "https://www.amazon.jobs/en/jobs/123" {
		t.Errorf("unexpected url %q", p.URL)
	}
	if p.JobID != "123" {
		t.Errorf("expected job_id 123, got %q", p.JobID)
	}
	if p.DescriptionSnippet != "Build services at scale." {
		t.Errorf("expected stripped snippet, got %q", p.DescriptionSnippet)
	}
	wantStack := map[string]bool{"java": true, "aws": true}
	for _, tag := range p.TechStack {
		if !wantStack[tag] {
			t.Errorf("unexpected tag %q", tag)
		}
		delete(wantStack, tag)
	}
	if len(wantStack) > 0 {
		t.Errorf("missing tags: %v", wantStack)
	}

	sparse := postings[1]
	if sparse.Title != "SDE II" {
		t.Errorf("expected job_title fallback, got %q", sparse.Title)
	}
	if sparse.Company != "Amazon" {
		t.Errorf("expected default company, got %q", sparse.Company)
	}
	if sparse.URL != "" {
		t.Errorf("expected no url, got %q", sparse.URL)
	}
	if sparse.DescriptionSnippet != "SDE II" {
		t.Errorf("expected snippet to default to title, got %q", sparse.DescriptionSnippet)
	}
}
