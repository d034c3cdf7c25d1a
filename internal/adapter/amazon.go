package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/abhigl/jobscout/internal/model"
	"github.com/abhigl/jobscout/internal/techstack"
)

const (
	amazonBaseURL = "https://www.amazon.jobs"
	amazonSearch  = "/en/search.json"

	amazonDefaultPageSize = 50
	amazonDefaultMaxPages = 5 // safety cap against runaway pagination, not a correctness bound
)

// amazonJob is one row of the amazon.jobs search response. Fields mirror the
// fallback-key chains used during normalization; missing keys decode to zero
// values and are treated as absent.
type amazonJob struct {
	ID                      any    `json:"id"`
	JobIDAlt                any    `json:"job_id"`
	Title                   string `json:"title"`
	JobTitle                string `json:"job_title"`
	NormalizedLocation      string `json:"normalized_location"`
	CityStateOrCountry      string `json:"city_state_or_country"`
	Location                string `json:"location"`
	JobPath                 string `json:"job_path"`
	CompanyName             string `json:"company_name"`
	BasicQualifications     string `json:"basic_qualifications"`
	PreferredQualifications string `json:"preferred_qualifications"`
	DescriptionSummary      string `json:"description_summary"`
	Description             string `json:"description"`
}

// amazonSearchResponse is the top-level amazon.jobs search response.
type amazonSearchResponse struct {
	Jobs []amazonJob `json:"jobs"`
}

// AmazonAdapter fetches India roles from the amazon.jobs search endpoint.
type AmazonAdapter struct {
	baseURL  string
	query    string
	locQuery string // optional city-narrowing string; "India" is sent upstream when empty
	pageSize int
	maxPages int
	client   *http.Client
}

// NewAmazonAdapter creates an adapter for the amazon.jobs search API.
// locQuery optionally narrows results to a city; pass "" for all of India.
func NewAmazonAdapter(query, locQuery string, client *http.Client) *AmazonAdapter {
	return &AmazonAdapter{
		baseURL:  amazonBaseURL,
		query:    query,
		locQuery: locQuery,
		pageSize: amazonDefaultPageSize,
		maxPages: amazonDefaultMaxPages,
		client:   client,
	}
}

// FetchPostings paginates the search endpoint, filters rows to India (and the
// optional city) client-side, and normalizes the survivors.
func (a *AmazonAdapter) FetchPostings(ctx context.Context) ([]model.JobPosting, error) {
	var rows []amazonJob
	for page := 0; page < a.maxPages; page++ {
		pageRows, err := a.fetchPage(ctx, page*a.pageSize)
		if err != nil {
			return nil, err
		}
		if len(pageRows) == 0 {
			break
		}
		rows = append(rows, pageRows...)
		if len(pageRows) < a.pageSize {
			// Short page: heuristic end-of-results signal.
			break
		}
	}

	kept := rows[:0]
	for _, r := range rows {
		if !isIndiaLocation(amazonLocation(r)) {
			continue
		}
		if a.locQuery != "" && !strings.Contains(strings.ToLower(amazonLocation(r)), strings.ToLower(a.locQuery)) {
			continue
		}
		kept = append(kept, r)
	}

	return normalizeAmazon(kept), nil
}

// fetchPage fetches a single page of search results at the given offset.
func (a *AmazonAdapter) fetchPage(ctx context.Context, offset int) ([]amazonJob, error) {
	u, err := url.Parse(a.baseURL + amazonSearch)
	if err != nil {
		return nil, fmt.Errorf("amazon search url: %w", err)
	}
	loc := a.locQuery
	if loc == "" {
		loc = "India"
	}
	q := u.Query()
	q.Set("base_query", a.query)
	q.Set("loc_query", loc)
	q.Set("result_limit", strconv.Itoa(a.pageSize))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("sort", "recent")
	for _, facet := range []string{
		"location", "business_category", "category", "schedule_type_id",
		"employee_class", "normalized_location", "job_function_id",
	} {
		q.Add("facets[]", facet)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("amazon fetch page (offset=%d): %w", offset, err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://www.amazon.jobs/en/search")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amazon fetch page (offset=%d): %w", offset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       readBodyExcerpt(resp.Body),
			Err:        fmt.Errorf("amazon fetch page (offset=%d): unexpected status %d", offset, resp.StatusCode),
		}
	}

	var searchResp amazonSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("amazon fetch page (offset=%d) decode: %w", offset, err)
	}
	return searchResp.Jobs, nil
}

// amazonLocation resolves the location-bearing field of a row, in priority
// order: normalized_location, city_state_or_country, location.
func amazonLocation(r amazonJob) string {
	if r.NormalizedLocation != "" {
		return r.NormalizedLocation
	}
	if r.CityStateOrCountry != "" {
		return r.CityStateOrCountry
	}
	return r.Location
}

// normalizeAmazon maps raw amazon.jobs rows into JobPostings. Rows without a
// resolvable title are skipped.
func normalizeAmazon(rows []amazonJob) []model.JobPosting {
	out := make([]model.JobPosting, 0, len(rows))
	for _, r := range rows {
		title := r.Title
		if title == "" {
			title = r.JobTitle
		}
		if title == "" {
			continue
		}

		company := r.CompanyName
		if company == "" {
			company = "Amazon"
		}

		jobURL := ""
		if r.JobPath != "" {
			jobURL = amazonBaseURL + r.JobPath
		}

		snippet := r.DescriptionSummary
		if snippet == "" {
			snippet = r.Description
		}
		if snippet == "" {
			snippet = title
		}

		out = append(out, model.JobPosting{
			Source:             model.SourceAmazon,
			Company:            company,
			Title:              title,
			Location:           amazonLocation(r),
			TechStack:          techstack.Infer(title + " " + r.BasicQualifications + " " + r.PreferredQualifications),
			URL:                jobURL,
			JobID:              stringID(r.ID, r.JobIDAlt),
			DescriptionSnippet: model.TruncateSnippet(extractText(snippet)),
		})
	}
	return out
}

// readBodyExcerpt reads up to 400 bytes of a response body for diagnostics.
func readBodyExcerpt(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 400))
	return string(b)
}
