package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/abhigl/jobscout/internal/model"
	"github.com/abhigl/jobscout/internal/techstack"
)

const workdayDefaultLimit = 50

// workdayListingRequest is the POST body for the Workday CXS jobs endpoint.
type workdayListingRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

// workdayListingResponse is the response from the Workday CXS jobs endpoint.
type workdayListingResponse struct {
	Total       int              `json:"total"`
	JobPostings []workdayPosting `json:"jobPostings"`
}

// workdayPosting is one raw listing. bulletFields is kept raw because tenants
// disagree on its shape; see bulletJobID.
type workdayPosting struct {
	ID                    any               `json:"id"`
	Title                 string            `json:"title"`
	TitleFacet            string            `json:"title_facet"`
	LocationsText         string            `json:"locationsText"`
	Locations             []workdayLocation `json:"locations"`
	ExternalPath          string            `json:"externalPath"`
	ExternalPathTriggered string            `json:"externalPathTriggered"`
	BulletFields          json.RawMessage   `json:"bulletFields"`
	JobFamily             string            `json:"jobFamily"`
}

type workdayLocation struct {
	City string `json:"city"`
}

// WorkdayAdapter fetches India roles from one Workday tenant's external
// career site. The country facet requests server-side India filtering, but
// some tenants ignore it, so the normalizer re-filters by location text.
type WorkdayAdapter struct {
	baseURL     string // https://{host}; overridable in tests
	host        string // fully qualified tenant subdomain, e.g. pwc.wd3.myworkdayjobs.com
	site        string // external site slug, e.g. Global_Experienced_Careers
	companyHint string // short tenant name used for company display and URL rewriting
	searchText  string
	limit       int
	client      *http.Client
}

// NewWorkdayAdapter creates an adapter for one Workday tenant career site.
func NewWorkdayAdapter(host, site, companyHint, searchText string, client *http.Client) *WorkdayAdapter {
	return &WorkdayAdapter{
		baseURL:     "https://" + host,
		host:        host,
		site:        site,
		companyHint: companyHint,
		searchText:  searchText,
		limit:       workdayDefaultLimit,
		client:      client,
	}
}

// FetchPostings issues a single POST against the tenant's CXS jobs endpoint
// and normalizes the result. HTTP failures propagate with the response body
// attached for diagnosis.
func (a *WorkdayAdapter) FetchPostings(ctx context.Context) ([]model.JobPosting, error) {
	body := workdayListingRequest{
		AppliedFacets: map[string]any{"Country": []string{"IN"}},
		Limit:         a.limit,
		Offset:        0,
		SearchText:    a.searchText,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("workday listing marshal for %s: %w", a.companyHint, err)
	}

	url := fmt.Sprintf("%s/wday/cxs/%s/%s/jobs", a.baseURL, tenantID(a.host), a.site)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("workday listing request for %s: %w", a.companyHint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", a.baseURL)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("workday listing fetch for %s: %w", a.companyHint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       readBodyExcerpt(resp.Body),
			Err:        fmt.Errorf("workday listing fetch for %s: unexpected status %d", a.companyHint, resp.StatusCode),
		}
	}

	var listResp workdayListingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("workday listing decode for %s: %w", a.companyHint, err)
	}

	return normalizeWorkday(listResp.JobPostings, a.companyHint), nil
}

// tenantID extracts the CXS path segment from a tenant host:
// "pwc.wd3.myworkdayjobs.com" -> "pwc".
func tenantID(host string) string {
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}

// normalizeWorkday maps raw Workday listings into JobPostings, keeping only
// India roles. Listings without a resolvable title are skipped.
func normalizeWorkday(rows []workdayPosting, companyHint string) []model.JobPosting {
	out := make([]model.JobPosting, 0, len(rows))
	for _, r := range rows {
		title := r.Title
		if title == "" {
			title = r.TitleFacet
		}
		if title == "" {
			continue
		}

		loc := r.LocationsText
		if loc == "" {
			var cities []string
			for _, l := range r.Locations {
				if l.City != "" {
					cities = append(cities, l.City)
				}
			}
			loc = strings.Join(cities, ", ")
		}
		if !isIndiaLocation(loc) {
			continue
		}

		external := r.ExternalPath
		if external == "" {
			external = r.ExternalPathTriggered
		}
		if external != "" && strings.HasPrefix(external, "/") {
			external = fmt.Sprintf("https://%s.myworkdayjobs.com%s", companyHint, external)
		}

		out = append(out, model.JobPosting{
			Source:             model.SourceWorkday,
			Company:            capitalizeHint(companyHint),
			Title:              title,
			Location:           loc,
			TechStack:          techstack.Infer(title + " " + r.JobFamily),
			URL:                external,
			JobID:              stringID(bulletJobID(r.BulletFields), r.ID),
			DescriptionSnippet: model.TruncateSnippet(title),
		})
	}
	return out
}

// bulletJobID digs a jobId out of the bulletFields map. Tenants that emit
// bulletFields as an array (or omit it) yield "".
func bulletJobID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	return stringID(fields["jobId"])
}

func capitalizeHint(hint string) string {
	if hint == "" {
		return ""
	}
	return strings.ToUpper(hint[:1]) + hint[1:]
}
