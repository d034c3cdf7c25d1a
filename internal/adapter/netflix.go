package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/abhigl/jobscout/internal/model"
	"github.com/abhigl/jobscout/internal/techstack"
)

const netflixCareersURL = "https://explore.jobs.netflix.net/careers"

// netflixPositionsRegex locates the "positions" JSON fragment embedded in the
// careers page script payload.
var netflixPositionsRegex = regexp.MustCompile(`(?s)("positions"\s*:\s*\[.*?])`)

// netflixPosition is one entry of the embedded positions array.
type netflixPosition struct {
	ID                   any    `json:"id"`
	ATSJobID             any    `json:"ats_job_id"`
	Name                 string `json:"name"`
	Location             string `json:"location"`
	CanonicalPositionURL string `json:"canonicalPositionUrl"`
}

type netflixPositionsBlob struct {
	Positions []netflixPosition `json:"positions"`
}

// NetflixAdapter fetches India roles from the Netflix careers microsite. The
// position list is not served by a structured endpoint; it is scraped out of
// the page via pattern match.
type NetflixAdapter struct {
	careersURL string // overridable in tests
	client     *http.Client
}

// NewNetflixAdapter creates an adapter for the Netflix careers microsite.
func NewNetflixAdapter(client *http.Client) *NetflixAdapter {
	return &NetflixAdapter{
		careersURL: netflixCareersURL,
		client:     client,
	}
}

// FetchPostings downloads the careers page and extracts the embedded position
// list. A missing pattern match is indistinguishable from a layout change, so
// it yields an empty result rather than an error.
func (a *NetflixAdapter) FetchPostings(ctx context.Context) ([]model.JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.careersURL, nil)
	if err != nil {
		return nil, fmt.Errorf("netflix careers request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("netflix careers fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       readBodyExcerpt(resp.Body),
			Err:        fmt.Errorf("netflix careers fetch: unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("netflix careers read: %w", err)
	}

	return normalizeNetflix(extractNetflixPositions(body)), nil
}

// extractNetflixPositions pulls the positions array out of the page body.
// Returns nil when the pattern is absent or the fragment does not parse.
func extractNetflixPositions(body []byte) []netflixPosition {
	m := netflixPositionsRegex.FindSubmatch(body)
	if m == nil {
		return nil
	}
	var blob netflixPositionsBlob
	if err := json.Unmarshal(append(append([]byte("{"), m[1]...), '}'), &blob); err != nil {
		return nil
	}
	return blob.Positions
}

// normalizeNetflix maps raw positions into JobPostings, keeping only India
// roles. The title doubles as the description snippet since the microsite
// exposes no richer description.
func normalizeNetflix(rows []netflixPosition) []model.JobPosting {
	out := make([]model.JobPosting, 0, len(rows))
	for _, p := range rows {
		if !isIndiaLocation(p.Location) {
			continue
		}
		if p.Name == "" {
			continue
		}
		out = append(out, model.JobPosting{
			Source:             model.SourceNetflix,
			Company:            "Netflix",
			Title:              p.Name,
			Location:           p.Location,
			TechStack:          techstack.Infer(p.Name),
			URL:                p.CanonicalPositionURL,
			JobID:              stringID(p.ATSJobID, p.ID),
			DescriptionSnippet: model.TruncateSnippet(p.Name),
		})
	}
	return out
}
