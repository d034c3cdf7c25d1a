// Package aggregate fans out to all configured job sources concurrently and
// collects their normalized postings, tolerating individual source failures.
package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhigl/jobscout/internal/adapter"
	"github.com/abhigl/jobscout/internal/model"
)

// requestTimeout is the per-request budget each source's HTTP client gets.
const requestTimeout = 30 * time.Second

// WorkdayTarget identifies one Workday tenant career site.
type WorkdayTarget struct {
	Host        string // fully qualified tenant subdomain
	Site        string // external site slug
	CompanyHint string // short tenant name
}

// DefaultWorkdayTargets is used when no tenant override is supplied.
var DefaultWorkdayTargets = []WorkdayTarget{
	{Host: "pwc.wd3.myworkdayjobs.com", Site: "Global_Experienced_Careers", CompanyHint: "pwc"},
}

// Options configures one aggregation run.
type Options struct {
	Query          string
	City           string // optional city-narrowing string for Amazon
	WorkdayTargets []WorkdayTarget
	IncludeAmazon  bool
	IncludeNetflix bool
}

// SourceTask pairs a fetcher with a name used in failure logs.
type SourceTask struct {
	Name    string
	Fetcher model.PostingFetcher
}

// Aggregator runs concurrent fetches across all enabled sources.
type Aggregator struct {
	client *http.Client
	logger *slog.Logger
}

// New creates an aggregator. Pass a nil client to get one with the default
// per-request timeout.
func New(client *http.Client, logger *slog.Logger) *Aggregator {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return &Aggregator{client: client, logger: logger}
}

// Gather collects postings from every enabled source. A failing source is
// logged and contributes nothing; it never aborts the run. Output order
// follows task launch order, with each source's postings contiguous in that
// source's own emission order.
func (a *Aggregator) Gather(ctx context.Context, opts Options) []model.JobPosting {
	return a.Collect(ctx, a.tasks(opts))
}

// Collect fans out one goroutine per task, waits for all of them, and
// concatenates the successful results.
func (a *Aggregator) Collect(ctx context.Context, tasks []SourceTask) []model.JobPosting {
	type result struct {
		postings []model.JobPosting
		err      error
	}
	results := make([]result, len(tasks))

	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			postings, err := task.Fetcher.FetchPostings(ctx)
			results[i] = result{postings: postings, err: err}
			// Failures are recorded, not returned: one source must never
			// cancel or fail its siblings.
			return nil
		})
	}
	g.Wait()

	var postings []model.JobPosting
	for i, res := range results {
		if res.err != nil {
			var httpErr *model.HTTPError
			if errors.As(res.err, &httpErr) {
				a.logger.Error("source fetch failed",
					"source", tasks[i].Name,
					"status", httpErr.StatusCode,
					"body", httpErr.Body,
					"error", res.err,
				)
			} else {
				a.logger.Error("source fetch failed", "source", tasks[i].Name, "error", res.err)
			}
			continue
		}
		a.logger.Info("source fetched", "source", tasks[i].Name, "postings", len(res.postings))
		postings = append(postings, res.postings...)
	}

	a.logger.Info("aggregation complete", "sources", len(tasks), "postings", len(postings))
	return postings
}

// tasks builds the fetcher set for one run from the options.
func (a *Aggregator) tasks(opts Options) []SourceTask {
	var tasks []SourceTask

	if opts.IncludeAmazon {
		tasks = append(tasks, SourceTask{
			Name:    model.SourceAmazon,
			Fetcher: adapter.NewAmazonAdapter(opts.Query, opts.City, a.client),
		})
	}

	targets := opts.WorkdayTargets
	if len(targets) == 0 {
		targets = DefaultWorkdayTargets
	}
	for _, t := range targets {
		tasks = append(tasks, SourceTask{
			Name:    model.SourceWorkday + ":" + t.Host + "/" + t.Site,
			Fetcher: adapter.NewWorkdayAdapter(t.Host, t.Site, t.CompanyHint, opts.Query, a.client),
		})
	}

	if opts.IncludeNetflix {
		tasks = append(tasks, SourceTask{
			Name:    model.SourceNetflix,
			Fetcher: adapter.NewNetflixAdapter(a.client),
		})
	}

	return tasks
}

// ParseWorkdayTargets parses a "host:site:hint,host:site:hint" override
// string. Entries that do not split into exactly three parts are dropped
// silently rather than failing the whole request.
func ParseWorkdayTargets(s string) []WorkdayTarget {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var targets []WorkdayTarget
	for _, part := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 3 {
			continue
		}
		if fields[0] == "" || fields[1] == "" || fields[2] == "" {
			continue
		}
		targets = append(targets, WorkdayTarget{
			Host:        fields[0],
			Site:        fields[1],
			CompanyHint: fields[2],
		})
	}
	return targets
}
