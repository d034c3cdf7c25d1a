package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhigl/jobscout/internal/aggregate"
	"github.com/abhigl/jobscout/internal/ai"
	"github.com/abhigl/jobscout/internal/config"
)

var (
	cfgPath string
	debug   bool

	// Per-run aggregation overrides shared by fetch/browse.
	flagQuery     string
	flagCity      string
	flagWorkday   string
	flagNoAmazon  bool
	flagNoNetflix bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "India tech-job aggregator",
	Long:  "jobscout collects tech-job postings from Amazon, Workday tenants and Netflix,\nnormalizes them into one schema, and serves them over HTTP or your terminal.",
	// Default to `serve` so the bare binary runs the API server.
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSCOUT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagQuery, "query", "q", "", "search keywords (default from config)")
	cmd.Flags().StringVar(&flagCity, "city", "", "city narrowing for Amazon (e.g. Bengaluru)")
	cmd.Flags().StringVar(&flagWorkday, "workday", "", "workday tenant overrides: host:site:hint,host:site:hint")
	cmd.Flags().BoolVar(&flagNoAmazon, "no-amazon", false, "skip the Amazon source")
	cmd.Flags().BoolVar(&flagNoNetflix, "no-netflix", false, "skip the Netflix source")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSCOUT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSCOUT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// searchOptions merges per-run flags over the config defaults.
func searchOptions(cfg *config.Config) aggregate.Options {
	opts := aggregate.Options{
		Query:          cfg.Search.Query,
		City:           cfg.Search.City,
		WorkdayTargets: cfg.Search.WorkdayTargets,
		IncludeAmazon:  cfg.Search.IncludeAmazon,
		IncludeNetflix: cfg.Search.IncludeNetflix,
	}
	if flagQuery != "" {
		opts.Query = flagQuery
	}
	if flagCity != "" {
		opts.City = flagCity
	}
	if flagWorkday != "" {
		if targets := aggregate.ParseWorkdayTargets(flagWorkday); len(targets) > 0 {
			opts.WorkdayTargets = targets
		}
	}
	if flagNoAmazon {
		opts.IncludeAmazon = false
	}
	if flagNoNetflix {
		opts.IncludeNetflix = false
	}
	return opts
}

func newAggregator(logger *slog.Logger) *aggregate.Aggregator {
	return aggregate.New(&http.Client{Timeout: 30 * time.Second}, logger)
}

// setupAI builds the enforcer and researcher, or their disabled stand-ins.
func setupAI(cfg *config.Config, logger *slog.Logger) (ai.Enforcer, ai.Researcher) {
	if !cfg.AI.Enabled {
		return ai.NewNopEnforcer(), nil
	}
	provider := ai.NewOpenAIProvider(
		cfg.AI.BaseURL,
		cfg.AI.APIKey,
		cfg.AI.Model,
		&http.Client{Timeout: cfg.AI.Timeout},
	)
	logger.Info("ai enabled", "model", cfg.AI.Model)
	return ai.NewLLMEnforcer(provider, logger), ai.NewLLMResearcher(provider)
}
