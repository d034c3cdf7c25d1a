package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhigl/jobscout/internal/api"
	"github.com/abhigl/jobscout/internal/cache"
	"github.com/abhigl/jobscout/internal/model"
	"github.com/abhigl/jobscout/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Document store: Mongo when configured, local SQLite otherwise.
	var (
		postings model.PostingStore
		insights model.InsightStore
	)
	if uri := cfg.Mongo.ResolvedURI(); uri != "" {
		mongoStore, err := store.NewMongoStore(ctx, uri)
		if err != nil {
			return fmt.Errorf("opening mongo store: %w", err)
		}
		defer mongoStore.Close(context.Background())
		postings, insights = mongoStore, mongoStore
		logger.Info("using mongodb store")
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("opening sqlite store: %w", err)
		}
		defer sqlStore.Close()
		postings, insights = sqlStore, sqlStore
		logger.Info("using sqlite store", "path", cfg.SQLitePath)
	}

	var resultCache cache.ResultCache = cache.NewNopCache()
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL, logger)
		defer redisCache.Close()
		resultCache = redisCache
		logger.Info("result cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL.String())
	}

	enforcer, researcher := setupAI(cfg, logger)

	server := api.NewServer(
		newAggregator(logger),
		enforcer,
		researcher,
		postings,
		insights,
		resultCache,
		cfg.Search.Query,
		logger,
	)

	return server.ListenAndServe(ctx, cfg.ListenAddr)
}
