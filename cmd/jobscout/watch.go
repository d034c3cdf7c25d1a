package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhigl/jobscout/internal/model"
	"github.com/abhigl/jobscout/internal/notifier"
	"github.com/abhigl/jobscout/internal/scheduler"
	"github.com/abhigl/jobscout/internal/store"
	"github.com/abhigl/jobscout/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the search on an interval and notify about new postings",
	RunE:  runWatch,
}

func init() {
	addSearchFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("opening sqlite store: %w", err)
	}
	defer sqlStore.Close()

	if err := sqlStore.Cleanup(cfg.Watch.SeenMaxAge); err != nil {
		logger.Warn("seen-store cleanup failed", "error", err)
	}

	var n model.Notifier
	if cfg.Email.Enabled {
		n = notifier.NewEmailNotifier(notifier.EmailConfig{
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
			SMTPUser:   cfg.Email.SMTPUser,
			SMTPPass:   cfg.Email.SMTPPass,
			FromEmail:  cfg.Email.FromEmail,
			ToEmail:    cfg.Email.ToEmail,
		}, logger)
		logger.Info("using email notifier", "to", cfg.Email.ToEmail)
	} else {
		n = notifier.NewLogNotifier(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := watch.New(newAggregator(logger), searchOptions(cfg), sqlStore, n, logger)
	return scheduler.New(watcher, cfg.Watch.Interval, logger).Run(ctx)
}
