package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhigl/jobscout/internal/browse"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Fetch postings and browse them in the terminal",
	RunE:  runBrowse,
}

func init() {
	addSearchFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postings := newAggregator(logger).Gather(ctx, searchOptions(cfg))
	if len(postings) == 0 {
		fmt.Println("no postings found")
		return nil
	}

	return browse.Run(postings)
}
