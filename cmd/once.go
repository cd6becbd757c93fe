package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jfmyers9/chartthread/internal/config"
	"github.com/jfmyers9/chartthread/internal/poster"
	"github.com/jfmyers9/chartthread/internal/thread"
	"github.com/spf13/cobra"
)

var onceDryRun bool

// onceCmd represents the once command
var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single cycle and exit",
	Long: `Run a single fetch and post cycle, then exit.

With --dry-run the threads are printed to stdout instead of being posted,
and only the Spotify credentials are required.

Exit status is non-zero when the Spotify token could not be obtained or
a post failed.`,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(onceCmd)
	onceCmd.Flags().BoolVar(&onceDryRun, "dry-run", false, "Print threads to stdout instead of posting")
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if onceDryRun {
		err = cfg.ValidateSpotify()
	} else {
		err = cfg.Validate()
	}
	if err != nil {
		return err
	}

	logger := setupLogger(logFile, logLevel)
	httpClient := &http.Client{Timeout: requestTimeout}

	var p poster.Poster
	if onceDryRun {
		p = poster.NewConsole(cmd.OutOrStdout(), thread.MaxPostLength)
	} else {
		p, err = poster.NewX(xConfig(cfg, httpClient), logger)
		if err != nil {
			return fmt.Errorf("failed to create X client: %w", err)
		}
	}

	d, err := newDaemon(cfg, httpClient, p, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := d.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("cycle failed: %w", err)
	}
	if !report.Authenticated {
		return fmt.Errorf("cycle skipped: %w", report.AuthErr)
	}

	for _, s := range report.Skipped {
		if s.Reason != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %s: %v\n", s.Chart.Title, s.Reason)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %s: chart is empty\n", s.Chart.Title)
		}
	}
	for _, t := range report.Published {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ %s: %d posts (root %s)\n", t.Chart.Title, len(t.PostIDs), t.PostIDs[0])
	}

	return nil
}
