package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jfmyers9/chartthread/internal/charts"
	"github.com/jfmyers9/chartthread/internal/config"
	"github.com/jfmyers9/chartthread/internal/daemon"
	"github.com/jfmyers9/chartthread/internal/poster"
	"github.com/jfmyers9/chartthread/internal/thread"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// requestTimeout bounds every Spotify and X request
const requestTimeout = 30 * time.Second

// daemonCmd represents the daemon command
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the chart posting daemon",
	Long: `Run the daemon that posts the Spotify charts to X every 24 hours.

Each cycle the daemon will:
- Request a fresh Spotify access token (the whole cycle is skipped without one)
- Fetch the Top 33 Global and Top 33 Brasil playlists in order
- Post each chart as a title post followed by a chain of numbered replies
- Wait 24 hours after the cycle finishes, whatever the outcome

The daemon runs in the foreground and logs to stderr by default.
Use the --log-file flag to log to a file (useful for launchd).
Press Ctrl+C once to stop after the current request, twice to force exit.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Set up logging
	logger := setupLogger(logFile, logLevel)

	logger.Info().
		Str("version", version).
		Msg("Starting chartthread daemon")

	httpClient := &http.Client{Timeout: requestTimeout}

	xPoster, err := poster.NewX(xConfig(cfg, httpClient), logger)
	if err != nil {
		return fmt.Errorf("failed to create X client: %w", err)
	}

	d, err := newDaemon(cfg, httpClient, xPoster, logger)
	if err != nil {
		return err
	}

	// Run daemon (blocks until shutdown signal)
	if err := d.Run(context.Background()); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}

	logger.Info().Msg("Daemon stopped")
	return nil
}

// newDaemon wires the chart source and thread composer around p
func newDaemon(cfg *config.Config, httpClient *http.Client, p poster.Poster, logger zerolog.Logger) (*daemon.Daemon, error) {
	source, err := charts.NewSource(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, httpClient, logger)
	if err != nil {
		return nil, err
	}

	composer := thread.NewComposer(p, logger)

	return daemon.New(daemon.Config{
		Interval:   daemon.DefaultInterval,
		Charts:     daemon.DefaultCharts,
		HTTPClient: httpClient,
	}, source, composer, logger), nil
}

func xConfig(cfg *config.Config, httpClient *http.Client) poster.XConfig {
	return poster.XConfig{
		BearerToken:       cfg.Twitter.BearerToken,
		ConsumerKey:       cfg.Twitter.ConsumerKey,
		ConsumerSecret:    cfg.Twitter.ConsumerSecret,
		AccessToken:       cfg.Twitter.AccessToken,
		AccessTokenSecret: cfg.Twitter.AccessTokenSecret,
		HTTPClient:        httpClient,
	}
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}
