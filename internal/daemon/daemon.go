package daemon

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jfmyers9/chartthread/internal/charts"
	"github.com/rs/zerolog"
)

// DefaultInterval is the pause between the end of one cycle and the start of the next
const DefaultInterval = 24 * time.Hour

// Chart is a playlist published as one thread per cycle
type Chart struct {
	Title      string
	PlaylistID string
	Limit      int
}

// DefaultCharts are the charts published every cycle, in order
var DefaultCharts = []Chart{
	{Title: "Top 33 Global Spotify", PlaylistID: "37i9dQZEVXbMDoHDwVN2tF", Limit: 33},
	{Title: "Top 33 Brasil Spotify", PlaylistID: "37i9dQZEVXbMXbN3EUUhlg", Limit: 33},
}

// Config holds daemon configuration
type Config struct {
	Interval   time.Duration // Wait after each cycle
	Charts     []Chart       // Charts to publish each cycle
	HTTPClient *http.Client  // Optional: idle connections are dropped after each cycle
}

// ChartSource fetches tokens and chart tracks
type ChartSource interface {
	AccessToken(ctx context.Context) (string, error)
	TopTracks(ctx context.Context, token, playlistID string, limit int) ([]charts.Track, error)
}

// Publisher turns a chart into a posted thread
type Publisher interface {
	Publish(ctx context.Context, title string, tracks []charts.Track) ([]string, error)
}

// PublishedThread is a chart that was posted during a cycle
type PublishedThread struct {
	Chart   Chart
	PostIDs []string
}

// SkippedChart is a chart that was not posted during a cycle
type SkippedChart struct {
	Chart  Chart
	Reason error // nil when the chart came back empty
}

// CycleReport summarizes one RunOnce
type CycleReport struct {
	Started       time.Time
	Authenticated bool
	AuthErr       error
	Published     []PublishedThread
	Skipped       []SkippedChart
}

// Daemon runs the fetch and post cycle on a fixed interval
type Daemon struct {
	config    Config
	source    ChartSource
	publisher Publisher
	logger    zerolog.Logger
}

// New creates a new Daemon instance
func New(cfg Config, source ChartSource, publisher Publisher, logger zerolog.Logger) *Daemon {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Charts == nil {
		cfg.Charts = DefaultCharts
	}

	return &Daemon{
		config:    cfg,
		source:    source,
		publisher: publisher,
		logger:    logger.With().Str("component", "daemon").Logger(),
	}
}

// Run starts the daemon and blocks until ctx is cancelled or a shutdown
// signal is received
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	done := make(chan struct{})
	defer close(done)

	// Handle first signal gracefully, second signal forces exit
	go func() {
		select {
		case <-sigChan:
		case <-done:
			return
		}
		d.logger.Info().Msg("Shutdown signal received, stopping after current request")
		cancel()

		select {
		case <-sigChan:
			d.logger.Warn().Msg("Second shutdown signal received, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	if err := d.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// run is the main daemon loop
func (d *Daemon) run(ctx context.Context) error {
	d.logger.Info().
		Dur("interval", d.config.Interval).
		Int("charts", len(d.config.Charts)).
		Msg("Starting daemon")

	for {
		report, err := d.RunOnce(ctx)
		if err != nil {
			d.logger.Error().Err(err).Msg("Cycle aborted")
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		next := time.Now().Add(d.config.Interval)
		d.logger.Info().
			Bool("authenticated", report.Authenticated).
			Int("published", len(report.Published)).
			Int("skipped", len(report.Skipped)).
			Time("next", next).
			Msg("Cycle finished")

		timer := time.NewTimer(d.config.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			d.logger.Info().Msg("Daemon stopped")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// RunOnce runs a single cycle: fetch a token, then fetch and publish each
// chart in order. Auth and fetch failures are recorded in the report and
// skip the affected work. A post failure aborts the rest of the cycle and
// is returned.
func (d *Daemon) RunOnce(ctx context.Context) (CycleReport, error) {
	report := CycleReport{Started: time.Now()}

	if d.config.HTTPClient != nil {
		defer d.config.HTTPClient.CloseIdleConnections()
	}

	token, err := d.source.AccessToken(ctx)
	if err != nil || token == "" {
		if err == nil {
			err = &charts.Error{Kind: charts.AuthFailure, Op: "get access token", Err: errors.New("empty token")}
		}
		report.AuthErr = err
		d.logger.Warn().Msg("No access token, skipping all charts this cycle")
		return report, nil
	}
	report.Authenticated = true

	for _, chart := range d.config.Charts {
		tracks, err := d.source.TopTracks(ctx, token, chart.PlaylistID, chart.Limit)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedChart{Chart: chart, Reason: err})
			d.logger.Info().Str("chart", chart.Title).Msg("Skipping chart")
			continue
		}
		if len(tracks) == 0 {
			report.Skipped = append(report.Skipped, SkippedChart{Chart: chart})
			d.logger.Info().Str("chart", chart.Title).Msg("Chart is empty, skipping")
			continue
		}

		ids, err := d.publisher.Publish(ctx, chart.Title, tracks)
		if err != nil {
			return report, err
		}
		report.Published = append(report.Published, PublishedThread{Chart: chart, PostIDs: ids})
	}

	return report, nil
}
