package charts

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jfmyers9/chartthread/pkg/spotify"
	"github.com/rs/zerolog"
)

// Track is a chart entry as rendered in a thread
type Track struct {
	Name   string // Track title
	Artist string // Primary artist
}

// Source fetches chart playlists from Spotify
type Source struct {
	client *spotify.Client
	logger zerolog.Logger
}

// NewSource creates a Source for the given application credentials
func NewSource(clientID, clientSecret string, httpClient *http.Client, logger zerolog.Logger) (*Source, error) {
	logger = logger.With().Str("component", "charts").Logger()

	client, err := spotify.NewClient(spotify.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient:   httpClient,
		Logger:       debugLogger{logger},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create spotify client: %w", err)
	}

	return NewSourceWithClient(client, logger), nil
}

// NewSourceWithClient wraps an already configured Spotify client
func NewSourceWithClient(client *spotify.Client, logger zerolog.Logger) *Source {
	return &Source{
		client: client,
		logger: logger,
	}
}

// AccessToken requests a fresh bearer token. Failures are logged here and
// returned as an AuthFailure.
func (s *Source) AccessToken(ctx context.Context) (string, error) {
	token, err := s.client.Auth().Token(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to get access token")
		return "", &Error{Kind: AuthFailure, Op: "get access token", Err: err}
	}

	return token.AccessToken, nil
}

// TopTracks returns at most limit tracks of a playlist in chart order.
// Failures are logged here and returned as a FetchFailure.
func (s *Source) TopTracks(ctx context.Context, token, playlistID string, limit int) ([]Track, error) {
	items, err := s.client.Playlists().Tracks(ctx, token, playlistID, limit)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("playlist", playlistID).
			Int("limit", limit).
			Msg("Failed to get top tracks")
		return nil, &Error{Kind: FetchFailure, Op: "fetch playlist " + playlistID, Err: err}
	}

	tracks := make([]Track, len(items))
	for i, item := range items {
		tracks[i] = Track{Name: item.Name, Artist: item.Artist}
	}

	s.logger.Debug().
		Str("playlist", playlistID).
		Int("count", len(tracks)).
		Msg("Fetched chart")

	return tracks, nil
}

// debugLogger adapts zerolog to spotify.Logger
type debugLogger struct {
	logger zerolog.Logger
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
