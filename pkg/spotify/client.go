package spotify

import (
	"fmt"
	"net/http"
	"strings"
)

// Config holds client configuration.
type Config struct {
	ClientID     string       // Required: application client id
	ClientSecret string       // Required: application client secret
	HTTPClient   *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	TokenURL     string       // Optional: token endpoint (defaults to Spotify accounts service)
	BaseURL      string       // Optional: Web API base URL (defaults to Spotify API, used for testing)
	Logger       Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify Web API operations.
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	tokenURL     string
	baseURL      string
	logger       Logger

	auth      *AuthService
	playlists *PlaylistService
}

const (
	// DefaultTokenURL is the OAuth token endpoint of the Spotify accounts service.
	DefaultTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultBaseURL is the Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"
)

// NewClient creates a new Spotify API client.
//
// Returns ErrInvalidConfig if ClientID or ClientSecret is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: ClientID is required", ErrInvalidConfig)
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: ClientSecret is required", ErrInvalidConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		tokenURL:     tokenURL,
		baseURL:      strings.TrimRight(baseURL, "/"),
		logger:       cfg.Logger,
	}

	c.auth = &AuthService{client: c}
	c.playlists = &PlaylistService{client: c}

	return c, nil
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Playlists returns the playlist service.
func (c *Client) Playlists() *PlaylistService {
	return c.playlists
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
