package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable names for the API credentials
const (
	EnvSpotifyClientID          = "CLIENT_ID_SPOTIFY"
	EnvSpotifyClientSecret      = "CLIENT_SECRET_SPOTIFY"
	EnvTwitterBearerToken       = "BEARER_TOKEN_TWITTER"
	EnvTwitterConsumerKey       = "CONSUMER_KEY_TWITTER"
	EnvTwitterConsumerSecret    = "CONSUMER_SECRET_TWITTER"
	EnvTwitterAccessToken       = "ACCESS_TOKEN_TWITTER"
	EnvTwitterAccessTokenSecret = "ACCESS_TOKEN_SECRET_TWITTER"
)

// keys maps viper keys to their environment variables, in reporting order
var keys = []struct {
	key string
	env string
}{
	{"spotify.client_id", EnvSpotifyClientID},
	{"spotify.client_secret", EnvSpotifyClientSecret},
	{"twitter.bearer_token", EnvTwitterBearerToken},
	{"twitter.consumer_key", EnvTwitterConsumerKey},
	{"twitter.consumer_secret", EnvTwitterConsumerSecret},
	{"twitter.access_token", EnvTwitterAccessToken},
	{"twitter.access_token_secret", EnvTwitterAccessTokenSecret},
}

// Config holds application configuration
type Config struct {
	// Spotify application credentials (client credentials grant)
	Spotify SpotifyConfig

	// X/Twitter credentials
	Twitter TwitterConfig
}

// SpotifyConfig holds Spotify specific configuration
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
}

// TwitterConfig holds X/Twitter specific configuration.
// The OAuth1 values sign posts; the bearer token is app-only.
type TwitterConfig struct {
	BearerToken       string
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Load reads configuration from the environment.
// A .env file in the working directory, then one in the config directory,
// is loaded first. Variables already set are never overridden.
func Load() (*Config, error) {
	for _, path := range envFiles() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	v := viper.New()
	for _, k := range keys {
		if err := v.BindEnv(k.key, k.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", k.env, err)
		}
	}

	cfg := &Config{
		Spotify: SpotifyConfig{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
		},
		Twitter: TwitterConfig{
			BearerToken:       v.GetString("twitter.bearer_token"),
			ConsumerKey:       v.GetString("twitter.consumer_key"),
			ConsumerSecret:    v.GetString("twitter.consumer_secret"),
			AccessToken:       v.GetString("twitter.access_token"),
			AccessTokenSecret: v.GetString("twitter.access_token_secret"),
		},
	}

	return cfg, nil
}

// Validate reports every missing credential by its environment variable name
func (c *Config) Validate() error {
	values := []string{
		c.Spotify.ClientID,
		c.Spotify.ClientSecret,
		c.Twitter.BearerToken,
		c.Twitter.ConsumerKey,
		c.Twitter.ConsumerSecret,
		c.Twitter.AccessToken,
		c.Twitter.AccessTokenSecret,
	}

	var missing []string
	for i, value := range values {
		if value == "" {
			missing = append(missing, keys[i].env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateSpotify checks only the Spotify credentials
func (c *Config) ValidateSpotify() error {
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return fmt.Errorf("missing environment variables: %s, %s", EnvSpotifyClientID, EnvSpotifyClientSecret)
	}
	return nil
}

func envFiles() []string {
	return []string{".env", filepath.Join(getConfigDir(), ".env")}
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "chartthread")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}
