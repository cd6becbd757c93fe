package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var allEnv = []string{
	EnvSpotifyClientID,
	EnvSpotifyClientSecret,
	EnvTwitterBearerToken,
	EnvTwitterConsumerKey,
	EnvTwitterConsumerSecret,
	EnvTwitterAccessToken,
	EnvTwitterAccessTokenSecret,
}

// isolate points HOME and the working directory at empty temp dirs and
// clears every credential variable.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, name := range allEnv {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return dir
}

func TestLoad_FromEnvironment(t *testing.T) {
	isolate(t)
	for _, name := range allEnv {
		t.Setenv(name, "value-"+name)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Spotify.ClientID != "value-CLIENT_ID_SPOTIFY" {
		t.Errorf("unexpected client id %q", cfg.Spotify.ClientID)
	}
	if cfg.Twitter.AccessTokenSecret != "value-ACCESS_TOKEN_SECRET_TWITTER" {
		t.Errorf("unexpected access token secret %q", cfg.Twitter.AccessTokenSecret)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := isolate(t)
	content := "CLIENT_ID_SPOTIFY=from-file\nCLIENT_SECRET_SPOTIFY=secret-from-file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvSpotifyClientID, "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Spotify.ClientID != "from-env" {
		t.Errorf("environment should win over .env, got %q", cfg.Spotify.ClientID)
	}
	if cfg.Spotify.ClientSecret != "secret-from-file" {
		t.Errorf("expected secret from .env, got %q", cfg.Spotify.ClientSecret)
	}
	if err := cfg.ValidateSpotify(); err != nil {
		t.Errorf("ValidateSpotify: %v", err)
	}
}

func TestValidate_ListsMissing(t *testing.T) {
	cfg := &Config{
		Spotify: SpotifyConfig{ClientID: "id"},
		Twitter: TwitterConfig{ConsumerKey: "ck", AccessToken: "at"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	for _, name := range []string{
		EnvSpotifyClientSecret,
		EnvTwitterBearerToken,
		EnvTwitterConsumerSecret,
		EnvTwitterAccessTokenSecret,
	} {
		if !strings.Contains(msg, name) {
			t.Errorf("error %q does not mention %s", msg, name)
		}
	}
	for _, name := range []string{EnvSpotifyClientID, EnvTwitterConsumerKey} {
		if strings.Contains(msg, name+",") || strings.HasSuffix(msg, name) {
			t.Errorf("error %q mentions present variable %s", msg, name)
		}
	}
}

func TestGetConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := GetConfigDir()
	if dir != filepath.Join(home, ".config", "chartthread") {
		t.Errorf("unexpected config dir %s", dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("config dir not created: %v", err)
	}
}
