// Package spotify provides a small client for the Spotify Web API.
//
// # Overview
//
// The package covers the two calls needed to read public chart playlists
// with application credentials: the client-credentials token exchange and
// the playlist tracks listing. It does not cache tokens and does not retry;
// callers decide what to do with a failed request.
//
// # Quick Start
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := client.Auth().Token(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tracks, err := client.Playlists().Tracks(ctx, token.AccessToken, "37i9dQZEVXbMDoHDwVN2tF", 33)
//
// # Error Handling
//
// Non-200 responses are returned as *Error, carrying the HTTP status and
// the message from Spotify's error envelope:
//
//	var apiErr *spotify.Error
//	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
//	    // token expired or credentials rejected
//	}
//
// # Configuration
//
// TokenURL and BaseURL can be overridden to point the client at a test
// server:
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "id",
//	    ClientSecret: "secret",
//	    TokenURL:     server.URL + "/api/token",
//	    BaseURL:      server.URL + "/v1",
//	    HTTPClient:   &http.Client{Timeout: 30 * time.Second},
//	})
package spotify
