package spotify

import (
	"time"
)

// Token represents an access token from the client-credentials flow.
type Token struct {
	AccessToken string    // Bearer token for Web API requests
	TokenType   string    // Usually "Bearer"
	Expiry      time.Time // Server-side expiry, zero if not reported
}

// Track represents a playlist entry reduced to what chart rendering needs.
type Track struct {
	ID     string // Spotify track id
	Name   string // Track title
	Artist string // Primary (first listed) artist, empty if none
}

// playlistTracksResponse is the JSON body of GET /playlists/{id}/tracks.
type playlistTracksResponse struct {
	Items []struct {
		Track *struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"track"`
	} `json:"items"`
	Total int `json:"total"`
}

// errorResponse is Spotify's Web API error envelope.
type errorResponse struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}
