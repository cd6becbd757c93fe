package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PlaylistService provides playlist operations for the Spotify API.
type PlaylistService struct {
	client *Client
}

const (
	// DefaultTrackLimit is the number of tracks returned when limit <= 0.
	DefaultTrackLimit = 33

	// MaxPageSize is the largest page the playlist tracks endpoint serves.
	MaxPageSize = 100
)

// Tracks returns at most limit tracks of a playlist, in playlist order.
//
// A limit <= 0 falls back to DefaultTrackLimit. Only the first page is
// read, so limits above MaxPageSize are served MaxPageSize tracks. Entries
// without a track object (removed or unavailable items) are skipped.
//
// Example:
//
//	tracks, err := client.Playlists().Tracks(ctx, token.AccessToken, "37i9dQZEVXbMDoHDwVN2tF", 33)
//	if err != nil {
//	    return err
//	}
//	for i, t := range tracks {
//	    fmt.Printf("%d. %s - %s\n", i+1, t.Name, t.Artist)
//	}
func (p *PlaylistService) Tracks(ctx context.Context, token, playlistID string, limit int) ([]Track, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("spotify: playlist id is required")
	}
	if limit <= 0 {
		limit = DefaultTrackLimit
	}

	pageSize := limit
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageSize))

	var resp playlistTracksResponse
	path := "/playlists/" + url.PathEscape(playlistID) + "/tracks"
	if err := p.client.get(ctx, path, query, token, &resp); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(resp.Items))
	for _, item := range resp.Items {
		if len(tracks) == limit {
			break
		}
		if item.Track == nil {
			p.client.logDebugf("spotify: skipping playlist entry without track")
			continue
		}

		track := Track{
			ID:   item.Track.ID,
			Name: item.Track.Name,
		}
		if len(item.Track.Artists) > 0 {
			track.Artist = item.Track.Artists[0].Name
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}
