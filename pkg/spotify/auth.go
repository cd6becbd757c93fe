package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AuthService provides authentication operations for the Spotify API.
type AuthService struct {
	client *Client
}

// Token exchanges the client credentials for an access token.
//
// The request is a form-encoded POST of grant_type=client_credentials
// with the credentials in a Basic Authorization header. Every call hits
// the token endpoint; nothing is cached.
//
// Example:
//
//	token, err := client.Auth().Token(ctx)
//	if err != nil {
//	    log.Printf("token exchange failed: %v", err)
//	    return
//	}
//	tracks, err := client.Playlists().Tracks(ctx, token.AccessToken, playlistID, 33)
func (a *AuthService) Token(ctx context.Context) (*Token, error) {
	cc := clientcredentials.Config{
		ClientID:     a.client.clientID,
		ClientSecret: a.client.clientSecret,
		TokenURL:     a.client.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	// oauth2 picks the transport up from the context.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client.httpClient)

	a.client.logDebugf("spotify: requesting client-credentials token from %s", a.client.tokenURL)

	tok, err := cc.Token(ctx)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			return nil, retrieveError(rErr)
		}
		return nil, fmt.Errorf("spotify: token request failed: %w", err)
	}

	a.client.logDebugf("spotify: token acquired, expires %s", tok.Expiry)

	return &Token{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Expiry:      tok.Expiry,
	}, nil
}

// retrieveError converts an oauth2 token endpoint failure into an *Error.
func retrieveError(rErr *oauth2.RetrieveError) *Error {
	msg := rErr.ErrorDescription
	if msg == "" {
		msg = rErr.ErrorCode
	}
	if msg == "" {
		msg = http.StatusText(rErr.Response.StatusCode)
	}
	return &Error{
		Status:  rErr.Response.StatusCode,
		Message: msg,
	}
}
