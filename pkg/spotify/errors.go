package spotify

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a non-200 response from the Spotify API.
//
// Spotify reports Web API failures as {"error": {"status", "message"}} and
// token endpoint failures as {"error", "error_description"}; both end up
// here.
type Error struct {
	Status  int    // HTTP status code
	Message string // Message from the error body, or the status text
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("spotify: status %d: %s", e.Status, e.Message)
}

// Is reports whether target is an *Error with the same status.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Predefined errors for common cases.
var (
	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("spotify: invalid configuration")

	// ErrNoToken is returned when a request needs an access token and none was given.
	ErrNoToken = errors.New("spotify: access token required")

	// ErrUnauthorized matches any 401 response with errors.Is.
	ErrUnauthorized = &Error{Status: http.StatusUnauthorized}
)
