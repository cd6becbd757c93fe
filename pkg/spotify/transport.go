package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const userAgent = "chartthread/1.0"

// get performs an authenticated GET against the Web API and decodes the
// JSON body into v.
//
// It handles:
// - Request construction with bearer token and headers
// - Status checking (anything but 200 becomes *Error)
// - JSON decoding
// - Context cancellation
func (c *Client) get(ctx context.Context, path string, query url.Values, token string, v interface{}) error {
	if token == "" {
		return ErrNoToken
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	c.logDebugf("spotify: GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	c.logDebugf("spotify: GET %s succeeded", path)
	return nil
}

// parseError builds an *Error from a non-200 response body.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		return apiErr
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		apiErr.Message = text
	} else {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
