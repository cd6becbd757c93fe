package poster

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-success response from the X API.
type APIError struct {
	Status   int
	Endpoint string
	Title    string // v2 problem title
	Detail   string // v2 problem detail
	Code     int    // v1.1 error code
	Message  string // v1.1 message, or the raw body when unparseable
}

func (e *APIError) Error() string {
	switch {
	case e.Title != "" || e.Detail != "":
		return fmt.Sprintf("x: %s: status %d: %s: %s", e.Endpoint, e.Status, e.Title, e.Detail)
	case e.Code != 0:
		return fmt.Sprintf("x: %s: status %d: error %d: %s", e.Endpoint, e.Status, e.Code, e.Message)
	default:
		return fmt.Sprintf("x: %s: status %d: %s", e.Endpoint, e.Status, e.Message)
	}
}

// parseAPIError understands both the v2 problem format and the v1.1
// errors array, falling back to the raw body.
func parseAPIError(status int, body []byte, endpoint string) *APIError {
	apiErr := &APIError{Status: status, Endpoint: endpoint}

	var v2 struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &v2); err == nil && (v2.Title != "" || v2.Detail != "") {
		apiErr.Title = v2.Title
		apiErr.Detail = v2.Detail
		return apiErr
	}

	var v1 struct {
		Errors []struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &v1); err == nil && len(v1.Errors) > 0 {
		apiErr.Code = v1.Errors[0].Code
		apiErr.Message = v1.Errors[0].Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}
