package calcom

import "errors"

// ErrNotConfigured is returned before any network I/O when no API key is set.
var ErrNotConfigured = errors.New("Cal.com API key not configured")

// APIError is the uniform error value for everything that goes wrong past the
// configuration check: transport failures, non-2xx responses, and malformed
// success bodies. Callers never see a panic from this package; every failure
// is a value.
type APIError struct {
	Message    string
	StatusCode int            // 0 when the failure happened before a response
	RawText    string         // raw response body for non-2xx responses
	Body       map[string]any // decoded error body when the backend sent JSON
}

func (e *APIError) Error() string {
	return e.Message
}

// Detail returns the most specific human-readable description the backend
// provided: the "message" field, then the "error" field, then Message itself.
func (e *APIError) Detail() string {
	if e.Body != nil {
		if msg, ok := e.Body["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := e.Body["error"].(string); ok && msg != "" {
			return msg
		}
	}
	return e.Message
}
