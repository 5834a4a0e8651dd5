package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"calchat/calcom"
)

// envelope is the JSON result a tool hands back into the conversation:
// {"status": "success"|"failure"|"error", "message": ..., payload fields}.
// The completion service only ever sees this text, never raw errors.
type envelope map[string]any

func marshal(env envelope) string {
	b, err := json.Marshal(env)
	if err != nil {
		// map[string]any over JSON-derived values cannot fail to marshal;
		// keep a well-formed envelope anyway.
		return `{"status":"failure","message":"internal error encoding tool result"}`
	}
	return string(b)
}

func failure(message string) string {
	return marshal(envelope{"status": "failure", "message": message})
}

const notConfiguredMessage = "Cal.com API key not configured in the agent."

// maxDetailLen bounds raw backend diagnostics folded into the conversation.
const maxDetailLen = 200

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// errorDetail flattens a calcom error value into the human-readable detail
// string the original message formats expect.
func errorDetail(err error) string {
	if errors.Is(err, calcom.ErrNotConfigured) {
		return "Cal.com API key not configured. Cannot perform Cal.com operations."
	}
	var apiErr *calcom.APIError
	if errors.As(err, &apiErr) {
		detail := apiErr.Detail()
		if apiErr.RawText != "" {
			detail += fmt.Sprintf(" (Details: %s)", truncate(apiErr.RawText, maxDetailLen))
		}
		return detail
	}
	return err.Error()
}
