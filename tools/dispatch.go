package tools

import (
	"context"
	"errors"

	"calchat/calcom"
	"calchat/model"
)

// Runner executes tool invocations against the Cal.com client and returns
// their result envelopes as JSON text.
type Runner struct {
	cal *calcom.Client
}

func NewRunner(cal *calcom.Client) *Runner {
	return &Runner{cal: cal}
}

// Configured reports whether Cal.com operations can run at all.
func (r *Runner) Configured() bool {
	return r.cal.Configured()
}

// Dispatch parses, validates, and executes one invocation. Every outcome is
// an envelope; nothing escapes as an error.
func (r *Runner) Dispatch(ctx context.Context, call model.ToolCall) string {
	parsed, err := ParseCall(call.Name, call.Arguments)
	if err != nil {
		if errors.Is(err, ErrUnknownTool) {
			return marshal(envelope{"status": "error", "message": "Unknown function: " + call.Name})
		}
		return failure(err.Error())
	}

	switch args := parsed.(type) {
	case BookArgs:
		return r.bookMeeting(ctx, args)
	case ListArgs:
		return r.showBookings(ctx, args)
	case CancelArgs:
		return r.cancelMeeting(ctx, args)
	default:
		return marshal(envelope{"status": "error", "message": "Unknown function: " + call.Name})
	}
}
