package tools

import (
	"context"
	"errors"
	"fmt"

	"calchat/calcom"
)

// showBookings lists the attendee's bookings. The backend's success envelope
// nests the list two levels deep (status -> data -> bookings); anything else
// is an unexpected-format failure, distinct from a transport failure. An
// empty list is a success.
func (r *Runner) showBookings(ctx context.Context, args ListArgs) string {
	if !r.cal.Configured() {
		return failure(notConfiguredMessage)
	}

	resp, err := r.cal.FindBookings(ctx, args.AttendeeEmail)
	if err != nil {
		detail := errorDetail(err)
		var apiErr *calcom.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
			detail += fmt.Sprintf(" (Status Code: %d)", apiErr.StatusCode)
		}
		return failure("Failed to retrieve meetings from Cal.com: " + detail)
	}

	bookings, ok := extractBookings(resp)
	if !ok {
		return failure("Failed to retrieve meetings from Cal.com: Unexpected response format from Cal.com API")
	}

	if len(bookings) == 0 {
		return marshal(envelope{
			"status":  "success",
			"message": fmt.Sprintf("No meetings found for %s.", args.AttendeeEmail),
			"events":  []any{},
		})
	}

	return marshal(envelope{
		"status":  "success",
		"message": fmt.Sprintf("Scheduled Cal.com Events for %s:", args.AttendeeEmail),
		"events":  bookings,
	})
}

// extractBookings unwraps {status:"success", data:{bookings:[...]}}.
func extractBookings(resp map[string]any) ([]any, bool) {
	if status, _ := resp["status"].(string); status != "success" {
		return nil, false
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	bookings, ok := data["bookings"].([]any)
	if !ok {
		return nil, false
	}
	return bookings, true
}
