package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calchat/calcom"
	"calchat/localtime"
)

// cancelMeeting cancels the booking whose backend-reported start instant
// exactly equals the requested local time. Matching is exact-instant equality,
// not a tolerance window, so seconds-level skew in the backend's data will
// miss; no DELETE is issued when nothing matches.
func (r *Runner) cancelMeeting(ctx context.Context, args CancelArgs) string {
	if !r.cal.Configured() {
		return failure(notConfiguredMessage)
	}

	resp, err := r.cal.FindBookings(ctx, args.AttendeeEmail)
	if err != nil {
		return failure("Failed to retrieve bookings to find the meeting to cancel.")
	}

	slot, err := localtime.Normalize(args.Date, args.Start, args.TimeZone, 0)
	if err != nil {
		if errors.Is(err, localtime.ErrInvalidTimeZone) {
			return failure(fmt.Sprintf("Invalid timezone %q. Please use an IANA name such as 'Europe/Berlin'.", args.TimeZone))
		}
		return failure("Invalid date or time format. Please use YYYY-MM-DD and HH:MM.")
	}

	target := findBookingAt(resp, slot.Start)
	if target == nil {
		return failure(fmt.Sprintf("No meeting found for %s on %s at %s %s.",
			args.AttendeeEmail, args.Date, args.Start, args.TimeZone))
	}

	id := calcom.FormatBookingID(target["id"])
	cancelResp, err := r.cal.CancelBooking(ctx, id, args.Reason)
	if err != nil {
		return failure("Failed to cancel meeting: " + errorDetail(err))
	}
	if _, hasError := cancelResp["error"]; hasError {
		msg := "Unknown error during cancellation."
		if m, ok := cancelResp["message"].(string); ok && m != "" {
			msg = m
		} else if e, ok := cancelResp["error"].(string); ok && e != "" {
			msg = e
		}
		return failure("Failed to cancel meeting: " + msg)
	}

	title, _ := target["title"].(string)
	return marshal(envelope{
		"status": "success",
		"message": fmt.Sprintf("Successfully cancelled meeting '%s' scheduled for %s at %s %s.",
			title, args.Date, args.Start, args.TimeZone),
		"booking_details": target,
	})
}

// findBookingAt scans the find-bookings response for a booking whose UTC
// start time equals the target instant.
func findBookingAt(resp map[string]any, target time.Time) map[string]any {
	bookings, ok := extractBookings(resp)
	if !ok {
		return nil
	}
	for _, b := range bookings {
		booking, ok := b.(map[string]any)
		if !ok {
			continue
		}
		startRaw, ok := booking["startTime"].(string)
		if !ok {
			continue
		}
		start, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			continue
		}
		if start.Equal(target) {
			return booking
		}
	}
	return nil
}
