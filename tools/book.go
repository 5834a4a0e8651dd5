package tools

import (
	"context"
	"errors"
	"fmt"

	"calchat/calcom"
	"calchat/config"
	"calchat/localtime"
)

// bookMeeting creates a booking for the validated arguments. Success is
// recognized only if the backend response carries an identifier; a 2xx body
// without one is still a failure.
func (r *Runner) bookMeeting(ctx context.Context, args BookArgs) string {
	if config.DebugLog != nil {
		config.DebugLog.Printf("[tool] %s: eventTypeId=%d, title=%q, date=%s, time=%s, tz=%s, duration=%d",
			ToolBook, args.EventTypeID, args.Title, args.Date, args.Start, args.TimeZone, args.DurationMinutes)
	}

	if !r.cal.Configured() {
		return failure(notConfiguredMessage)
	}

	slot, err := localtime.Normalize(args.Date, args.Start, args.TimeZone, args.DurationMinutes)
	if err != nil {
		if errors.Is(err, localtime.ErrInvalidTimeZone) {
			return failure(fmt.Sprintf("Invalid timezone %q. Please use an IANA name such as 'Europe/Berlin'.", args.TimeZone))
		}
		return failure("Invalid date or time format. Please use YYYY-MM-DD and HH:MM.")
	}

	req := calcom.BookingRequest{
		EventTypeID: args.EventTypeID,
		Start:       localtime.ISO(slot.Start),
		End:         localtime.ISO(slot.End),
		Responses:   args.Responses,
		TimeZone:    args.TimeZone,
		Language:    args.Language,
		Title:       args.Title,
		Metadata:    args.Metadata,
		Status:      calcom.StatusAccepted,
	}

	resp, err := r.cal.CreateBooking(ctx, req)
	if err != nil {
		var apiErr *calcom.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 409 {
			return failure("Failed to book meeting on Cal.com: The requested time slot is unavailable or conflicts with booking rules on Cal.com.")
		}
		return failure("Failed to book meeting on Cal.com: " + errorDetail(err))
	}

	_, hasError := resp["error"]
	if hasError || resp["id"] == nil {
		msg := "Unknown error during booking."
		if m, ok := resp["message"].(string); ok && m != "" {
			msg = m
		} else if e, ok := resp["error"].(string); ok && e != "" {
			msg = e
		}
		return failure("Failed to book meeting on Cal.com: " + msg)
	}

	return marshal(envelope{
		"status":  "success",
		"message": "Meeting successfully booked on Cal.com.",
		"meeting_details": envelope{
			"cal_com_booking_id": resp["id"],
			"title":              resp["title"],
			"startTime_utc":      resp["startTime"], // Cal.com returns this in UTC
			"endTime_utc":        resp["endTime"],
			"eventTypeId":        args.EventTypeID,
			"requested_timeZone": args.TimeZone,
			"duration_minutes":   args.DurationMinutes,
			"responses":          args.Responses,
			"language":           args.Language,
			"metadata":           args.Metadata,
		},
	})
}
