package calcom

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

// BookingRequest is the payload for creating a booking on the legacy surface.
type BookingRequest struct {
	EventTypeID int       `json:"eventTypeId"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Responses   Responses `json:"responses"`
	TimeZone    string    `json:"timeZone"`
	Language    string    `json:"language"`
	Title       string    `json:"title"`
	Metadata    Metadata  `json:"metadata"`
	Status      string    `json:"status"`
}

// Responses carries the participant details Cal.com attaches to a booking.
type Responses struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Location Location `json:"location"`
}

type Location struct {
	OptionValue string `json:"optionValue"`
	Value       string `json:"value"`
}

type Metadata struct {
	Description string `json:"description"`
}

// CreateBooking submits a new booking (POST /v1/bookings).
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (map[string]any, error) {
	return c.do(ctx, surfaceLegacy, http.MethodPost, "/bookings", nil, req)
}

// FindBookings lists bookings for an attendee email
// (GET /v2/bookings?attendeeEmail=...).
func (c *Client) FindBookings(ctx context.Context, attendeeEmail string) (map[string]any, error) {
	query := url.Values{}
	query.Set("attendeeEmail", attendeeEmail)
	return c.do(ctx, surfaceBearer, http.MethodGet, "/bookings", query, nil)
}

// CancelBooking cancels a booking by its backend identifier
// (DELETE /v1/bookings/{id}, body {"reason": ...}).
func (c *Client) CancelBooking(ctx context.Context, id, reason string) (map[string]any, error) {
	return c.do(ctx, surfaceLegacy, http.MethodDelete, "/bookings/"+id, nil, map[string]string{"reason": reason})
}

// FormatBookingID renders a backend booking identifier as the path segment
// the legacy surface expects. Decoded JSON numbers arrive as float64; Cal.com
// IDs are integral, so those are printed without an exponent.
func FormatBookingID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
