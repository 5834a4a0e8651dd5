package calcom

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoNotConfiguredShortCircuits(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("", srv.URL, srv.URL)
	_, err := c.FindBookings(context.Background(), "alice@example.com")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if hits != 0 {
		t.Errorf("expected zero network calls, got %d", hits)
	}
}

func TestDoAuthSurfaces(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) error
		validate func(t *testing.T, r *http.Request)
	}{
		{
			name: "legacy surface puts apiKey in query",
			call: func(c *Client) error {
				_, err := c.CreateBooking(context.Background(), BookingRequest{Title: "Standup"})
				return err
			},
			validate: func(t *testing.T, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if got := r.URL.Query().Get("apiKey"); got != "cal_live_test" {
					t.Errorf("expected apiKey query param, got %q", got)
				}
				if got := r.Header.Get("Authorization"); got != "" {
					t.Errorf("legacy surface must not send Authorization, got %q", got)
				}
			},
		},
		{
			name: "bearer surface puts token in header",
			call: func(c *Client) error {
				_, err := c.FindBookings(context.Background(), "alice@example.com")
				return err
			},
			validate: func(t *testing.T, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer cal_live_test" {
					t.Errorf("expected bearer header, got %q", got)
				}
				if r.URL.Query().Has("apiKey") {
					t.Error("bearer surface must not send apiKey query param")
				}
				if got := r.URL.Query().Get("attendeeEmail"); got != "alice@example.com" {
					t.Errorf("expected attendeeEmail filter, got %q", got)
				}
			},
		},
		{
			name: "cancel sends DELETE with reason body",
			call: func(c *Client) error {
				_, err := c.CancelBooking(context.Background(), "42", "overbooked")
				return err
			},
			validate: func(t *testing.T, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("expected DELETE, got %s", r.Method)
				}
				if r.URL.Path != "/bookings/42" {
					t.Errorf("expected /bookings/42, got %s", r.URL.Path)
				}
				buf := make([]byte, r.ContentLength)
				r.Body.Read(buf)
				if string(buf) != `{"reason":"overbooked"}` {
					t.Errorf("unexpected body: %s", buf)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hit = true
				tt.validate(t, r)
				w.Write([]byte(`{"ok":true}`))
			}))
			defer srv.Close()

			c := NewClient("cal_live_test", srv.URL, srv.URL)
			if err := tt.call(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !hit {
				t.Fatal("server was never hit")
			}
		})
	}
}

func TestDoErrorNormalization(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantDetail string
	}{
		{
			name: "structured error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"message":"no available users found"}`))
			},
			wantStatus: 400,
			wantDetail: "no available users found",
		},
		{
			name: "non-JSON error body falls back to raw text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("upstream exploded"))
			},
			wantStatus: 502,
			wantDetail: "HTTP error: 502",
		},
		{
			name: "conflict keeps status code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"message":"already booked"}`))
			},
			wantStatus: 409,
			wantDetail: "already booked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient("cal_live_test", srv.URL, srv.URL)
			_, err := c.FindBookings(context.Background(), "alice@example.com")

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, apiErr.StatusCode)
			}
			if apiErr.Detail() != tt.wantDetail {
				t.Errorf("expected detail %q, got %q", tt.wantDetail, apiErr.Detail())
			}
		})
	}
}

func TestDoMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient("cal_live_test", srv.URL, srv.URL)
	_, err := c.FindBookings(context.Background(), "alice@example.com")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("decode failure should carry no status code, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "failed to decode JSON response from Cal.com API" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
}

func TestDoTransportFailure(t *testing.T) {
	// Point at a closed server to force a connect error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient("cal_live_test", srv.URL, srv.URL)
	_, err := c.FindBookings(context.Background(), "alice@example.com")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("transport failure should carry no status code, got %d", apiErr.StatusCode)
	}
}

func TestFormatBookingID(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want string
	}{
		{"integral float from JSON", float64(12345678), "12345678"},
		{"string id", "abc123", "abc123"},
		{"plain int", 7, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBookingID(tt.id); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
