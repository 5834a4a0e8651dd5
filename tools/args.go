package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"calchat/calcom"
)

// ErrUnknownTool reports a tool name outside the fixed set.
var ErrUnknownTool = errors.New("unknown function")

// Call is a parsed, validated tool invocation. Parsing happens before
// dispatch, so a bad invocation is rejected at the boundary instead of
// surfacing as a runtime fallback inside a tool.
type Call interface {
	toolName() string
}

type BookArgs struct {
	EventTypeID     int              `json:"eventTypeId"`
	Title           string           `json:"meeting_title"`
	Date            string           `json:"date"`
	Start           string           `json:"start"`
	Responses       calcom.Responses `json:"responses"`
	TimeZone        string           `json:"timeZone"`
	DurationMinutes int              `json:"duration_minutes"`
	Language        string           `json:"language"`
	Metadata        calcom.Metadata  `json:"metadata"`
}

func (BookArgs) toolName() string { return ToolBook }

func (a BookArgs) validate() error {
	switch {
	case a.EventTypeID <= 0:
		return errors.New("eventTypeId must be a positive integer")
	case a.Title == "":
		return errors.New("meeting_title is required")
	case a.Date == "":
		return errors.New("date is required")
	case a.Start == "":
		return errors.New("start is required")
	case a.TimeZone == "":
		return errors.New("timeZone is required")
	case a.DurationMinutes <= 0:
		return errors.New("duration_minutes must be a positive integer")
	case a.Responses.Name == "":
		return errors.New("responses.name is required")
	case a.Responses.Email == "":
		return errors.New("responses.email is required")
	case a.Language == "":
		return errors.New("language is required")
	}
	return nil
}

type ListArgs struct {
	AttendeeEmail string `json:"attendeeEmail"`
}

func (ListArgs) toolName() string { return ToolList }

func (a ListArgs) validate() error {
	if a.AttendeeEmail == "" {
		return errors.New("attendeeEmail is required")
	}
	return nil
}

type CancelArgs struct {
	AttendeeEmail string `json:"attendeeEmail"`
	Date          string `json:"date"`
	Start         string `json:"start"`
	TimeZone      string `json:"timeZone"`
	Reason        string `json:"reason"` // empty string when the user gave none
}

func (CancelArgs) toolName() string { return ToolCancel }

func (a CancelArgs) validate() error {
	switch {
	case a.AttendeeEmail == "":
		return errors.New("attendeeEmail is required")
	case a.Date == "":
		return errors.New("date is required")
	case a.Start == "":
		return errors.New("start is required")
	case a.TimeZone == "":
		return errors.New("timeZone is required")
	}
	return nil
}

// ParseCall decodes and validates the completion service's JSON arguments
// against the named tool's schema. Unknown fields and missing required fields
// are rejected here; an unknown tool name yields ErrUnknownTool.
func ParseCall(name string, args map[string]any) (Call, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("unencodable arguments for %s: %w", name, err)
	}

	decode := func(dst any) error {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		return dec.Decode(dst)
	}

	switch name {
	case ToolBook:
		var a BookArgs
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		return a, nil
	case ToolList:
		var a ListArgs
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		return a, nil
	case ToolCancel:
		var a CancelArgs
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}
