// Package tools implements the three Cal.com operations the completion
// service may invoke: booking a meeting, listing booked meetings, and
// cancelling a meeting. Tool schemas are declared as mcp-go tool definitions
// and converted per provider; every property is required and unlisted
// properties are rejected, so malformed arguments from the completion service
// are reported as contract violations rather than coerced.
package tools

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

const (
	ToolBook   = "book_cal_com_meeting"
	ToolList   = "show_cal_com_booked_meetings"
	ToolCancel = "cancel_cal_com_meeting"
)

// Definitions returns the fixed tool set presented to the completion service.
func Definitions() []mcptypes.Tool {
	return []mcptypes.Tool{
		{
			Name:        ToolBook,
			Description: "Books a meeting on Cal.com. It's recommended to have checked slot availability first if possible.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"eventTypeId": map[string]any{
						"type":        "integer",
						"description": "The numeric ID of the Cal.com event type to book.",
					},
					"meeting_title": map[string]any{
						"type":        "string",
						"description": "Title or subject of the meeting.",
					},
					"date": map[string]any{
						"type":        "string",
						"description": "Date of the meeting in YYYY-MM-DD format.",
					},
					"start": map[string]any{
						"type":        "string",
						"description": "Start time of the meeting in HH:MM format (24-hour).",
					},
					"responses": map[string]any{
						"type":        "object",
						"description": "Responses for the meeting, including participant details.",
						"properties": map[string]any{
							"name": map[string]any{
								"type":        "string",
								"description": "Name of the participant.",
							},
							"email": map[string]any{
								"type":        "string",
								"description": "Email address of the participant.",
							},
							"location": map[string]any{
								"type":        "object",
								"description": "Location of the participant, if applicable.",
								"properties": map[string]any{
									"optionValue": map[string]any{
										"type":        "string",
										"description": "Other information about the location, if any.",
									},
									"value": map[string]any{
										"type":        "string",
										"description": "Type of location, e.g., 'online', 'in-person'.",
									},
								},
								"required":             []string{"optionValue", "value"},
								"additionalProperties": false,
							},
						},
						"required":             []string{"name", "email", "location"},
						"additionalProperties": false,
					},
					"timeZone": map[string]any{
						"type":        "string",
						"description": "The timezone for the specified date and time, e.g., 'Europe/Berlin'.",
					},
					"duration_minutes": map[string]any{
						"type":        "integer",
						"description": "Duration of the meeting in minutes.",
					},
					"language": map[string]any{
						"type":        "string",
						"description": "Language of the meeting, e.g., 'English', 'Spanish', etc.",
					},
					"metadata": map[string]any{
						"type":        "object",
						"description": "Additional metadata for the meeting, such as description or notes.",
						"properties": map[string]any{
							"description": map[string]any{
								"type":        "string",
								"description": "Description or notes for the meeting.",
							},
						},
						"required":             []string{"description"},
						"additionalProperties": false,
					},
				},
				Required: []string{"eventTypeId", "responses", "meeting_title", "date", "start", "timeZone", "duration_minutes", "language", "metadata"},
			},
		},
		{
			Name:        ToolList,
			Description: "Shows booked meetings from Cal.com for a given user email.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"attendeeEmail": map[string]any{
						"type":        "string",
						"description": "Email of the attendee to retrieve meetings for.",
					},
				},
				Required: []string{"attendeeEmail"},
			},
		},
		{
			Name:        ToolCancel,
			Description: "Cancels a meeting on Cal.com for a specific date and time.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"attendeeEmail": map[string]any{
						"type":        "string",
						"description": "Email of the attendee whose meeting is to be cancelled.",
					},
					"date": map[string]any{
						"type":        "string",
						"description": "Date of the meeting to cancel in YYYY-MM-DD format.",
					},
					"start": map[string]any{
						"type":        "string",
						"description": "Start time of the meeting to cancel in HH:MM format (24-hour).",
					},
					"timeZone": map[string]any{
						"type":        "string",
						"description": "The timezone for the specified date and time, e.g., 'Europe/Berlin'.",
					},
					"reason": map[string]any{
						"type":        "string",
						"description": "Reason for cancelling the meeting (optional).",
					},
				},
				Required: []string{"attendeeEmail", "date", "start", "timeZone", "reason"},
			},
		},
	}
}
