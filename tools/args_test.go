package tools

import (
	"errors"
	"testing"
)

func validBookArgs() map[string]any {
	return map[string]any{
		"eventTypeId":   float64(2077162),
		"meeting_title": "Project Sync",
		"date":          "2025-07-15",
		"start":         "14:30",
		"responses": map[string]any{
			"name":  "Alice",
			"email": "alice@example.com",
			"location": map[string]any{
				"optionValue": "",
				"value":       "online",
			},
		},
		"timeZone":         "Europe/Berlin",
		"duration_minutes": float64(30),
		"language":         "English",
		"metadata": map[string]any{
			"description": "Weekly sync",
		},
	}
}

func TestParseCall(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		wantErr  bool
		wantKind any
	}{
		{
			name:     "valid booking args",
			tool:     ToolBook,
			args:     validBookArgs(),
			wantKind: BookArgs{},
		},
		{
			name:     "valid list args",
			tool:     ToolList,
			args:     map[string]any{"attendeeEmail": "alice@example.com"},
			wantKind: ListArgs{},
		},
		{
			name: "valid cancel args with empty reason",
			tool: ToolCancel,
			args: map[string]any{
				"attendeeEmail": "alice@example.com",
				"date":          "2025-07-15",
				"start":         "14:30",
				"timeZone":      "Europe/Berlin",
				"reason":        "",
			},
			wantKind: CancelArgs{},
		},
		{
			name: "unlisted property rejected",
			tool: ToolList,
			args: map[string]any{
				"attendeeEmail": "alice@example.com",
				"surprise":      true,
			},
			wantErr: true,
		},
		{
			name: "missing required field rejected",
			tool: ToolBook,
			args: func() map[string]any {
				a := validBookArgs()
				delete(a, "timeZone")
				return a
			}(),
			wantErr: true,
		},
		{
			name: "wrong type rejected",
			tool: ToolBook,
			args: func() map[string]any {
				a := validBookArgs()
				a["duration_minutes"] = "thirty"
				return a
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := ParseCall(tt.tool, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch tt.wantKind.(type) {
			case BookArgs:
				if _, ok := call.(BookArgs); !ok {
					t.Errorf("expected BookArgs, got %T", call)
				}
			case ListArgs:
				if _, ok := call.(ListArgs); !ok {
					t.Errorf("expected ListArgs, got %T", call)
				}
			case CancelArgs:
				if _, ok := call.(CancelArgs); !ok {
					t.Errorf("expected CancelArgs, got %T", call)
				}
			}
		})
	}
}

func TestParseCallUnknownTool(t *testing.T) {
	_, err := ParseCall("reticulate_splines", map[string]any{})
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}
