package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calchat/calcom"
	"calchat/model"
	"calchat/tools"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// scriptedProvider replays a fixed sequence of provider responses. Once the
// script is exhausted the last step repeats.
type scriptedProvider struct {
	steps []scriptStep
	calls int
}

type scriptStep struct {
	text      string
	toolCalls []model.ToolCall
	err       error
}

func (p *scriptedProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	return p.ChatWithTools(ctx, messages, nil, callback)
}

func (p *scriptedProvider) ChatWithTools(ctx context.Context, messages []model.Message, defs []mcptypes.Tool, callback model.StreamCallback) error {
	idx := p.calls
	p.calls++
	if idx >= len(p.steps) {
		idx = len(p.steps) - 1
	}
	step := p.steps[idx]

	if step.err != nil {
		return step.err
	}
	if step.text != "" {
		if err := callback(step.text, nil); err != nil {
			return err
		}
	}
	if len(step.toolCalls) > 0 {
		return callback("", step.toolCalls)
	}
	return nil
}

func (p *scriptedProvider) GetModel() string { return "scripted" }

func (p *scriptedProvider) SetModel(string) {}

func (p *scriptedProvider) Ping(context.Context) error { return nil }

func bookArguments() map[string]any {
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
		"metadata":         map[string]any{"description": "Weekly sync"},
	}
}

func newTestSession(t *testing.T, provider model.Provider, handler http.HandlerFunc) *Session {
	t.Helper()
	var runner *tools.Runner
	if handler == nil {
		runner = tools.NewRunner(calcom.NewClient("test-key", "http://127.0.0.1:0", "http://127.0.0.1:0"))
	} else {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		runner = tools.NewRunner(calcom.NewClient("test-key", srv.URL, srv.URL))
	}
	return NewSession(provider, runner)
}

func TestSendPlainReply(t *testing.T) {
	provider := &scriptedProvider{steps: []scriptStep{
		{text: "Hello! How can I help you schedule something?"},
	}}
	session := newTestSession(t, provider, nil)

	var streamed strings.Builder
	reply := session.Send(context.Background(), "hi there", func(chunk string) {
		streamed.WriteString(chunk)
	})

	if reply != "Hello! How can I help you schedule something?" {
		t.Errorf("unexpected reply %q", reply)
	}
	if streamed.String() != reply {
		t.Errorf("streamed content %q does not match reply", streamed.String())
	}

	msgs := session.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected system+user+assistant, got %d messages", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Role != "user" || msgs[2].Role != "assistant" {
		t.Errorf("unexpected history roles: %s %s %s", msgs[0].Role, msgs[1].Role, msgs[2].Role)
	}
}

func TestSendBookingFlow(t *testing.T) {
	var bookingHits int
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/bookings") {
			bookingHits++
			json.NewEncoder(w).Encode(map[string]any{"id": "abc123", "title": "Project Sync"})
			return
		}
		http.NotFound(w, r)
	}

	provider := &scriptedProvider{steps: []scriptStep{
		{toolCalls: []model.ToolCall{{
			ID:        "call_1",
			Name:      tools.ToolBook,
			Arguments: bookArguments(),
		}}},
		{text: "Your meeting 'Project Sync' has been scheduled."},
	}}
	session := newTestSession(t, provider, handler)

	reply := session.Send(context.Background(), "book it", nil)

	if reply != "Your meeting 'Project Sync' has been scheduled." {
		t.Errorf("unexpected reply %q", reply)
	}
	if bookingHits != 1 {
		t.Errorf("expected exactly 1 booking request, got %d", bookingHits)
	}
	if provider.calls != 2 {
		t.Errorf("expected 2 provider rounds, got %d", provider.calls)
	}

	// system, user, assistant(tool call), tool, assistant(reply)
	msgs := session.Messages()
	if len(msgs) != 5 {
		t.Fatalf("expected 5 history messages, got %d", len(msgs))
	}
	if len(msgs[2].ToolCalls) != 1 {
		t.Error("assistant message should carry the requested tool call")
	}
	toolMsg := msgs[3]
	if toolMsg.Role != "tool" || toolMsg.ToolCallID != "call_1" || toolMsg.ToolName != tools.ToolBook {
		t.Errorf("tool result not recorded correctly: %+v", toolMsg)
	}
	if !strings.Contains(toolMsg.Content, "Meeting successfully booked on Cal.com.") {
		t.Errorf("tool result missing success envelope: %s", toolMsg.Content)
	}
}

func TestSendListFlowEmptyCalendar(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   map[string]any{"bookings": []any{}},
		})
	}

	provider := &scriptedProvider{steps: []scriptStep{
		{toolCalls: []model.ToolCall{{
			ID:        "call_1",
			Name:      tools.ToolList,
			Arguments: map[string]any{"attendeeEmail": "alice@example.com"},
		}}},
		{text: "You have no meetings scheduled."},
	}}
	session := newTestSession(t, provider, handler)

	reply := session.Send(context.Background(), "show my meetings", nil)

	if reply != "You have no meetings scheduled." {
		t.Errorf("unexpected reply %q", reply)
	}
	toolMsg := session.Messages()[3]
	if !strings.Contains(toolMsg.Content, "No meetings found for alice@example.com.") {
		t.Errorf("tool result missing empty-calendar envelope: %s", toolMsg.Content)
	}
}

func TestSendMissingCalKeyGuard(t *testing.T) {
	provider := &scriptedProvider{steps: []scriptStep{{text: "should never be reached"}}}
	runner := tools.NewRunner(calcom.NewClient("", calcom.DefaultBaseURL, calcom.DefaultFindURL))
	session := NewSession(provider, runner)

	reply := session.Send(context.Background(), "Please BOOK me a slot", nil)

	if reply != notConfiguredReply {
		t.Errorf("unexpected reply %q", reply)
	}
	if provider.calls != 0 {
		t.Errorf("provider should not be consulted, got %d calls", provider.calls)
	}

	// Small talk still goes through to the provider
	reply = session.Send(context.Background(), "hello!", nil)
	if reply != "should never be reached" {
		t.Errorf("unexpected small-talk reply %q", reply)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call for small talk, got %d", provider.calls)
	}
}

func TestSendProviderFailure(t *testing.T) {
	provider := &scriptedProvider{steps: []scriptStep{
		{err: errors.New("connection refused")},
	}}
	session := newTestSession(t, provider, nil)

	reply := session.Send(context.Background(), "hi", nil)

	if reply != providerErrorReply {
		t.Errorf("unexpected reply %q", reply)
	}
	msgs := session.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != "assistant" || !strings.Contains(last.Content, "error communicating") {
		t.Errorf("history should record the failure, got %+v", last)
	}
}

func TestSendRoundCapExhaustion(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   map[string]any{"bookings": []any{}},
		})
	}

	// The provider keeps asking for the same tool forever.
	provider := &scriptedProvider{steps: []scriptStep{
		{toolCalls: []model.ToolCall{{
			ID:        "call_loop",
			Name:      tools.ToolList,
			Arguments: map[string]any{"attendeeEmail": "alice@example.com"},
		}}},
	}}
	session := newTestSession(t, provider, handler)

	reply := session.Send(context.Background(), "show meetings", nil)

	if reply != exhaustedReply {
		t.Errorf("unexpected reply %q", reply)
	}
	if provider.calls != maxRounds {
		t.Errorf("expected exactly %d provider rounds, got %d", maxRounds, provider.calls)
	}
}

func TestSendUnknownToolReported(t *testing.T) {
	provider := &scriptedProvider{steps: []scriptStep{
		{toolCalls: []model.ToolCall{{ID: "call_1", Name: "summon_weather"}}},
		{text: "I cannot do that."},
	}}
	session := newTestSession(t, provider, nil)

	reply := session.Send(context.Background(), "hi", nil)

	if reply != "I cannot do that." {
		t.Errorf("unexpected reply %q", reply)
	}
	toolMsg := session.Messages()[3]
	if !strings.Contains(toolMsg.Content, "Unknown function: summon_weather") {
		t.Errorf("unknown tool not reported in result: %s", toolMsg.Content)
	}
}

func TestContainsIntent(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Please book me a slot", true},
		{"SHOW my meetings", true},
		{"what's on cal.com today", true},
		{"cancel everything", true},
		{"hello there", false},
		{"what's the weather like", false},
	}

	for _, tt := range tests {
		if got := containsIntent(tt.input); got != tt.want {
			t.Errorf("containsIntent(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
