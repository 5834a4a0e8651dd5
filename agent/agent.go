// Package agent runs the conversation loop: it owns the message history,
// hands each user turn to the completion provider, executes any tool
// invocations the provider requests, and feeds the results back until the
// provider produces a plain text reply.
package agent

import (
	"context"
	"strings"

	"calchat/config"
	"calchat/model"
	"calchat/tools"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// maxRounds caps provider round-trips per user turn so a model stuck in a
// tool-call loop cannot spin forever.
const maxRounds = 7

const (
	notConfiguredReply = "I can't perform Cal.com operations because the Cal.com API key is not configured. Please ask the administrator to set it up."
	providerErrorReply = "Sorry, I encountered an error trying to connect to the AI service."
	exhaustedReply     = "Sorry, I couldn't complete your request after a few attempts. There might be an issue with repeated function calls or understanding the final step."
)

// intentKeywords mark a user turn as needing Cal.com access. When the Cal.com
// key is missing, turns containing any of these are answered locally instead
// of burning a provider round-trip on an operation that cannot succeed.
var intentKeywords = []string{"book", "show", "meeting", "schedule", "cal.com", "cancel"}

// Session is one conversation. It is not safe for concurrent use; the UI
// serializes turns.
type Session struct {
	provider model.Provider
	runner   *tools.Runner
	tools    []mcptypes.Tool
	messages []model.Message
}

// NewSession creates a session seeded with the system prompt.
func NewSession(provider model.Provider, runner *tools.Runner) *Session {
	return &Session{
		provider: provider,
		runner:   runner,
		tools:    tools.Definitions(),
		messages: []model.Message{model.NewSystemMessage(systemPrompt)},
	}
}

// Messages returns the conversation history, including the system prompt.
func (s *Session) Messages() []model.Message {
	return s.messages
}

// Send runs one user turn to completion and returns the assistant's reply.
//
// Text deltas stream through onDelta as they arrive; the return value is the
// final reply either way. Failures never surface as errors here: provider
// outages and round-trip exhaustion become fixed apology replies, and tool
// failures are reported to the provider as result envelopes for it to
// explain.
func (s *Session) Send(ctx context.Context, userInput string, onDelta func(string)) string {
	s.messages = append(s.messages, model.NewUserMessage(userInput))

	if !s.runner.Configured() && containsIntent(userInput) {
		s.messages = append(s.messages, model.NewAssistantMessage(notConfiguredReply))
		return notConfiguredReply
	}

	for round := 0; round < maxRounds; round++ {
		var content strings.Builder
		var requested []model.ToolCall

		err := s.provider.ChatWithTools(ctx, s.messages, s.tools, func(chunk string, toolCalls []model.ToolCall) error {
			if chunk != "" {
				content.WriteString(chunk)
				if onDelta != nil {
					onDelta(chunk)
				}
			}
			requested = append(requested, toolCalls...)
			return nil
		})
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[agent] provider error: %v", err)
			}
			s.messages = append(s.messages, model.NewAssistantMessage("Sorry, I encountered an error communicating with the AI service."))
			return providerErrorReply
		}

		if len(requested) == 0 {
			reply := content.String()
			s.messages = append(s.messages, model.NewAssistantMessage(reply))
			return reply
		}

		assistant := model.NewAssistantMessage(content.String())
		assistant.ToolCalls = requested
		s.messages = append(s.messages, assistant)

		for _, call := range requested {
			result := s.runner.Dispatch(ctx, call)
			s.messages = append(s.messages, model.NewToolMessage(call, result))
		}
	}

	return exhaustedReply
}

func containsIntent(input string) bool {
	lowered := strings.ToLower(input)
	for _, keyword := range intentKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
