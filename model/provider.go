package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Provider abstracts LLM completion services (OpenAI, Anthropic, Ollama)
// using provider-agnostic types from the model layer.
//
// This interface lives in the model package (not provider) to avoid import
// cycles: provider implementations import model, and the agent can depend on
// the interface without importing any concrete provider.
type Provider interface {
	// Chat sends messages and streams the response back via callback.
	Chat(ctx context.Context, messages []Message, callback StreamCallback) error

	// ChatWithTools sends messages with the callable tool schemas and streams
	// the response. Text arrives as chunks; any tool invocations the model
	// requests are delivered through the callback once they are complete,
	// each carrying its invocation ID.
	ChatWithTools(ctx context.Context, messages []Message, tools []mcptypes.Tool, callback StreamCallback) error

	// GetModel returns the active model name.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}

// StreamCallback is called for each chunk of streamed response text and for
// completed tool invocations.
type StreamCallback func(chunk string, toolCalls []ToolCall) error
