package model

import "time"

// Message represents one entry in the conversation history.
//
// Roles follow the completion-service convention: "system", "user",
// "assistant", and "tool". Assistant messages may carry the tool invocations
// the model requested; tool messages answer exactly one of those invocations
// and reference it through ToolCallID.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall // requested invocations (assistant messages only)
	ToolCallID string     // invocation this message answers (tool messages only)
	ToolName   string     // tool that produced this result (tool messages only)
	Timestamp  time.Time
}

// ToolCall is a provider-agnostic tool invocation request: an identifier
// assigned by the completion service, a tool name, and decoded JSON arguments.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content, Timestamp: time.Now()}
}

func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content, Timestamp: time.Now()}
}

func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content, Timestamp: time.Now()}
}

// NewToolMessage wraps a tool result so it answers the given invocation.
func NewToolMessage(call ToolCall, result string) Message {
	return Message{
		Role:       "tool",
		Content:    result,
		ToolCallID: call.ID,
		ToolName:   call.Name,
		Timestamp:  time.Now(),
	}
}
