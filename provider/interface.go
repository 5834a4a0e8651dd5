// Package provider implements the completion-service abstraction.
//
// calchat talks to one of several LLM providers (OpenAI, Anthropic, Ollama)
// through the model.Provider interface, so the orchestration loop and the UI
// stay provider-agnostic. Each implementation handles its SDK's message and
// tool-schema formats; the conversions live in conversions.go.
package provider

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeOllama    ProviderType = "ollama"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
}
