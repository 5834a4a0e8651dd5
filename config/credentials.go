package config

import "os"

// Credentials are opaque pre-issued secrets supplied through the process
// environment. They are never written to the settings file.

// CompletionAPIKey returns the API key for the given completion provider.
// Ollama runs locally and needs no key.
func CompletionAPIKey(providerID string) string {
	switch providerID {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}

// CalComAPIKey returns the Cal.com shared-secret token. An empty value
// disables Cal.com operations but does not abort startup.
func CalComAPIKey() string {
	return os.Getenv("CAL_COM_API_KEY")
}

// CompletionKeyRequired reports whether the provider cannot run without a key.
func CompletionKeyRequired(providerID string) bool {
	return providerID == "openai" || providerID == "anthropic"
}
