package config

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DataDirectory: "~/.local/share/calchat",
		Provider: ProviderConfig{
			ID:    "openai",
			Model: "gpt-4o",
		},
		CalCom: CalComConfig{
			BaseURL: "https://api.cal.com/v1",
			FindURL: "https://api.cal.com/v2",
		},
	}
}

func GenerateSettingsTemplate() string {
	return `# calchat Configuration
# Location: ~/.config/calchat/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the debug log is stored
data_directory = "~/.local/share/calchat"

[provider]
# Completion service: "openai", "anthropic", or "ollama"
id = "openai"

# Model to use for tool-calling conversations
model = "gpt-4o"

# Override the provider API base URL (optional)
# base_url = ""

[calcom]
# Cal.com legacy API surface (apiKey query auth)
base_url = "https://api.cal.com/v1"

# Cal.com bearer-token API surface (booking lookup)
find_url = "https://api.cal.com/v2"
`
}
