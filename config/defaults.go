package config

const (
	DefaultProvider       = "ollama"
	DefaultHost           = "http://localhost:11434"
	DefaultModelName      = "llama3.2:latest"
	DefaultTimeoutSeconds = 120
)

// DefaultSystemPrompt sets the assistant persona for every request.
const DefaultSystemPrompt = "You're the best bro, Andy who is always chill and supportive. " +
	"Always reply in laid-back manner and always stick with bro-style."

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/brochat",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Model: ModelConfig{
			Provider:              DefaultProvider,
			Host:                  DefaultHost,
			Name:                  DefaultModelName,
			RequestTimeoutSeconds: DefaultTimeoutSeconds,
		},
		Chat: ChatConfig{
			Title:         "Chat",
			UserName:      "You",
			AssistantName: "Andy",
			SystemPrompt:  DefaultSystemPrompt,
		},
		UsageLog: true,
	}
}

func GenerateSystemConfigTemplate() string {
	return `# brochat System Configuration
# Location: ~/.config/brochat/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the user config, debug log and usage ledger are stored
data_directory = "~/.local/share/brochat"
`
}

func GenerateUserConfigTemplate() string {
	return `# brochat User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Record token counts and latency of every reply in usage.db (no message text)
usage_log = true

[model]
# "ollama" talks to /api/chat, "openai" to an OpenAI-compatible /v1 endpoint
provider = "ollama"

# Inference server URL
host = "http://localhost:11434"

# Model used for every request
name = "llama3.2:latest"

# Give up on a reply after this many seconds (negative disables the limit)
request_timeout_seconds = 120

[chat]
title = "Chat"
user_name = "You"
assistant_name = "Andy"

# Instruction prepended to every request
system_prompt = "You're the best bro, Andy who is always chill and supportive. Always reply in laid-back manner and always stick with bro-style."
`
}
