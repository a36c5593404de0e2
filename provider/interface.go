// Package provider implements model.ChatModel for the supported backends.
//
// The conversation layer only knows model.ChatModel; everything specific to
// a backend (wire types, token accounting, image encoding) stays here.
//
//   - provider.OllamaModel talks to Ollama's native /api/chat (default)
//   - provider.OpenAIModel talks to any OpenAI-compatible chat/completions
//     endpoint, such as Ollama's /v1
//   - provider.NewChatModel() creates one of them from config
//
// # Usage
//
//	cfg := provider.Config{
//	    Type:    provider.ProviderTypeOllama,
//	    BaseURL: "http://localhost:11434",
//	    Model:   "llama3.2:latest",
//	}
//	m, err := provider.NewChatModel(cfg)
//	if err != nil {
//	    // handle error
//	}
//	resp, err := m.Run(ctx, systemPrompt, history)
package provider

import "errors"

// Note: The ChatModel interface is defined in the model package
// (model/provider.go) to avoid import cycles.

// ProviderType identifies the backend implementation.
type ProviderType string

const (
	ProviderTypeOllama ProviderType = "ollama"
	ProviderTypeOpenAI ProviderType = "openai"
)

// ErrUnknownProvider is returned by NewChatModel for an unsupported Type.
var ErrUnknownProvider = errors.New("unknown provider type")

// Config holds backend configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // OpenAI-compatible endpoints only; local servers ignore it
}
