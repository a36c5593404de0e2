package provider

import (
	"fmt"

	"brochat/model"
)

// NewChatModel creates a chat model based on configuration.
//
// Returns ErrUnknownProvider (wrapped) if the type is unknown, or the
// backend constructor's error (e.g., invalid URL).
func NewChatModel(cfg Config) (model.ChatModel, error) {
	switch cfg.Type {
	case ProviderTypeOllama, "":
		return NewOllamaModel(cfg.BaseURL, cfg.Model)
	case ProviderTypeOpenAI:
		return NewOpenAIModel(cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Type)
	}
}

// MapProviderIDToType converts a config provider ID to a ProviderType.
// "openrouter" and other OpenAI-compatible names map to ProviderTypeOpenAI.
// Unknown IDs are returned as-is so the factory reports them.
func MapProviderIDToType(id string) ProviderType {
	switch id {
	case "", "ollama":
		return ProviderTypeOllama
	case "openai", "openai-compatible", "openrouter":
		return ProviderTypeOpenAI
	default:
		return ProviderType(id)
	}
}
