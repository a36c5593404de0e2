package provider

import (
	"errors"
	"testing"

	"brochat/model"
)

func TestNewChatModel(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		expectNil   bool
	}{
		{
			name: "ollama with defaults",
			config: Config{
				Type:    ProviderTypeOllama,
				BaseURL: "",
				Model:   "",
			},
			expectError: false,
			expectNil:   false,
		},
		{
			name: "ollama with custom config",
			config: Config{
				Type:    ProviderTypeOllama,
				BaseURL: "http://localhost:11434",
				Model:   "llama3.2:latest",
			},
			expectError: false,
			expectNil:   false,
		},
		{
			name: "empty type falls back to ollama",
			config: Config{
				BaseURL: "http://localhost:11434",
				Model:   "llama3.2:latest",
			},
			expectError: false,
			expectNil:   false,
		},
		{
			name: "openai-compatible",
			config: Config{
				Type:    ProviderTypeOpenAI,
				BaseURL: "http://localhost:11434/v1",
				Model:   "llama3.2",
			},
			expectError: false,
			expectNil:   false,
		},
		{
			name: "openai-compatible without model",
			config: Config{
				Type:    ProviderTypeOpenAI,
				BaseURL: "http://localhost:11434/v1",
			},
			expectError: true,
			expectNil:   true,
		},
		{
			name: "ollama with relative URL",
			config: Config{
				Type:    ProviderTypeOllama,
				BaseURL: "localhost",
				Model:   "llama3.2",
			},
			expectError: true,
			expectNil:   true,
		},
		{
			name: "unknown provider type",
			config: Config{
				Type:    ProviderType("unknown"),
				BaseURL: "http://localhost",
				Model:   "test",
			},
			expectError: true,
			expectNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chatModel, err := NewChatModel(tt.config)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.expectNil && chatModel != nil {
				t.Error("expected nil chat model, got non-nil")
			}
			if !tt.expectNil && chatModel == nil {
				t.Error("expected non-nil chat model, got nil")
			}
		})
	}
}

func TestNewChatModelUnknownType(t *testing.T) {
	_, err := NewChatModel(Config{Type: "carrier-pigeon"})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

// TestFactoryReturnsOllamaModel verifies that the factory returns an actual OllamaModel
func TestFactoryReturnsOllamaModel(t *testing.T) {
	cfg := Config{
		Type:    ProviderTypeOllama,
		BaseURL: "http://localhost:11434",
		Model:   "llama3.2:latest",
	}

	chatModel, err := NewChatModel(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	om, ok := chatModel.(*OllamaModel)
	if !ok {
		t.Fatalf("expected *OllamaModel, got %T", chatModel)
	}
	if om.ModelID() != "llama3.2:latest" {
		t.Errorf("ModelID() = %s, want llama3.2:latest", om.ModelID())
	}
}

func TestMapProviderIDToType(t *testing.T) {
	tests := map[string]ProviderType{
		"":           ProviderTypeOllama,
		"ollama":     ProviderTypeOllama,
		"openai":     ProviderTypeOpenAI,
		"openrouter": ProviderTypeOpenAI,
		"mystery":    ProviderType("mystery"),
	}

	for id, want := range tests {
		if got := MapProviderIDToType(id); got != want {
			t.Errorf("MapProviderIDToType(%q) = %s, want %s", id, got, want)
		}
	}
}

// Compile-time checks that both backends satisfy the interface.
var (
	_ model.ChatModel = (*OllamaModel)(nil)
	_ model.ChatModel = (*OpenAIModel)(nil)
)
