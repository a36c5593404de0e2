package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"brochat/config"
	"brochat/model"
	"brochat/ollama"
)

// OllamaModel wraps ollama.Client to implement model.ChatModel.
//
// Every Run is one non-streaming /api/chat call carrying the system prompt
// and the full history. Token counts come from the server's
// prompt_eval_count and eval_count; latency is measured locally.
type OllamaModel struct {
	client *ollama.Client
}

// NewOllamaModel creates a new Ollama chat model.
//
// Parameters:
//   - baseURL: The Ollama server URL (e.g., "http://localhost:11434").
//     If empty, defaults to ollama.DefaultBaseURL.
//   - modelName: The model to use (e.g., "llama3.2:latest").
//     If empty, defaults to ollama.DefaultModel.
//
// Returns an error if the baseURL is invalid.
func NewOllamaModel(baseURL, modelName string) (*OllamaModel, error) {
	return NewOllamaModelWithHTTP(baseURL, modelName, http.DefaultClient)
}

func NewOllamaModelWithHTTP(baseURL, modelName string, httpClient *http.Client) (*OllamaModel, error) {
	client, err := ollama.NewClientWithHTTP(baseURL, modelName, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaModel{client: client}, nil
}

// Run implements model.ChatModel.
func (m *OllamaModel) Run(ctx context.Context, systemPrompt string, messages []model.Message) (*model.ModelResponse, error) {
	req := model.NewModelRequest(m.client.GetModel(), systemPrompt, messages)
	apiMessages := ConvertToOllamaMessages(model.BuildAPIMessages(systemPrompt, messages))

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Ollama] request %s: %d messages to %s (%s)", req.ID, len(apiMessages), m.client.BaseURL(), req.ModelID)
	}

	start := time.Now()
	chatResp, err := m.client.Chat(ctx, apiMessages)
	if err != nil {
		return nil, fmt.Errorf("ollama chat failed: %w", err)
	}

	resp := model.NewModelResponse(req, chatResp.Model, chatResp.Message.Content, time.Since(start))
	resp.Reason = chatResp.DoneReason
	resp.InputTokens = chatResp.PromptEvalCount
	resp.OutputTokens = chatResp.EvalCount

	return resp, nil
}

// ModelID implements model.ChatModel.
func (m *OllamaModel) ModelID() string {
	return m.client.GetModel()
}

// Ping implements model.ChatModel. It fails when the server is unreachable
// or the configured model has not been pulled.
func (m *OllamaModel) Ping(ctx context.Context) error {
	return m.client.Ping(ctx)
}
