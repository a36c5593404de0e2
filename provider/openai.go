package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"brochat/config"
	"brochat/model"
)

const (
	DefaultOpenAIBaseURL = "http://localhost:11434/v1"

	// Local OpenAI-compatible servers ignore the key but the client
	// requires one.
	localAPIKey = "local"
)

// OpenAIModel implements model.ChatModel against an OpenAI-compatible
// chat/completions endpoint using the official SDK.
type OpenAIModel struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenAIModel creates a new OpenAI-compatible chat model.
//
// Parameters:
//   - baseURL: API base URL (default: Ollama's "http://localhost:11434/v1")
//   - apiKey: API key (default: a placeholder accepted by local servers)
//   - modelName: Model to use (required)
//
// SDK retries are disabled; a failed call is reported once.
func NewOpenAIModel(baseURL, apiKey, modelName string, opts ...option.RequestOption) (*OpenAIModel, error) {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if apiKey == "" {
		apiKey = localAPIKey
	}
	if modelName == "" {
		return nil, errors.New("model name is required for OpenAI-compatible endpoints")
	}

	clientOpts := append([]option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &OpenAIModel{
		client:  openai.NewClient(clientOpts...),
		model:   modelName,
		baseURL: baseURL,
	}, nil
}

// Run implements model.ChatModel.
func (m *OpenAIModel) Run(ctx context.Context, systemPrompt string, messages []model.Message) (*model.ModelResponse, error) {
	req := model.NewModelRequest(m.model, systemPrompt, messages)

	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(model.BuildAPIMessages(systemPrompt, messages)),
		Model:    openai.ChatModel(m.model),
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[OpenAI] request %s: %d messages to %s (%s)", req.ID, len(params.Messages), m.baseURL, m.model)
	}

	start := time.Now()
	completion, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI chat failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI chat failed: no choices in completion %s", completion.ID)
	}

	choice := completion.Choices[0]
	resp := model.NewModelResponse(req, completion.Model, choice.Message.Content, time.Since(start))
	resp.Reason = string(choice.FinishReason)
	resp.InputTokens = int(completion.Usage.PromptTokens)
	resp.OutputTokens = int(completion.Usage.CompletionTokens)

	return resp, nil
}

// ModelID implements model.ChatModel.
func (m *OpenAIModel) ModelID() string {
	return m.model
}

// Ping implements model.ChatModel by attempting to list models.
func (m *OpenAIModel) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := m.client.Models.List(ctx); err != nil {
		return fmt.Errorf("OpenAI ping failed: %w", err)
	}
	return nil
}
