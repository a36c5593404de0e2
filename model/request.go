package model

import (
	"time"

	"github.com/google/uuid"
)

// ModelRequest describes one model invocation. It is built per call and
// never stored.
type ModelRequest struct {
	ID           string
	ModelID      string
	Content      string
	SystemPrompt string
	Messages     []Message
}

// NewModelRequest builds a request with a fresh id. Content is the latest
// user turn in messages, or empty if there is none.
func NewModelRequest(modelID, systemPrompt string, messages []Message) ModelRequest {
	content := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			content = messages[i].Content
			break
		}
	}

	return ModelRequest{
		ID:           uuid.NewString(),
		ModelID:      modelID,
		Content:      content,
		SystemPrompt: systemPrompt,
		Messages:     messages,
	}
}

// ModelResponse is the typed result of one model invocation.
type ModelResponse struct {
	ID             string
	RequestID      string
	ModelID        string
	Role           Role
	Content        string
	Reason         string
	InputTokens    int
	OutputTokens   int
	ResponseTimeMS int64
}

// NewModelResponse stamps an assistant response for req with a fresh id.
func NewModelResponse(req ModelRequest, modelID, content string, elapsed time.Duration) *ModelResponse {
	if modelID == "" {
		modelID = req.ModelID
	}
	return &ModelResponse{
		ID:             uuid.NewString(),
		RequestID:      req.ID,
		ModelID:        modelID,
		Role:           RoleAssistant,
		Content:        content,
		ResponseTimeMS: elapsed.Milliseconds(),
	}
}

func (r *ModelResponse) Latency() time.Duration {
	return time.Duration(r.ResponseTimeMS) * time.Millisecond
}

// Message converts the response into the assistant turn stored in history.
func (r *ModelResponse) Message() Message {
	return NewAssistantMessage(r.Content)
}
