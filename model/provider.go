package model

import "context"

// ChatModel is the capability the conversation needs from a model backend.
//
// It is defined here rather than in the provider package so implementations
// can import model without an import cycle.
type ChatModel interface {
	// Run sends the system prompt and full history in one blocking call
	// and returns the parsed reply. Transport errors are returned as-is
	// (wrapped); there are no retries.
	Run(ctx context.Context, systemPrompt string, messages []Message) (*ModelResponse, error)

	// ModelID returns the model identifier sent with every request.
	ModelID() string

	// Ping checks if the endpoint is reachable.
	Ping(ctx context.Context) error
}

// UsageRecorder receives every successful response. Implementations must
// be safe to call from the UI loop and should return quickly.
type UsageRecorder interface {
	Record(ctx context.Context, resp *ModelResponse) error
}
