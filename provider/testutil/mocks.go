package testutil

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"brochat/model"
)

// MockChatModel implements model.ChatModel for testing
type MockChatModel struct {
	// Configurable responses
	RunFunc  func(ctx context.Context, systemPrompt string, messages []model.Message) (*model.ModelResponse, error)
	PingFunc func(ctx context.Context) error

	mu           sync.Mutex
	calls        []RunCall
	currentModel string
}

// RunCall records the arguments of one Run invocation
type RunCall struct {
	SystemPrompt string
	Messages     []model.Message
}

// NewMockChatModel creates a mock that always answers with reply
func NewMockChatModel(modelName, reply string) *MockChatModel {
	mock := &MockChatModel{currentModel: modelName}
	mock.RunFunc = func(ctx context.Context, systemPrompt string, messages []model.Message) (*model.ModelResponse, error) {
		req := model.NewModelRequest(modelName, systemPrompt, messages)
		resp := model.NewModelResponse(req, modelName, reply, 12*time.Millisecond)
		resp.Reason = "stop"
		resp.InputTokens = 10
		resp.OutputTokens = 5
		return resp, nil
	}
	mock.PingFunc = func(ctx context.Context) error { return nil }
	return mock
}

// NewFailingChatModel creates a mock whose Run always returns err
func NewFailingChatModel(modelName string, err error) *MockChatModel {
	mock := NewMockChatModel(modelName, "")
	mock.RunFunc = func(ctx context.Context, systemPrompt string, messages []model.Message) (*model.ModelResponse, error) {
		return nil, err
	}
	return mock
}

func (m *MockChatModel) Run(ctx context.Context, systemPrompt string, messages []model.Message) (*model.ModelResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, RunCall{SystemPrompt: systemPrompt, Messages: messages})
	m.mu.Unlock()
	return m.RunFunc(ctx, systemPrompt, messages)
}

func (m *MockChatModel) ModelID() string {
	return m.currentModel
}

func (m *MockChatModel) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

// Calls returns every recorded Run invocation
func (m *MockChatModel) Calls() []RunCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RunCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// RecordingList implements model.MessageList and remembers what was shown
type RecordingList struct {
	Messages []model.Message
	Clears   int
}

func (l *RecordingList) Append(msg model.Message) {
	l.Messages = append(l.Messages, msg)
}

func (l *RecordingList) Clear() {
	l.Messages = nil
	l.Clears++
}

// StubPicker implements model.FilePicker and records the requested filter
type StubPicker struct {
	Opened       int
	AllowedTypes []string
}

func (p *StubPicker) Open(allowedTypes []string) tea.Cmd {
	p.Opened++
	p.AllowedTypes = allowedTypes
	return nil
}

// MemoryRecorder implements model.UsageRecorder in memory
type MemoryRecorder struct {
	Responses []*model.ModelResponse
	Err       error
}

func (r *MemoryRecorder) Record(ctx context.Context, resp *model.ModelResponse) error {
	if r.Err != nil {
		return r.Err
	}
	r.Responses = append(r.Responses, resp)
	return nil
}
