package provider

import (
	"strings"
	"testing"
	"time"

	"github.com/ollama/ollama/api"

	"brochat/model"
)

func TestConvertToOllamaMessages(t *testing.T) {
	tests := []struct {
		name     string
		input    []model.Message
		expected []api.Message
	}{
		{
			name:     "empty slice",
			input:    []model.Message{},
			expected: []api.Message{},
		},
		{
			name: "single message",
			input: []model.Message{
				{Role: model.RoleUser, Content: "Hello"},
			},
			expected: []api.Message{
				{Role: "user", Content: "Hello"},
			},
		},
		{
			name: "multiple messages",
			input: []model.Message{
				{Role: model.RoleSystem, Content: "Be chill"},
				{Role: model.RoleUser, Content: "Hello", Timestamp: time.Now()},
				{Role: model.RoleAssistant, Content: "Hi there", Timestamp: time.Now()},
			},
			expected: []api.Message{
				{Role: "system", Content: "Be chill"},
				{Role: "user", Content: "Hello"},
				{Role: "assistant", Content: "Hi there"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertToOllamaMessages(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, want %d", len(result), len(tt.expected))
			}

			for i, msg := range result {
				if msg.Role != tt.expected[i].Role {
					t.Errorf("message %d role: got %q, want %q", i, msg.Role, tt.expected[i].Role)
				}
				if msg.Content != tt.expected[i].Content {
					t.Errorf("message %d content: got %q, want %q", i, msg.Content, tt.expected[i].Content)
				}
				if len(msg.Images) != 0 {
					t.Errorf("message %d: unexpected images", i)
				}
			}
		})
	}
}

func TestConvertToOllamaMessagesImages(t *testing.T) {
	msg := model.NewUserMessage("what is this?",
		model.Attachment{Name: "cat.png", Kind: model.AttachmentImage, Data: []byte{0x89, 'P', 'N', 'G'}},
		model.Attachment{Name: "notes.txt", Kind: model.AttachmentText, Data: []byte("text")},
	)

	result := ConvertToOllamaMessages([]model.Message{msg})

	if len(result) != 1 {
		t.Fatalf("length mismatch: got %d, want 1", len(result))
	}
	if len(result[0].Images) != 1 {
		t.Fatalf("images: got %d, want 1", len(result[0].Images))
	}
	if string(result[0].Images[0]) != "\x89PNG" {
		t.Errorf("image bytes not preserved: %q", result[0].Images[0])
	}
}

func TestConvertToOpenAIMessages(t *testing.T) {
	input := []model.Message{
		{Role: model.RoleSystem, Content: "Be chill"},
		{Role: model.RoleUser, Content: "Hello"},
		{Role: model.RoleAssistant, Content: "Hi there"},
	}

	result := ConvertToOpenAIMessages(input)

	if len(result) != 3 {
		t.Fatalf("length mismatch: got %d, want 3", len(result))
	}
	if result[0].OfSystem == nil {
		t.Errorf("message 0: expected system message")
	}
	if result[1].OfUser == nil {
		t.Errorf("message 1: expected user message")
	}
	if result[2].OfAssistant == nil {
		t.Errorf("message 2: expected assistant message")
	}
}

func TestConvertToOpenAIMessagesImageParts(t *testing.T) {
	msg := model.NewUserMessage("look",
		model.Attachment{Name: "cat.png", Kind: model.AttachmentImage, Data: []byte("img")},
	)

	result := ConvertToOpenAIMessages([]model.Message{msg})

	user := result[0].OfUser
	if user == nil {
		t.Fatalf("expected user message")
	}
	parts := user.Content.OfArrayOfContentParts
	if len(parts) != 2 {
		t.Fatalf("parts: got %d, want 2", len(parts))
	}
	if parts[0].OfText == nil || parts[0].OfText.Text != "look" {
		t.Errorf("first part should be the text")
	}
	if parts[1].OfImageURL == nil || !strings.HasPrefix(parts[1].OfImageURL.ImageURL.URL, "data:image/png;base64,") {
		t.Errorf("second part should be a png data URL")
	}
}

func TestImageDataURL(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"photo.jpg", "data:image/jpeg;base64,"},
		{"PHOTO.PNG", "data:image/png;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := imageDataURL(model.Attachment{Name: tt.name, Data: []byte("x")})
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("got %q, want prefix %q", got, tt.prefix)
			}
		})
	}
}
