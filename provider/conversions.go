package provider

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"

	"brochat/model"
)

// ConvertToOllamaMessages converts model.Message to Ollama api.Message.
//
// Image attachments travel as raw bytes in Images; the Timestamp is not
// preserved since the API has no field for it.
func ConvertToOllamaMessages(messages []model.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		result[i] = api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
		for _, img := range msg.Images() {
			result[i].Images = append(result[i].Images, api.ImageData(img))
		}
	}
	return result
}

// ConvertToOpenAIMessages converts model.Message to OpenAI message params.
// User messages carrying images are sent as multi-part content with data URLs.
func ConvertToOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			result[i] = openai.SystemMessage(msg.Content)
		case model.RoleAssistant:
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			result[i] = openAIUserMessage(msg)
		}
	}

	return result
}

func openAIUserMessage(msg model.Message) openai.ChatCompletionMessageParamUnion {
	var parts []openai.ChatCompletionContentPartUnionParam
	for _, a := range msg.Attachments {
		if a.Kind != model.AttachmentImage {
			continue
		}
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: imageDataURL(a),
		}))
	}

	if len(parts) == 0 {
		return openai.UserMessage(msg.Content)
	}
	parts = append([]openai.ChatCompletionContentPartUnionParam{openai.TextContentPart(msg.Content)}, parts...)
	return openai.UserMessage(parts)
}

func imageDataURL(a model.Attachment) string {
	mime := "image/jpeg"
	if strings.EqualFold(filepath.Ext(a.Name), ".png") {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(a.Data))
}
