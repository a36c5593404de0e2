package model

import (
	"fmt"
	"strings"
)

// BuildAPIMessages converts the conversation into the sequence sent to a
// model endpoint.
//
// Layer 1: system prompt (persona), only if set
// Layer 2: user and assistant turns in history order
//
// Text attachments are inlined into the content of the message carrying
// them; documents are mentioned by name; images stay on the message for
// providers that can send them.
func BuildAPIMessages(systemPrompt string, history []Message) []Message {
	messages := make([]Message, 0, len(history)+1)

	if systemPrompt != "" {
		messages = append(messages, Message{
			Role:    RoleSystem,
			Content: systemPrompt,
		})
	}

	for _, msg := range history {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			continue
		}
		messages = append(messages, Message{
			Role:        msg.Role,
			Content:     contentWithAttachments(msg),
			Attachments: msg.Attachments,
			Timestamp:   msg.Timestamp,
		})
	}

	return messages
}

func contentWithAttachments(msg Message) string {
	if len(msg.Attachments) == 0 {
		return msg.Content
	}

	var b strings.Builder
	b.WriteString(msg.Content)
	for _, a := range msg.Attachments {
		switch a.Kind {
		case AttachmentText:
			fmt.Fprintf(&b, "\n\n[attached file: %s]\n```\n%s\n```", a.Name, strings.TrimRight(string(a.Data), "\n"))
		case AttachmentDocument:
			fmt.Fprintf(&b, "\n\n[attached document: %s]", a.Name)
		}
	}
	return b.String()
}
