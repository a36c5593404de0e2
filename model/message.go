package model

import "time"

// Role tags a turn in the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message represents a chat message in the conversation.
// Messages are values; once appended to a history they are never changed.
type Message struct {
	Role        Role
	Content     string
	Attachments []Attachment
	Timestamp   time.Time
}

func NewUserMessage(content string, attachments ...Attachment) Message {
	return Message{
		Role:        RoleUser,
		Content:     content,
		Attachments: attachments,
		Timestamp:   time.Now(),
	}
}

func NewAssistantMessage(content string) Message {
	return Message{
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// Images returns the raw bytes of every image attachment on the message.
func (m Message) Images() [][]byte {
	var images [][]byte
	for _, a := range m.Attachments {
		if a.Kind == AttachmentImage {
			images = append(images, a.Data)
		}
	}
	return images
}
