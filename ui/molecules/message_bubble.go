// Package molecules combines atoms into the pieces of the chat frame: message
// bubbles, the nav bar, the input row and the modal frame.
package molecules

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"brochat/model"
	"brochat/ui/design"
)

// MessageBubble renders one message with its author's name above it.
// User messages are plain text aligned right; assistant messages are
// markdown aligned left.
func MessageBubble(name string, msg model.Message, width int) string {
	isAssistant := msg.Role == model.RoleAssistant

	maxWidth := width * 4 / 5
	if maxWidth < 12 {
		maxWidth = width
	}

	var bubble string
	if isAssistant {
		style := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(design.Colors.Primary).
			PaddingLeft(design.SpacingMD)
		bubble = style.Render(RenderMarkdown(msg.Content, maxWidth-2))
	} else {
		style := lipgloss.NewStyle().
			Foreground(design.Colors.TextPrimary).
			Background(design.Colors.UserBubble).
			Padding(0, design.SpacingMD)
		if lipgloss.Width(msg.Content)+2*design.SpacingMD > maxWidth {
			style = style.Width(maxWidth)
		}
		bubble = style.Render(msg.Content)
	}

	parts := []string{design.CaptionStyle.Render(name)}
	for _, a := range msg.Attachments {
		parts = append(parts, design.CaptionStyle.Render(attachmentLabel(a)))
	}
	parts = append(parts, bubble)

	align := lipgloss.Right
	if isAssistant {
		align = lipgloss.Left
	}

	block := lipgloss.JoinVertical(align, parts...)
	return lipgloss.PlaceHorizontal(width, align, block)
}

func attachmentLabel(a model.Attachment) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(a.Kind))
	b.WriteString("] ")
	b.WriteString(a.Name)
	return b.String()
}
