package organisms

import (
	"github.com/charmbracelet/lipgloss"

	"brochat/ui/design"
)

// ChatContainer frames the chat list with design.SpacingMD padding. The
// result is width x height cells; the list inside must be sized with
// ChatListSize.
func ChatContainer(list *ChatList, width, height int) string {
	return lipgloss.NewStyle().
		Padding(design.SpacingMD).
		Width(width).
		Height(height).
		MaxHeight(height).
		Render(list.View())
}

// ChatListSize is the list area left inside a container of width x height.
func ChatListSize(width, height int) (int, int) {
	return width - 2*design.SpacingMD, height - 2*design.SpacingMD
}
