// Package organisms assembles molecules into the larger regions of the chat
// frame.
package organisms

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"brochat/config"
	"brochat/model"
	"brochat/ui/design"
	"brochat/ui/molecules"
)

// ChatList is the scrollable list of message bubbles. It implements
// model.MessageList; every Append scrolls to the newest message.
type ChatList struct {
	viewport      viewport.Model
	userName      string
	assistantName string

	messages []model.Message
	rendered []string // bubble cache, one entry per message
}

func NewChatList(width, height int, userName, assistantName string) *ChatList {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true

	l := &ChatList{
		viewport:      vp,
		userName:      userName,
		assistantName: assistantName,
	}
	l.refresh()
	return l
}

// Append implements model.MessageList.
func (l *ChatList) Append(msg model.Message) {
	l.messages = append(l.messages, msg)
	l.rendered = append(l.rendered, l.render(msg))
	l.refresh()
	l.viewport.GotoBottom()
}

// Clear implements model.MessageList.
func (l *ChatList) Clear() {
	l.messages = nil
	l.rendered = nil
	l.refresh()
	l.viewport.GotoTop()
}

func (l *ChatList) Len() int {
	return len(l.messages)
}

// SetSize resizes the list and re-renders every bubble for the new width.
func (l *ChatList) SetSize(width, height int) {
	if width == l.viewport.Width && height == l.viewport.Height {
		return
	}
	l.viewport.Width = width
	l.viewport.Height = height

	for i, msg := range l.messages {
		l.rendered[i] = l.render(msg)
	}
	l.refresh()
	l.viewport.GotoBottom()
}

// ScrollTo puts the message at index on the first visible line.
func (l *ChatList) ScrollTo(index int) {
	if index < 0 || index >= len(l.rendered) {
		return
	}

	offset := 0
	for _, r := range l.rendered[:index] {
		offset += lipgloss.Height(r) + design.SpacingMD
	}
	l.viewport.SetYOffset(offset)

	if config.DebugLog != nil {
		config.DebugLog.Printf("[ChatList] scrolled to message %d (line %d)", index, offset)
	}
}

// YOffset is the first visible line.
func (l *ChatList) YOffset() int {
	return l.viewport.YOffset
}

func (l *ChatList) AtBottom() bool {
	return l.viewport.AtBottom()
}

// Update forwards scroll keys and mouse wheel events to the viewport.
func (l *ChatList) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return cmd
}

func (l *ChatList) View() string {
	return l.viewport.View()
}

func (l *ChatList) render(msg model.Message) string {
	name := l.userName
	if msg.Role == model.RoleAssistant {
		name = l.assistantName
	}
	return molecules.MessageBubble(name, msg, l.viewport.Width)
}

func (l *ChatList) refresh() {
	if len(l.rendered) == 0 {
		empty := design.CaptionStyle.Render("No messages yet. Say hi to " + l.assistantName + "!")
		l.viewport.SetContent(lipgloss.Place(l.viewport.Width, l.viewport.Height, lipgloss.Center, lipgloss.Center, empty))
		return
	}

	gap := strings.Repeat("\n", design.SpacingMD+1)
	l.viewport.SetContent(strings.Join(l.rendered, gap))
}
