// Package atoms contains the smallest interactive pieces of the chat frame.
package atoms

import (
	"github.com/charmbracelet/lipgloss"

	"brochat/ui/design"
)

// IconButton is a one-glyph button. It has no behavior of its own; the
// owning template decides what activating it does.
type IconButton struct {
	Icon     string
	Color    lipgloss.Color
	Focused  bool
	Disabled bool
}

func NewIconButton(icon string) IconButton {
	return IconButton{Icon: icon, Color: design.Colors.TextPrimary}
}

// Enabled reports whether activating the button should do anything.
func (b IconButton) Enabled() bool {
	return !b.Disabled
}

func (b IconButton) View() string {
	style := lipgloss.NewStyle().
		Padding(0, design.SpacingSM).
		Foreground(b.Color)

	switch {
	case b.Disabled:
		style = style.Foreground(design.Colors.TextSecondary).Faint(true)
	case b.Focused:
		style = style.Foreground(design.Colors.Background).Background(design.Colors.Primary).Bold(true)
	}

	return style.Render(b.Icon)
}

// Width is the rendered width of the button in cells.
func (b IconButton) Width() int {
	return lipgloss.Width(b.View())
}
