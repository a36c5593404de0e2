// Package design holds the visual tokens shared by every component: the
// palette, spacing steps, text styles and the fixed frame geometry.
package design

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors is the palette. Values are ANSI 256 codes so the frame looks the
// same on light and dark terminals.
var Colors = struct {
	Primary       lipgloss.Color
	Background    lipgloss.Color
	Surface       lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	UserBubble    lipgloss.Color
	AIBubble      lipgloss.Color
	Danger        lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
}{
	Primary:       lipgloss.Color("12"),
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("236"),
	TextPrimary:   lipgloss.Color("15"),
	TextSecondary: lipgloss.Color("245"),
	UserBubble:    lipgloss.Color("238"),
	AIBubble:      lipgloss.Color("235"),
	Danger:        lipgloss.Color("9"),
	Success:       lipgloss.Color("10"),
	Warning:       lipgloss.Color("11"),
}

// Spacing steps, in terminal cells.
const (
	SpacingXS = 1
	SpacingSM = 1
	SpacingMD = 1
	SpacingLG = 2
	SpacingXL = 3
)

// Layout is the fixed frame. 54x40 cells stands in for a 430x800 window.
const (
	FrameWidth  = 54
	FrameHeight = 40
	NavHeight   = 3
	InputHeight = 5
)

var (
	BodyStyle = lipgloss.NewStyle().
			Foreground(Colors.TextPrimary)

	CaptionStyle = lipgloss.NewStyle().
			Foreground(Colors.TextSecondary)

	TitleStyle = lipgloss.NewStyle().
			Foreground(Colors.TextPrimary).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Colors.Danger)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Colors.TextSecondary)
)

// FormatFooter formats a help line with alternating keys and descriptions.
// Usage: FormatFooter("Enter", "Send", "Esc", "Cancel")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true)
	var result []string
	for i := 0; i+1 < len(parts); i += 2 {
		result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
	}
	return strings.Join(result, "  ")
}
