package molecules

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"brochat/model"
	"brochat/ui/atoms"
	"brochat/ui/design"
)

// EndpointStatus is the state of the model status dot.
type EndpointStatus int

const (
	StatusUnknown EndpointStatus = iota
	StatusOnline
	StatusOffline
)

// NavBar is the top bar: model status on the left, the title centered and
// the clear button on the right. The second row carries usage totals.
type NavBar struct {
	Title       string
	ModelID     string
	Status      EndpointStatus
	Usage       model.Usage
	ClearButton atoms.IconButton
}

func NewNavBar(title, modelID string) NavBar {
	return NavBar{
		Title:       title,
		ModelID:     modelID,
		ClearButton: atoms.NewIconButton("↻"),
	}
}

func (n NavBar) statusDot() string {
	switch n.Status {
	case StatusOnline:
		return lipgloss.NewStyle().Foreground(design.Colors.Success).Render("●")
	case StatusOffline:
		return lipgloss.NewStyle().Foreground(design.Colors.Danger).Render("●")
	default:
		return design.CaptionStyle.Render("○")
	}
}

// View renders the bar at exactly width cells by design.NavHeight rows.
func (n NavBar) View(width int) string {
	clear := n.ClearButton.View()
	clearW := lipgloss.Width(clear)

	maxTitle := width - 2*(clearW+2)
	if maxTitle < 1 {
		maxTitle = 1
	}
	title := runewidth.Truncate(n.Title, maxTitle, "…")
	titleW := runewidth.StringWidth(title)

	side := (width - titleW) / 2
	rightW := width - titleW - side

	modelText := runewidth.Truncate(n.ModelID, max(side-3, 0), "…")
	left := lipgloss.NewStyle().
		Width(side).
		Render(n.statusDot() + " " + design.CaptionStyle.Render(modelText))
	right := lipgloss.NewStyle().
		Width(rightW).
		Align(lipgloss.Right).
		Render(clear)

	top := lipgloss.JoinHorizontal(lipgloss.Top, left, design.TitleStyle.Render(title), right)

	usage := ""
	if n.Usage.Turns > 0 {
		usage = fmt.Sprintf("%d turns · %d tokens · %s avg",
			n.Usage.Turns, n.Usage.TotalTokens(), n.Usage.AverageResponseTime().Round(100*time.Millisecond))
	}
	usageRow := lipgloss.PlaceHorizontal(width, lipgloss.Center, design.CaptionStyle.Render(runewidth.Truncate(usage, width, "…")))

	rule := lipgloss.NewStyle().
		Foreground(design.Colors.Surface).
		Render(strings.Repeat("─", width))

	return lipgloss.JoinVertical(lipgloss.Left, top, usageRow, rule)
}

// ClearButtonSpan returns the column range [start, end) of the clear button
// within a bar rendered at width.
func (n NavBar) ClearButtonSpan(width int) (int, int) {
	w := n.ClearButton.Width()
	return width - w, width
}
