package molecules

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"brochat/ui/design"
)

// ModalType determines the title color of a modal
type ModalType int

const (
	ModalTypeInfo ModalType = iota
	ModalTypeWarning
	ModalTypeError
)

// Modal renders a borderless modal: Title (no border) → Message (BorderTop) → Footer (BorderTop)
// centered in width x height. messageLines are pre-formatted; padding is added here.
// desiredWidth: preferred modal width (0 = default 60)
func Modal(title string, messageLines []string, footer string, modalType ModalType, desiredWidth, width, height int) string {
	if width < 20 || height < 10 {
		return "Terminal too small"
	}

	modalWidth := ModalWidth(desiredWidth, width)

	var titleColor lipgloss.Color
	switch modalType {
	case ModalTypeInfo:
		titleColor = design.Colors.Primary
	case ModalTypeWarning:
		titleColor = design.Colors.Warning
	case ModalTypeError:
		titleColor = design.Colors.Danger
	}

	// runewidth for accurate emoji handling
	title = runewidth.Truncate(title, modalWidth, "…")
	titleVisualWidth := runewidth.StringWidth(title)
	leftPad := (modalWidth - titleVisualWidth) / 2
	rightPad := modalWidth - titleVisualWidth - leftPad
	centeredTitle := strings.Repeat(" ", leftPad) + title + strings.Repeat(" ", rightPad)

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(titleColor).
		Render(centeredTitle)

	contentLines := make([]string, 0, len(messageLines)+2)
	contentLines = append(contentLines, strings.Repeat(" ", modalWidth)) // Top padding
	contentLines = append(contentLines, messageLines...)
	contentLines = append(contentLines, strings.Repeat(" ", modalWidth)) // Bottom padding

	messageSection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(design.Colors.TextSecondary).
		Width(modalWidth).
		Render(strings.Join(contentLines, "\n"))

	footerSection := lipgloss.NewStyle().
		Foreground(design.Colors.TextSecondary).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(design.Colors.TextSecondary).
		Render(footer)

	content := strings.Join([]string{titleSection, messageSection, footerSection}, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// ModalWidth is the usable message width of a modal rendered into width.
func ModalWidth(desiredWidth, width int) int {
	if desiredWidth == 0 {
		desiredWidth = 60
	}
	if width < desiredWidth+4 {
		return width - 4
	}
	return desiredWidth
}

// WordWrap wraps text to fit within width while preserving newlines.
func WordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	paragraphs := strings.Split(text, "\n")

	for i, paragraph := range paragraphs {
		words := strings.Fields(paragraph)
		if len(words) > 0 {
			currentLine := words[0]
			for _, word := range words[1:] {
				if runewidth.StringWidth(currentLine)+1+runewidth.StringWidth(word) <= width {
					currentLine += " " + word
				} else {
					result.WriteString(currentLine + "\n")
					currentLine = word
				}
			}
			result.WriteString(currentLine)
		}

		if i < len(paragraphs)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}
