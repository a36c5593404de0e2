package molecules

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"brochat/ui/atoms"
	"brochat/ui/design"
)

// ChatInput is the bottom row: attach button, message field, send button.
// Above it sits a one-line status (spinner, error, flash or the staged
// attachment chip); below it a key hint line.
type ChatInput struct {
	Attach atoms.IconButton
	Field  textarea.Model
	Send   atoms.IconButton

	// Attachment is the name of the staged file, empty if none.
	Attachment string
	// Status replaces the chip line when set, e.g. while a reply is pending.
	Status string
	Error  string
	Flash  string
}

// NewChatInput sizes the row for an outer width; horizontal padding is
// design.SpacingLG on each side.
func NewChatInput(width int) ChatInput {
	attach := atoms.NewIconButton("+")
	send := atoms.NewIconButton("➤")
	send.Color = design.Colors.Primary

	inner := width - 2*design.SpacingLG
	fieldWidth := inner - attach.Width() - send.Width() - 2

	return ChatInput{
		Attach: attach,
		Field:  atoms.NewTextField(fieldWidth),
		Send:   send,
	}
}

func (c ChatInput) statusLine(width int) string {
	switch {
	case c.Error != "":
		return design.ErrorStyle.Render(runewidth.Truncate(c.Error, width, "…"))
	case c.Status != "":
		return design.CaptionStyle.Render(runewidth.Truncate(c.Status, width, "…"))
	case c.Flash != "":
		return lipgloss.NewStyle().Foreground(design.Colors.Success).Render(runewidth.Truncate(c.Flash, width, "…"))
	case c.Attachment != "":
		hint := "  Alt+X remove"
		name := runewidth.Truncate(c.Attachment, width-runewidth.StringWidth(hint)-2, "…")
		chip := lipgloss.NewStyle().
			Foreground(design.Colors.TextPrimary).
			Background(design.Colors.Surface).
			Render("+ " + name)
		return chip + design.CaptionStyle.Render(hint)
	}
	return ""
}

// View renders the row at exactly width cells by design.InputHeight rows.
func (c ChatInput) View(width int) string {
	inner := width - 2*design.SpacingLG
	rowHeight := atoms.TextFieldHeight

	attach := lipgloss.Place(c.Attach.Width(), rowHeight, lipgloss.Left, lipgloss.Center, c.Attach.View())
	send := lipgloss.Place(c.Send.Width(), rowHeight, lipgloss.Left, lipgloss.Center, c.Send.View())

	row := lipgloss.JoinHorizontal(lipgloss.Top, attach, " ", c.Field.View(), " ", send)

	help := design.HelpStyle.Render(design.FormatFooter("Enter", "Send", "Alt+Enter", "Newline", "Alt+A", "Attach"))

	block := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(inner).Render(c.statusLine(inner)),
		row,
		lipgloss.NewStyle().Width(inner).MaxWidth(inner).Render(help),
	)

	return lipgloss.NewStyle().Padding(0, design.SpacingLG).Render(block)
}

// AttachSpan and SendSpan return the column ranges [start, end) of the
// buttons within a row rendered at width. Both sit on rows 1 to
// atoms.TextFieldHeight of the block.
func (c ChatInput) AttachSpan(width int) (int, int) {
	start := design.SpacingLG
	return start, start + c.Attach.Width()
}

func (c ChatInput) SendSpan(width int) (int, int) {
	end := width - design.SpacingLG
	return end - c.Send.Width(), end
}
