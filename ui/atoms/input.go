package atoms

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"brochat/ui/design"
)

const TextFieldPlaceholder = "Type a message..."

// TextFieldHeight is the number of visible lines in the message field.
const TextFieldHeight = 3

// NewTextField creates the multiline message field. Enter is left to the
// owner (it submits); Alt+Enter inserts a newline.
func NewTextField(width int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = TextFieldPlaceholder
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(TextFieldHeight)
	ta.SetWidth(width)

	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.FocusedStyle.Base = lipgloss.NewStyle().Background(design.Colors.Surface)
	ta.BlurredStyle.Base = lipgloss.NewStyle().Background(design.Colors.Surface)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = design.CaptionStyle
	ta.BlurredStyle.Placeholder = design.CaptionStyle

	return ta
}
