package organisms

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"brochat/model"
	"brochat/ui/design"
	"brochat/ui/molecules"
)

const maxSearchResults = 8

// SearchResult is one history message matching a query.
type SearchResult struct {
	Index   int
	Role    model.Role
	Preview string
}

// SearchJumpMsg asks the chat list to scroll to the message at Index.
type SearchJumpMsg struct {
	Index int
}

// Search fuzzy-matches query against the content of every message, best
// match first. An empty query matches nothing.
func Search(history []model.Message, query string) []SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	targets := make([]string, len(history))
	for i, msg := range history {
		targets[i] = strings.Join(strings.Fields(msg.Content), " ")
	}

	matches := fuzzy.Find(query, targets)
	results := make([]SearchResult, len(matches))
	for i, match := range matches {
		results[i] = SearchResult{
			Index:   match.Index,
			Role:    history[match.Index].Role,
			Preview: targets[match.Index],
		}
	}
	return results
}

// SearchPanel is the history search dialog.
type SearchPanel struct {
	input         textinput.Model
	userName      string
	assistantName string
	active        bool
	history       []model.Message
	results       []SearchResult
	selected      int
	// offset is the first result shown; the window follows selected
	offset int
}

func NewSearchPanel(userName, assistantName string) *SearchPanel {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "type to filter the conversation"
	input.CharLimit = 64

	return &SearchPanel{
		input:         input,
		userName:      userName,
		assistantName: assistantName,
	}
}

// Open starts a search over a snapshot of history.
func (p *SearchPanel) Open(history []model.Message) tea.Cmd {
	p.active = true
	p.history = history
	p.results = nil
	p.selected = 0
	p.offset = 0
	p.input.SetValue("")
	p.input.Focus()
	return textinput.Blink
}

func (p *SearchPanel) Close() {
	p.active = false
	p.input.Blur()
	p.history = nil
}

func (p *SearchPanel) Active() bool {
	return p.active
}

func (p *SearchPanel) Results() []SearchResult {
	return p.results
}

// Selected returns the highlighted result.
func (p *SearchPanel) Selected() (SearchResult, bool) {
	if p.selected >= len(p.results) {
		return SearchResult{}, false
	}
	return p.results[p.selected], true
}

// Update handles typing and navigation. Enter jumps to the selected result
// and closes the panel; Esc closes it.
func (p *SearchPanel) Update(msg tea.Msg) tea.Cmd {
	if !p.active {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.Close()
			return nil
		case "enter":
			if len(p.results) == 0 {
				return nil
			}
			index := p.results[p.selected].Index
			p.Close()
			return func() tea.Msg { return SearchJumpMsg{Index: index} }
		case "up", "ctrl+p":
			if p.selected > 0 {
				p.selected--
			}
			p.follow()
			return nil
		case "down", "ctrl+n":
			if p.selected < len(p.results)-1 {
				p.selected++
			}
			p.follow()
			return nil
		}
	}

	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)

	if p.input.Value() != before {
		p.results = Search(p.history, p.input.Value())
		p.selected = 0
		p.offset = 0
	}

	return cmd
}

func (p *SearchPanel) follow() {
	switch {
	case p.selected < p.offset:
		p.offset = p.selected
	case p.selected >= p.offset+maxSearchResults:
		p.offset = p.selected - maxSearchResults + 1
	}
}

// View renders the panel as a modal centered in width x height.
func (p *SearchPanel) View(width, height int) string {
	modalWidth := molecules.ModalWidth(0, width)
	rowStyle := lipgloss.NewStyle().Width(modalWidth)

	lines := []string{rowStyle.Render(p.input.View()), ""}

	end := min(p.offset+maxSearchResults, len(p.results))
	if p.offset > 0 {
		lines = append(lines, rowStyle.Render(design.CaptionStyle.Render("  …")))
	}

	for i := p.offset; i < end; i++ {
		r := p.results[i]
		name := p.userName
		if r.Role == model.RoleAssistant {
			name = p.assistantName
		}
		label := runewidth.Truncate(name, 12, "…") + ": "
		line := label + runewidth.Truncate(r.Preview, max(modalWidth-4-runewidth.StringWidth(label), 1), "…")

		style := design.BodyStyle
		prefix := "  "
		if i == p.selected {
			style = lipgloss.NewStyle().Foreground(design.Colors.Primary).Bold(true)
			prefix = "> "
		}
		lines = append(lines, rowStyle.Render(style.Render(prefix+line)))
	}

	switch {
	case p.input.Value() != "" && len(p.results) == 0:
		lines = append(lines, rowStyle.Render(design.CaptionStyle.Render("  no matches")))
	case end < len(p.results):
		lines = append(lines, rowStyle.Render(design.CaptionStyle.Render("  …and more")))
	}

	footer := design.FormatFooter("↑/↓", "Move", "Enter", "Jump", "Esc", "Close")

	return molecules.Modal("Search conversation", lines, footer, molecules.ModalTypeInfo, 0, width, height)
}
