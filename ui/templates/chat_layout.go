// Package templates holds the top-level screens of the application.
package templates

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"brochat/config"
	"brochat/model"
	"brochat/ui/design"
	"brochat/ui/molecules"
	"brochat/ui/organisms"
)

type focusTarget int

const (
	focusInput focusTarget = iota
	focusSend
	focusAttach
)

// Tab order: attach, input, send
func (f focusTarget) next() focusTarget {
	switch f {
	case focusAttach:
		return focusInput
	case focusInput:
		return focusSend
	default:
		return focusAttach
	}
}

func (f focusTarget) prev() focusTarget {
	switch f {
	case focusSend:
		return focusInput
	case focusInput:
		return focusAttach
	default:
		return focusSend
	}
}

// Options configures a ChatLayout.
type Options struct {
	Title         string
	UserName      string
	AssistantName string
	SystemPrompt  string
	Timeout       time.Duration
	Usage         model.UsageRecorder
	// StartDir is where the file picker opens. Empty means the home directory.
	StartDir string
}

// ChatLayout is the chat screen: nav bar, chat container and input row in a
// fixed design.FrameWidth x design.FrameHeight frame centered in the
// terminal.
type ChatLayout struct {
	state  *model.ChatState
	list   *organisms.ChatList
	picker *organisms.FilePicker
	search *organisms.SearchPanel

	nav     molecules.NavBar
	input   molecules.ChatInput
	spinner spinner.Model
	focus   focusTarget

	assistantName   string
	copyToClipboard func(string) error

	width  int
	height int
}

// NewChatLayout wires a ChatState to the visible list and the file picker.
func NewChatLayout(chatModel model.ChatModel, opts Options) ChatLayout {
	if opts.Title == "" {
		opts.Title = "Chat"
	}
	if opts.UserName == "" {
		opts.UserName = "You"
	}
	if opts.AssistantName == "" {
		opts.AssistantName = "Assistant"
	}

	listWidth, listHeight := organisms.ChatListSize(design.FrameWidth, containerHeight())
	list := organisms.NewChatList(listWidth, listHeight, opts.UserName, opts.AssistantName)
	picker := organisms.NewFilePicker(opts.StartDir)

	state := model.NewChatState(chatModel, list, model.ChatStateOptions{
		SystemPrompt: opts.SystemPrompt,
		Timeout:      opts.Timeout,
		Picker:       picker,
		Usage:        opts.Usage,
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(design.Colors.Primary)

	l := ChatLayout{
		state:           state,
		list:            list,
		picker:          picker,
		search:          organisms.NewSearchPanel(opts.UserName, opts.AssistantName),
		nav:             molecules.NewNavBar(opts.Title, chatModel.ModelID()),
		input:           molecules.NewChatInput(design.FrameWidth),
		spinner:         sp,
		focus:           focusInput,
		assistantName:   opts.AssistantName,
		copyToClipboard: clipboard.WriteAll,
	}
	l.sync()
	return l
}

func containerHeight() int {
	return design.FrameHeight - design.NavHeight - design.InputHeight
}

// State exposes the conversation for the entry point and tests.
func (l ChatLayout) State() *model.ChatState {
	return l.state
}

func (l ChatLayout) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, l.state.CheckEndpoint())
}

func (l ChatLayout) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
		return l, nil

	case model.ReplyMsg:
		if err := l.state.HandleReply(msg); err != nil {
			l.input.Error = describeError(err)
		}
		l.sync()
		return l, nil

	case model.EndpointStatusMsg:
		if msg.Err != nil {
			l.nav.Status = molecules.StatusOffline
			if config.DebugLog != nil {
				config.DebugLog.Printf("[ChatLayout] endpoint check for %s failed: %v", msg.ModelID, msg.Err)
			}
		} else {
			l.nav.Status = molecules.StatusOnline
		}
		return l, nil

	case model.FilePickedMsg:
		l.picker.Close()
		if err := l.state.OnFilePicked(msg.Paths); err != nil {
			l.input.Error = describeError(err)
		}
		l.sync()
		return l, nil

	case organisms.SearchJumpMsg:
		l.list.ScrollTo(msg.Index)
		return l, nil

	case spinner.TickMsg:
		if !l.state.Pending() {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		l.sync()
		return l, cmd

	case tea.MouseMsg:
		return l.handleMouse(msg)

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	// Directory listings and cursor blinks
	if l.picker.Active() {
		return l, l.picker.Update(msg)
	}
	if l.search.Active() {
		return l, l.search.Update(msg)
	}
	var cmd tea.Cmd
	l.input.Field, cmd = l.input.Field.Update(msg)
	return l, cmd
}

func (l ChatLayout) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "alt+q":
		l.state.Cancel()
		return l, tea.Quit
	}

	if l.picker.Active() {
		return l, l.picker.Update(msg)
	}
	if l.search.Active() {
		return l, l.search.Update(msg)
	}

	l.input.Flash = ""

	switch msg.String() {
	case "esc":
		if l.state.Cancel() {
			l.input.Flash = "Cancelled"
		}
		l.input.Error = ""
		l.sync()
		return l, nil

	case "alt+l":
		return l.clearChat()

	case "alt+a":
		return l.pickFile()

	case "alt+x":
		l.state.UnstageAttachment()
		l.sync()
		return l, nil

	case "alt+y":
		return l.copyLastReply()

	case "alt+f":
		return l, l.search.Open(l.state.History())

	case "tab":
		l.setFocus(l.focus.next())
		return l, nil

	case "shift+tab":
		l.setFocus(l.focus.prev())
		return l, nil

	case "enter":
		switch l.focus {
		case focusAttach:
			return l.pickFile()
		default:
			return l.send()
		}

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		return l, l.list.Update(msg)
	}

	if l.focus != focusInput {
		return l, nil
	}

	var cmd tea.Cmd
	l.input.Field, cmd = l.input.Field.Update(msg)
	return l, cmd
}

func (l ChatLayout) send() (tea.Model, tea.Cmd) {
	cmd := l.state.Send(l.input.Field.Value())
	if cmd == nil {
		// Blank input or a reply still pending
		return l, nil
	}

	l.input.Field.Reset()
	l.input.Error = ""
	l.sync()
	return l, tea.Batch(cmd, l.spinner.Tick)
}

func (l ChatLayout) pickFile() (tea.Model, tea.Cmd) {
	l.input.Error = ""
	return l, l.state.PickFile()
}

func (l ChatLayout) clearChat() (tea.Model, tea.Cmd) {
	l.state.ClearMessages()
	l.input.Error = ""
	l.sync()
	return l, nil
}

func (l ChatLayout) copyLastReply() (tea.Model, tea.Cmd) {
	reply, ok := l.state.LastReply()
	if !ok {
		return l, nil
	}

	if err := l.copyToClipboard(reply.Content); err != nil {
		l.input.Error = "Copy failed: " + err.Error()
		return l, nil
	}
	l.input.Flash = "Copied last reply"
	return l, nil
}

func (l *ChatLayout) setFocus(f focusTarget) {
	l.focus = f
	if f == focusInput {
		l.input.Field.Focus()
	} else {
		l.input.Field.Blur()
	}
	l.sync()
}

// sync copies conversation state into the presentational components.
func (l *ChatLayout) sync() {
	pending := l.state.Pending()

	l.input.Send.Disabled = pending
	l.input.Send.Focused = l.focus == focusSend
	l.input.Attach.Focused = l.focus == focusAttach

	l.input.Attachment = ""
	if a, ok := l.state.StagedAttachment(); ok {
		l.input.Attachment = a.Name
	}

	l.input.Status = ""
	if pending {
		l.input.Status = l.spinner.View() + " " + l.assistantName + " is typing...  Esc cancel"
	}

	l.nav.Usage = l.state.Usage()
}

// Mouse clicks on the nav clear button, attach and send buttons.
func (l ChatLayout) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if l.picker.Active() || l.search.Active() {
		return l, nil
	}

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		return l, l.list.Update(msg)
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return l, nil
	}

	x0, y0 := l.frameOrigin()
	x, y := msg.X-x0, msg.Y-y0

	if y == 0 {
		start, end := l.nav.ClearButtonSpan(design.FrameWidth)
		if x >= start && x < end {
			return l.clearChat()
		}
	}

	inputTop := design.NavHeight + containerHeight()
	if y > inputTop && y <= inputTop+3 {
		if start, end := l.input.AttachSpan(design.FrameWidth); x >= start && x < end {
			return l.pickFile()
		}
		if start, end := l.input.SendSpan(design.FrameWidth); x >= start && x < end && l.input.Send.Enabled() {
			return l.send()
		}
	}

	return l, nil
}

// frameOrigin mirrors the centering done by lipgloss.Place in View.
func (l ChatLayout) frameOrigin() (int, int) {
	return (l.width - design.FrameWidth + 1) / 2, (l.height - design.FrameHeight + 1) / 2
}

func (l ChatLayout) View() string {
	if l.width < design.FrameWidth || l.height < design.FrameHeight {
		return "Terminal too small"
	}

	var frame string
	switch {
	case l.picker.Active():
		frame = l.picker.View(design.FrameWidth, design.FrameHeight)
	case l.search.Active():
		frame = l.search.View(design.FrameWidth, design.FrameHeight)
	default:
		frame = lipgloss.JoinVertical(lipgloss.Left,
			l.nav.View(design.FrameWidth),
			organisms.ChatContainer(l.list, design.FrameWidth, containerHeight()),
			l.input.View(design.FrameWidth),
		)
	}

	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, frame)
}

func describeError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Error: the model took too long to answer"
	case errors.Is(err, model.ErrUnsupportedAttachment):
		return "Only .jpg .png .pdf .txt files can be attached"
	case errors.Is(err, model.ErrAttachmentTooLarge):
		return "That file is too large to attach"
	default:
		return "Error: " + err.Error()
	}
}
