package model

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"brochat/config"
)

// ErrTurnPending is returned by SendMessage while another turn is in flight.
var ErrTurnPending = errors.New("a reply is still pending")

// MessageList is the visible list the conversation pushes every appended
// message to.
type MessageList interface {
	Append(msg Message)
	Clear()
}

// FilePicker opens a file selection dialog. The dialog reports back with a
// FilePickedMsg.
type FilePicker interface {
	Open(allowedTypes []string) tea.Cmd
}

type ChatStateOptions struct {
	SystemPrompt string
	// Timeout bounds a single model call. Zero means no limit.
	Timeout time.Duration
	Picker  FilePicker
	Usage   UsageRecorder
}

// ChatState owns the message history and mediates between UI input and the
// model. All methods must be called from the UI loop; the only work done
// elsewhere is the model call itself, which runs against a snapshot of the
// history.
type ChatState struct {
	chatModel     ChatModel
	list          MessageList
	picker        FilePicker
	usageRecorder UsageRecorder
	systemPrompt  string
	timeout       time.Duration

	messages []Message
	staged   *Attachment
	usage    Usage

	pending bool
	turn    int
	cancel  context.CancelFunc
}

func NewChatState(chatModel ChatModel, list MessageList, opts ChatStateOptions) *ChatState {
	return &ChatState{
		chatModel:     chatModel,
		list:          list,
		picker:        opts.Picker,
		usageRecorder: opts.Usage,
		systemPrompt:  opts.SystemPrompt,
		timeout:       opts.Timeout,
	}
}

// SendMessage runs a full turn synchronously: it appends the user message,
// calls the model with the whole history and appends the reply. Empty or
// whitespace-only text is ignored. On a model failure the user message
// stays in the history.
func (s *ChatState) SendMessage(ctx context.Context, text string) (*ModelResponse, error) {
	if s.pending {
		return nil, ErrTurnPending
	}

	history, ok := s.begin(text)
	if !ok {
		return nil, nil
	}
	turn := s.turn

	ctx, cancel := s.requestContext(ctx)
	s.cancel = cancel
	resp, err := s.chatModel.Run(ctx, s.systemPrompt, history)

	if err := s.finish(turn, resp, err); err != nil {
		return nil, err
	}
	return resp, nil
}

// Send appends the user message and returns a command that performs the
// model call off the UI loop. The result comes back as a ReplyMsg and must
// be passed to HandleReply. Returns nil when text is empty or a turn is
// already pending.
func (s *ChatState) Send(text string) tea.Cmd {
	if s.pending {
		return nil
	}

	history, ok := s.begin(text)
	if !ok {
		return nil
	}
	turn := s.turn

	ctx, cancel := s.requestContext(context.Background())
	s.cancel = cancel

	chatModel := s.chatModel
	systemPrompt := s.systemPrompt

	return func() tea.Msg {
		resp, err := chatModel.Run(ctx, systemPrompt, history)
		return ReplyMsg{Turn: turn, Response: resp, Err: err}
	}
}

// HandleReply completes the turn started by Send. Replies for a turn that
// was cancelled or cleared are dropped.
func (s *ChatState) HandleReply(msg ReplyMsg) error {
	return s.finish(msg.Turn, msg.Response, msg.Err)
}

// Cancel aborts the pending model call, if any. The user message of the
// aborted turn stays in the history.
func (s *ChatState) Cancel() bool {
	if !s.pending {
		return false
	}

	s.releaseRequest()
	s.pending = false
	s.turn++

	if config.DebugLog != nil {
		config.DebugLog.Printf("[ChatState] turn cancelled, history has %d messages", len(s.messages))
	}
	return true
}

// ClearMessages resets the history and the visible list. A pending turn is
// cancelled and a staged attachment is dropped.
func (s *ChatState) ClearMessages() {
	s.Cancel()
	s.messages = nil
	s.staged = nil
	if s.list != nil {
		s.list.Clear()
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[ChatState] history cleared")
	}
}

// PickFile opens the file picker filtered to the supported attachment types.
func (s *ChatState) PickFile() tea.Cmd {
	if s.picker == nil {
		return nil
	}
	return s.picker.Open(AllowedAttachmentTypes)
}

// OnFilePicked stages the selected file as the attachment of the next user
// message. An empty selection is a no-op.
func (s *ChatState) OnFilePicked(paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	// Single selection; anything beyond the first path is ignored
	path := paths[0]
	a, err := LoadAttachment(path)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[ChatState] attachment rejected: %s: %v", path, err)
		}
		return err
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[ChatState] Selected: %s", a.Name)
		config.DebugLog.Printf("[ChatState] Path: %s", a.Path)
	}

	s.staged = &a
	return nil
}

// UnstageAttachment drops the staged attachment without sending it.
func (s *ChatState) UnstageAttachment() {
	s.staged = nil
}

// CheckEndpoint pings the model endpoint in the background.
func (s *ChatState) CheckEndpoint() tea.Cmd {
	chatModel := s.chatModel
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return EndpointStatusMsg{
			ModelID: chatModel.ModelID(),
			Err:     chatModel.Ping(ctx),
		}
	}
}

// History returns a copy of the messages in insertion order.
func (s *ChatState) History() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *ChatState) Len() int {
	return len(s.messages)
}

// LastReply returns the most recent assistant message.
func (s *ChatState) LastReply() (Message, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleAssistant {
			return s.messages[i], true
		}
	}
	return Message{}, false
}

func (s *ChatState) Pending() bool {
	return s.pending
}

func (s *ChatState) StagedAttachment() (Attachment, bool) {
	if s.staged == nil {
		return Attachment{}, false
	}
	return *s.staged, true
}

func (s *ChatState) Usage() Usage {
	return s.usage
}

func (s *ChatState) ModelID() string {
	return s.chatModel.ModelID()
}

func (s *ChatState) begin(text string) ([]Message, bool) {
	// Whitespace-only input is ignored; anything else is sent as typed
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	var attachments []Attachment
	if s.staged != nil {
		attachments = append(attachments, *s.staged)
		s.staged = nil
	}

	s.append(NewUserMessage(text, attachments...))
	s.pending = true
	s.turn++

	return s.History(), true
}

func (s *ChatState) finish(turn int, resp *ModelResponse, err error) error {
	if !s.pending || turn != s.turn {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[ChatState] dropping reply for stale turn %d (current %d)", turn, s.turn)
		}
		return nil
	}

	s.pending = false
	s.releaseRequest()

	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[ChatState] model call failed: %v", err)
		}
		return err
	}
	if resp == nil {
		return errors.New("model returned an empty response")
	}

	s.append(resp.Message())
	s.usage.add(resp)

	if config.DebugLog != nil {
		config.DebugLog.Printf("[ChatState] reply %s for request %s in %dms (%d in / %d out tokens)",
			resp.ID, resp.RequestID, resp.ResponseTimeMS, resp.InputTokens, resp.OutputTokens)
	}

	if s.usageRecorder != nil {
		if err := s.usageRecorder.Record(context.Background(), resp); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[ChatState] failed to record usage: %v", err)
		}
	}

	return nil
}

func (s *ChatState) append(msg Message) {
	s.messages = append(s.messages, msg)
	if s.list != nil {
		s.list.Append(msg)
	}
}

func (s *ChatState) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(parent, s.timeout)
	}
	return context.WithCancel(parent)
}

func (s *ChatState) releaseRequest() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
