package templates

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brochat/model"
	"brochat/provider/testutil"
	"brochat/ui/design"
	"brochat/ui/molecules"
	"brochat/ui/organisms"
)

func newTestLayout(t *testing.T, chatModel model.ChatModel) (ChatLayout, *[]string) {
	t.Helper()

	copied := &[]string{}
	l := NewChatLayout(chatModel, Options{
		Title:         "Chat",
		UserName:      "You",
		AssistantName: "Andy",
		SystemPrompt:  testutil.TestSystemPrompt,
		StartDir:      t.TempDir(),
	})
	l.copyToClipboard = func(s string) error {
		*copied = append(*copied, s)
		return nil
	}

	l = update(t, l, tea.WindowSizeMsg{Width: 80, Height: 50})
	return l, copied
}

func update(t *testing.T, l ChatLayout, msg tea.Msg) ChatLayout {
	t.Helper()
	next, _ := l.Update(msg)
	return next.(ChatLayout)
}

func press(t *testing.T, l ChatLayout, msg tea.KeyMsg) (ChatLayout, tea.Cmd) {
	t.Helper()
	next, cmd := l.Update(msg)
	return next.(ChatLayout), cmd
}

func typeText(t *testing.T, l ChatLayout, text string) ChatLayout {
	t.Helper()
	return update(t, l, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

// run executes cmd and flattens batches.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func replyFrom(t *testing.T, cmd tea.Cmd) model.ReplyMsg {
	t.Helper()
	for _, msg := range run(cmd) {
		if reply, ok := msg.(model.ReplyMsg); ok {
			return reply
		}
	}
	t.Fatal("command produced no ReplyMsg")
	return model.ReplyMsg{}
}

func roles(messages []model.Message) []model.Role {
	out := make([]model.Role, len(messages))
	for i, m := range messages {
		out[i] = m.Role
	}
	return out
}

func TestEnterSendsAndRendersReply(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "sup"))

	l = typeText(t, l, "hello")
	l, cmd := press(t, l, enter)
	require.NotNil(t, cmd)

	assert.True(t, l.State().Pending())
	assert.True(t, l.input.Send.Disabled, "send is disabled while pending")
	assert.Empty(t, l.input.Field.Value())
	assert.Contains(t, l.View(), "Andy is typing")

	l = update(t, l, replyFrom(t, cmd))

	history := l.State().History()
	assert.Equal(t, []model.Role{model.RoleUser, model.RoleAssistant}, roles(history))
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, "sup", history[1].Content)
	assert.False(t, l.input.Send.Disabled)

	view := l.View()
	assert.Contains(t, view, "hello")
	assert.Contains(t, view, "sup")
	assert.Contains(t, view, "1 turns")
}

func TestEnterWhilePendingIsIgnored(t *testing.T) {
	mock := testutil.NewMockChatModel("llama3.2:latest", "sup")
	l, _ := newTestLayout(t, mock)

	l = typeText(t, l, "hello")
	l, first := press(t, l, enter)
	require.NotNil(t, first)

	l = typeText(t, l, "again")
	l, second := press(t, l, enter)
	assert.Nil(t, second)
	assert.Equal(t, 1, l.State().Len())
	assert.Equal(t, "again", l.input.Field.Value(), "draft is kept")

	l = update(t, l, replyFrom(t, first))
	assert.Len(t, mock.Calls(), 1)
	assert.Equal(t, 2, l.State().Len())
}

func TestBlankEnterDoesNothing(t *testing.T) {
	mock := testutil.NewMockChatModel("llama3.2:latest", "sup")
	l, _ := newTestLayout(t, mock)

	l = typeText(t, l, "   ")
	l, cmd := press(t, l, enter)

	assert.Nil(t, cmd)
	assert.Zero(t, l.State().Len())
	assert.Empty(t, mock.Calls())
}

func TestAltLClearsChat(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "sup"))

	l = typeText(t, l, "hello")
	l, cmd := press(t, l, enter)
	l = update(t, l, replyFrom(t, cmd))
	require.Equal(t, 2, l.State().Len())

	l, _ = press(t, l, alt('l'))

	assert.Zero(t, l.State().Len())
	assert.Zero(t, l.list.Len())
	assert.Contains(t, l.View(), "No messages yet")
}

func TestEscCancelsPendingTurn(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "late"))

	l = typeText(t, l, "hello")
	l, cmd := press(t, l, enter)
	require.NotNil(t, cmd)

	l, _ = press(t, l, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, l.State().Pending())
	assert.Equal(t, "Cancelled", l.input.Flash)

	// The late reply is dropped
	l = update(t, l, replyFrom(t, cmd))
	assert.Equal(t, 1, l.State().Len())
}

func TestFailedTurnShowsError(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewFailingChatModel("llama3.2:latest", errors.New("connection refused")))

	l = typeText(t, l, "hello")
	l, cmd := press(t, l, enter)
	l = update(t, l, replyFrom(t, cmd))

	assert.Equal(t, "Error: connection refused", l.input.Error)
	assert.Contains(t, l.View(), "connection refused")
	assert.Equal(t, 1, l.State().Len())

	// The next send clears the error
	l = typeText(t, l, "retry")
	l, _ = press(t, l, enter)
	assert.Empty(t, l.input.Error)
}

func TestAltYCopiesLastReply(t *testing.T) {
	l, copied := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "copy me"))

	// Nothing to copy yet
	l, _ = press(t, l, alt('y'))
	assert.Empty(t, *copied)

	l = typeText(t, l, "hello")
	l, cmd := press(t, l, enter)
	l = update(t, l, replyFrom(t, cmd))

	l, _ = press(t, l, alt('y'))
	assert.Equal(t, []string{"copy me"}, *copied)
	assert.Equal(t, "Copied last reply", l.input.Flash)
}

func TestTabCyclesFocus(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "sup"))
	require.Equal(t, focusInput, l.focus)

	tab := tea.KeyMsg{Type: tea.KeyTab}
	l, _ = press(t, l, tab)
	assert.Equal(t, focusSend, l.focus)
	assert.True(t, l.input.Send.Focused)

	l, _ = press(t, l, tab)
	assert.Equal(t, focusAttach, l.focus)
	assert.True(t, l.input.Attach.Focused)

	// Typing is ignored while a button has focus
	l = typeText(t, l, "x")
	assert.Empty(t, l.input.Field.Value())

	l, _ = press(t, l, tab)
	assert.Equal(t, focusInput, l.focus)

	l, _ = press(t, l, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusAttach, l.focus)
}

func TestEnterOnAttachOpensPicker(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "sup"))

	l.setFocus(focusAttach)
	l, cmd := press(t, l, enter)

	assert.NotNil(t, cmd)
	assert.True(t, l.picker.Active())
	assert.Contains(t, l.View(), "Attach a file")

	// Esc in the picker cancels without staging anything
	l, cmd = press(t, l, tea.KeyMsg{Type: tea.KeyEsc})
	for _, msg := range run(cmd) {
		l = update(t, l, msg)
	}
	assert.False(t, l.picker.Active())
	_, staged := l.State().StagedAttachment()
	assert.False(t, staged)
}

func TestFilePickedStagesAttachment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("buy milk"), 0600))

	mock := testutil.NewMockChatModel("llama3.2:latest", "got it")
	l, _ := newTestLayout(t, mock)

	l = update(t, l, model.FilePickedMsg{Paths: []string{path}})
	assert.Equal(t, "notes.txt", l.input.Attachment)
	assert.Contains(t, l.View(), "+ notes.txt")

	l = typeText(t, l, "read this")
	l, cmd := press(t, l, enter)
	l = update(t, l, replyFrom(t, cmd))

	assert.Empty(t, l.input.Attachment)
	calls := mock.Calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Messages[0].Attachments, 1)
	assert.Equal(t, "notes.txt", calls[0].Messages[0].Attachments[0].Name)
}

func TestAltXUnstagesAttachment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("buy milk"), 0600))

	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "ok"))
	l = update(t, l, model.FilePickedMsg{Paths: []string{path}})
	require.Equal(t, "notes.txt", l.input.Attachment)

	l, _ = press(t, l, alt('x'))
	assert.Empty(t, l.input.Attachment)
}

func TestUnsupportedAttachmentShowsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "ok"))
	l = update(t, l, model.FilePickedMsg{Paths: []string{path}})

	assert.Equal(t, "Only .jpg .png .pdf .txt files can be attached", l.input.Error)
	assert.Empty(t, l.input.Attachment)
}

func TestEndpointStatus(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "ok"))
	assert.Equal(t, molecules.StatusUnknown, l.nav.Status)

	l = update(t, l, model.EndpointStatusMsg{ModelID: "llama3.2:latest"})
	assert.Equal(t, molecules.StatusOnline, l.nav.Status)

	l = update(t, l, model.EndpointStatusMsg{ModelID: "llama3.2:latest", Err: errors.New("offline")})
	assert.Equal(t, molecules.StatusOffline, l.nav.Status)
}

func TestSearchJump(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "ok"))
	for _, text := range []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet", "kilo", "lima"} {
		l = typeText(t, l, text)
		var cmd tea.Cmd
		l, cmd = press(t, l, enter)
		l = update(t, l, replyFrom(t, cmd))
	}

	l, _ = press(t, l, alt('f'))
	require.True(t, l.search.Active())
	assert.Contains(t, l.View(), "Search conversation")

	l = typeText(t, l, "alpha")
	l, cmd := press(t, l, enter)
	require.NotNil(t, cmd)
	l = update(t, l, cmd())

	assert.False(t, l.search.Active())
	assert.Equal(t, 0, l.list.YOffset())
}

func TestSearchJumpMsgScrolls(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "ok"))
	l = update(t, l, organisms.SearchJumpMsg{Index: 5})
	assert.Equal(t, 0, l.list.YOffset(), "out of range jump is ignored")
}

func TestMouseClickOnClearButton(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "sup"))
	l = typeText(t, l, "hello")
	l, cmd := press(t, l, enter)
	l = update(t, l, replyFrom(t, cmd))

	x0, y0 := l.frameOrigin()
	start, _ := l.nav.ClearButtonSpan(design.FrameWidth)
	l = update(t, l, tea.MouseMsg{
		X:      x0 + start + 1,
		Y:      y0,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})

	assert.Zero(t, l.State().Len())
}

func TestTerminalTooSmall(t *testing.T) {
	l, _ := newTestLayout(t, testutil.NewMockChatModel("llama3.2:latest", "ok"))
	l = update(t, l, tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Equal(t, "Terminal too small", l.View())
}

func TestInitChecksEndpoint(t *testing.T) {
	mock := testutil.NewMockChatModel("llama3.2:latest", "ok")
	pinged := false
	mock.PingFunc = func(ctx context.Context) error {
		pinged = true
		return nil
	}
	l, _ := newTestLayout(t, mock)

	cmd := l.Init()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	var status *model.EndpointStatusMsg
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(model.EndpointStatusMsg); ok {
			status = &msg
		}
	}
	require.NotNil(t, status)
	assert.True(t, pinged)
	assert.NoError(t, status.Err)
}

func TestErrorModal(t *testing.T) {
	m := NewErrorModal("Configuration Error", "failed to parse config.toml")
	assert.Equal(t, "Terminal too small", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(ErrorModal)
	assert.Contains(t, m.View(), "Configuration Error")
	assert.Contains(t, m.View(), "failed to parse config.toml")

	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
