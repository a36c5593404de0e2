package organisms

import (
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"brochat/config"
	"brochat/model"
	"brochat/ui/design"
	"brochat/ui/molecules"
)

const filePickerHeight = 12

// FilePicker is the attachment dialog. It implements model.FilePicker and
// reports the outcome as a model.FilePickedMsg: one path on selection, none
// on cancel.
type FilePicker struct {
	picker   filepicker.Model
	active   bool
	startDir string
	notice   string
}

func NewFilePicker(startDir string) *FilePicker {
	if startDir == "" {
		startDir = config.GetHomeDir()
	}

	fp := filepicker.New()
	fp.Height = filePickerHeight
	fp.AutoHeight = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.ShowHidden = false
	fp.CurrentDirectory = startDir

	fp.Styles.Directory = lipgloss.NewStyle().
		Foreground(design.Colors.Primary).
		Bold(true)
	fp.Styles.File = lipgloss.NewStyle().
		Foreground(design.Colors.TextPrimary)
	fp.Styles.Selected = lipgloss.NewStyle().
		Foreground(design.Colors.Success).
		Bold(true)
	fp.Styles.Cursor = lipgloss.NewStyle().
		Foreground(design.Colors.Success)

	return &FilePicker{
		picker:   fp,
		startDir: startDir,
	}
}

// Open implements model.FilePicker. Each open starts from the start
// directory.
func (f *FilePicker) Open(allowedTypes []string) tea.Cmd {
	f.picker.AllowedTypes = allowedTypes
	f.picker.CurrentDirectory = f.startDir
	f.active = true
	f.notice = ""

	if config.DebugLog != nil {
		config.DebugLog.Printf("[FilePicker] open in %s, types %v", f.startDir, allowedTypes)
	}

	return f.picker.Init()
}

func (f *FilePicker) Active() bool {
	return f.active
}

func (f *FilePicker) Close() {
	f.active = false
}

// Update handles picker navigation while the dialog is open. Esc cancels.
func (f *FilePicker) Update(msg tea.Msg) tea.Cmd {
	if !f.active {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		f.Close()
		return picked(nil)
	}

	var cmd tea.Cmd
	f.picker, cmd = f.picker.Update(msg)

	if didSelect, path := f.picker.DidSelectFile(msg); didSelect {
		f.Close()
		return tea.Batch(cmd, picked([]string{path}))
	}

	if didSelect, path := f.picker.DidSelectDisabledFile(msg); didSelect {
		f.notice = "Only " + strings.Join(f.picker.AllowedTypes, " ") + " files: " + path
	}

	return cmd
}

func picked(paths []string) tea.Cmd {
	return func() tea.Msg {
		return model.FilePickedMsg{Paths: paths}
	}
}

// View renders the dialog as a modal centered in width x height.
func (f *FilePicker) View(width, height int) string {
	modalWidth := molecules.ModalWidth(0, width)

	contentStyle := lipgloss.NewStyle().
		Width(modalWidth).
		MaxWidth(modalWidth).
		Align(lipgloss.Left)

	var lines []string
	lines = append(lines, contentStyle.Render(design.CaptionStyle.Render(f.picker.CurrentDirectory)))
	for _, line := range strings.Split(f.picker.View(), "\n") {
		lines = append(lines, contentStyle.Render(" "+strings.TrimRight(line, " ")))
	}
	if f.notice != "" {
		lines = append(lines, contentStyle.Render(design.ErrorStyle.Render(f.notice)))
	}

	footer := design.FormatFooter("j/k", "Move", "h/l", "Back/Open", "Esc", "Cancel")

	return molecules.Modal("Attach a file", lines, footer, molecules.ModalTypeInfo, 0, width, height)
}
