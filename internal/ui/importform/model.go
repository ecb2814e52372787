package importform

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/ui"
	"github.com/nhle/workdesk/internal/workitem"
)

// SubmitMsg carries the tab-separated text to import. Err is set when the
// named file could not be read.
type SubmitMsg struct {
	Text string
	Err  error
}

// CancelMsg is dispatched when the dialog is closed without importing.
type CancelMsg struct{}

type formBindings struct {
	text string
	path string
}

// Model is the import dialog. Rows can be pasted or read from a file.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new import dialog.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, width: width, height: height}
}

// Start resets and opens the dialog.
func (m *Model) Start() tea.Cmd {
	*m.fb = formBindings{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Rows").
				Description("Paste rows copied from the spreadsheet. The first line is the header.").
				Lines(10).
				CharLimit(0).
				Value(&m.fb.text),
			huh.NewInput().
				Title("Or read from file").
				Placeholder("/path/to/export.tsv").
				Value(&m.fb.path).
				Validate(validatePath),
		),
	).WithWidth(min(max(m.width-4, 40), 120)).WithKeyMap(ui.FormKeyMap())
	return m.form.Init()
}

// Update handles messages for the import dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		text, err := m.source()
		return m, func() tea.Msg { return SubmitMsg{Text: text, Err: err} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, cmd
}

// source returns the file contents when a path was given, else the
// pasted text.
func (m Model) source() (string, error) {
	if p := strings.TrimSpace(m.fb.path); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", p, err)
		}
		return string(b), nil
	}
	return m.fb.text, nil
}

// View renders the dialog with a live preview of the parsed row count.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	preview := "paste rows or enter a file path"
	if strings.TrimSpace(m.fb.text) != "" {
		items, skipped := workitem.ParseImport(m.fb.text)
		preview = fmt.Sprintf("%d rows ready, %d skipped", len(items), skipped)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Import Work Items"),
		theme.DimmedStyle.Render(preview),
		"",
		m.form.View(),
	)
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func validatePath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot read %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}
