package bulkform

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/ui"
	"github.com/nhle/workdesk/internal/workitem"
)

// SubmitMsg carries the change to apply to the selection.
type SubmitMsg struct {
	IDs    []string
	Change workitem.BulkChange
}

// CancelMsg is dispatched when the dialog is closed.
type CancelMsg struct{}

type formBindings struct {
	status string
	workBy string
}

// Model is the bulk update dialog. Empty fields are left unchanged.
type Model struct {
	form  *huh.Form
	fb    *formBindings
	ids   []string
	width int
}

// New creates a new bulk update dialog.
func New(width int) Model {
	return Model{fb: &formBindings{}, width: width}
}

// Start opens the dialog for ids.
func (m *Model) Start(ids []string, opts model.Options) tea.Cmd {
	m.ids = ids
	*m.fb = formBindings{}

	statusOpts := []huh.Option[string]{huh.NewOption("(unchanged)", "")}
	for _, s := range opts.Statuses {
		statusOpts = append(statusOpts, huh.NewOption(s, s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&m.fb.status),
			huh.NewInput().
				Title("Work By").
				Placeholder("leave empty to keep").
				Suggestions(opts.WorkBy).
				Value(&m.fb.workBy),
		),
	).WithWidth(min(max(m.width-4, 40), 80)).WithKeyMap(ui.FormKeyMap())
	return m.form.Init()
}

// Update handles messages for the dialog.
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
		out := SubmitMsg{
			IDs:    m.ids,
			Change: workitem.BulkChange{Status: m.fb.status, WorkBy: m.fb.workBy},
		}
		return m, func() tea.Msg { return out }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, cmd
}

// View renders the dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	title := theme.TitleStyle.Render(fmt.Sprintf("Update %d selected items", len(m.ids)))
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, m.form.View()),
	)
}

// SetSize updates the dialog width.
func (m *Model) SetSize(width int) {
	m.width = width
}
