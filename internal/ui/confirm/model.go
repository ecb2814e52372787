// Package confirm is a yes/no dialog for destructive actions.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/ui"
)

// ResultMsg reports the answer. Request is the value given to Ask.
type ResultMsg struct {
	Request   any
	Confirmed bool
}

// Model wraps a single huh confirm field.
type Model struct {
	form    *huh.Form
	answer  *bool
	request any
	width   int
}

// New creates an idle dialog.
func New(width int) Model {
	return Model{answer: new(bool), width: width}
}

// Ask opens the dialog. The answer defaults to no.
func (m *Model) Ask(title, description string, request any) tea.Cmd {
	*m.answer = false
	m.request = request
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(m.answer),
		),
	).WithWidth(min(max(m.width-4, 30), 70)).WithKeyMap(ui.FormKeyMap())
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
	case huh.StateCompleted, huh.StateAborted:
		res := ResultMsg{
			Request:   m.request,
			Confirmed: m.form.State == huh.StateCompleted && *m.answer,
		}
		m.form = nil
		return m, func() tea.Msg { return res }
	}
	return m, cmd
}

// View renders the dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
}

// SetSize updates the dialog width.
func (m *Model) SetSize(width int) {
	m.width = width
}
