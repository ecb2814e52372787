package login

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/ui"
)

// SubmitMsg carries the entered credentials.
type SubmitMsg struct {
	Username string
	Password string
}

type formBindings struct {
	username string
	password string
}

// Model is the login screen.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	err    string
	width  int
	height int
}

// New creates a login screen prefilled with username.
func New(username string, width, height int) Model {
	return Model{
		fb:     &formBindings{username: username},
		width:  width,
		height: height,
	}
}

// Start resets the password and opens the form. A non-empty failure is
// shown above the form.
func (m *Model) Start(failure string) tea.Cmd {
	m.err = failure
	m.fb.password = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&m.fb.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(40).WithShowHelp(false).WithKeyMap(ui.FormKeyMap())
	return m.form.Init()
}

// Update handles messages for the login form.
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
		out := SubmitMsg{Username: m.fb.username, Password: m.fb.password}
		return m, func() tea.Msg { return out }
	case huh.StateAborted:
		m.form = nil
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the login form centered on screen.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	parts := []string{theme.TitleStyle.Render("Sign in")}
	if m.err != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ColorRed).Render(m.err))
	}
	parts = append(parts, m.form.View())

	box := theme.DetailPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
