package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Commands lists the palette commands offered as suggestions.
var Commands = []string{
	"tab ",
	"search ",
	"sort ",
	"page ",
	"page-size ",
	"clear",
	"select all",
	"select none",
	"options",
	"settings",
	"import",
	"reminders",
	"theme dark",
	"theme light",
	"edit on",
	"edit off",
	"logout",
	"quit",
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "tab Trash, sort due, page 2, theme light..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Commands)
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		cmd := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if cmd != "" {
			return m, func() tea.Msg {
				return CommandMsg(cmd)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	title := theme.TitleStyle.Render("Command Palette")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.input.View())

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	return m.input.Focus()
}

// Parse splits a command into its verb and argument.
func Parse(s string) (verb, arg string) {
	s = strings.TrimSpace(s)
	verb, arg, _ = strings.Cut(s, " ")
	return strings.ToLower(verb), strings.TrimSpace(arg)
}
