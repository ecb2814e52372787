// Package optionsmgr lists the option registry and adds new values to it.
// Values are never removed or renamed.
package optionsmgr

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/keys"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/ui"
)

// CloseMsg signals the parent to close the options view.
type CloseMsg struct{}

// AddMsg asks the parent to register new values.
type AddMsg struct {
	Options model.Options
}

type group int

const (
	groupWorkTypes group = iota
	groupStatuses
	groupWorkBy

	groupCount
)

func (g group) String() string {
	switch g {
	case groupStatuses:
		return "Statuses"
	case groupWorkBy:
		return "Work By"
	default:
		return "Work Types"
	}
}

type formBindings struct {
	value string
}

// Model is the Bubble Tea model for the option registry view.
type Model struct {
	keys        *keys.KeyMap
	opts        model.Options
	group       group
	selectedIdx int
	form        *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new options view.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetOptions replaces the lists shown.
func (m *Model) SetOptions(opts model.Options) {
	m.opts = opts
	if n := len(m.values()); m.selectedIdx >= n {
		m.selectedIdx = max(n-1, 0)
	}
}

// SetStatus shows a line of feedback under the list.
func (m *Model) SetStatus(msg string) {
	m.statusMsg = msg
}

// Editing reports whether the add form is open.
func (m Model) Editing() bool {
	return m.form != nil
}

func (m Model) values() []string {
	switch m.group {
	case groupStatuses:
		return m.opts.Statuses
	case groupWorkBy:
		return m.opts.WorkBy
	default:
		return m.opts.WorkTypes
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.values())

	switch {
	case key.Matches(msg, m.keys.Back):
		m.statusMsg = ""
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.NextTab):
		m.group = (m.group + 1) % groupCount
		m.selectedIdx = 0

	case key.Matches(msg, m.keys.PrevTab):
		m.group = (m.group + groupCount - 1) % groupCount
		m.selectedIdx = 0

	case key.Matches(msg, m.keys.Down):
		if n > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % n
		}

	case key.Matches(msg, m.keys.Up):
		if n > 0 {
			m.selectedIdx = (m.selectedIdx + n - 1) % n
		}

	case msg.String() == "n":
		m.fb.value = ""
		m.statusMsg = ""
		m.form = m.buildForm()
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	existing := m.values()
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New " + strings.ToLower(m.group.String()) + " value").
				Value(&m.fb.value).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return fmt.Errorf("value is required")
					}
					if slices.Contains(existing, s) {
						return fmt.Errorf("%q is already listed", s)
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false).WithKeyMap(ui.FormKeyMap())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		value := strings.TrimSpace(m.fb.value)
		var add model.Options
		switch m.group {
		case groupStatuses:
			add.Statuses = []string{value}
		case groupWorkBy:
			add.WorkBy = []string{value}
		default:
			add.WorkTypes = []string{value}
		}
		return m, func() tea.Msg { return AddMsg{Options: add} }
	case huh.StateAborted:
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// View renders the options view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Options"))
	b.WriteString("\n")
	b.WriteString(m.renderGroups())
	b.WriteString("\n\n")

	values := m.values()
	if len(values) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true).Render("No values yet. Press 'n' to add one."))
	}
	for i, v := range values {
		if i == m.selectedIdx && m.form == nil {
			b.WriteString(theme.SelectedItemStyle.Render(v))
		} else {
			b.WriteString(theme.ListItemStyle.Render(v))
		}
		b.WriteString("\n")
	}

	if m.form != nil {
		b.WriteString("\n")
		b.WriteString(m.form.View())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("tab/h/l group | n add | esc back"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) renderGroups() string {
	tabs := make([]string, 0, groupCount)
	for g := range groupCount {
		label := fmt.Sprintf("%s (%d)", g, len(m.withGroup(g).values()))
		if g == m.group {
			tabs = append(tabs, theme.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, theme.TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) withGroup(g group) Model {
	m.group = g
	return m
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 80)
}
