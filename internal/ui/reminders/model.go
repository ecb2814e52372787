package reminders

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nhle/workdesk/internal/keys"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/reminder"
	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/ui"
)

// CloseMsg returns to the dashboard.
type CloseMsg struct{}

// ToggleMsg asks the parent to flip a reminder's completed flag.
type ToggleMsg struct{ Reminder model.Reminder }

// CreateMsg asks the parent to create a reminder.
type CreateMsg struct{ Input reminder.Input }

// DeleteMsg asks the parent to delete a reminder.
type DeleteMsg struct{ ID string }

const dateLayout = "2006-01-02"

// Item adapts a reminder to the list.
type Item struct {
	Reminder model.Reminder
}

func (i Item) FilterValue() string { return i.Reminder.Title + " " + i.Reminder.Note }

func (i Item) Title() string {
	box := "[ ] "
	if i.Reminder.Completed {
		box = "[x] "
	}
	return box + i.Reminder.Title
}

func (i Item) Description() string {
	parts := []string{}
	if !i.Reminder.Date.IsZero() {
		parts = append(parts, i.Reminder.Date.Format("02 Jan 2006")+" ("+humanize.Time(i.Reminder.Date)+")")
	}
	if i.Reminder.Note != "" {
		parts = append(parts, i.Reminder.Note)
	}
	if i.Reminder.WorkItemID != "" {
		parts = append(parts, "item "+i.Reminder.WorkItemID)
	}
	return strings.Join(parts, " | ")
}

type formBindings struct {
	title  string
	date   string
	note   string
	itemID string
}

// Model lists reminders and hosts the new-reminder form.
type Model struct {
	list          list.Model
	keys          *keys.KeyMap
	form          *huh.Form
	fb            *formBindings
	all           []model.Reminder
	showCompleted bool
	width         int
	height        int
}

// New creates the reminders panel.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.Title = "Reminders"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{list: l, keys: k, fb: &formBindings{}, width: width, height: height}
}

// SetReminders replaces the listed reminders.
func (m *Model) SetReminders(rs []model.Reminder) tea.Cmd {
	m.all = rs
	return m.reload()
}

func (m *Model) reload() tea.Cmd {
	rs := reminder.Filter(m.all, reminder.Query{IncludeCompleted: m.showCompleted})
	items := make([]list.Item, len(rs))
	for i, r := range rs {
		items[i] = Item{Reminder: r}
	}
	return m.list.SetItems(items)
}

// Editing reports whether the new-reminder form is open.
func (m Model) Editing() bool {
	return m.form != nil
}

// StartCreate opens the form, optionally linked to a work item.
func (m *Model) StartCreate(workItemID string) tea.Cmd {
	*m.fb = formBindings{date: time.Now().Format(dateLayout), itemID: workItemID}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&m.fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&m.fb.date).
				Validate(func(s string) error {
					if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewText().Title("Note").Value(&m.fb.note),
		),
	).WithWidth(min(max(m.width-4, 40), 80)).WithKeyMap(ui.FormKeyMap())
	return m.form.Init()
}

// Update handles messages for the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, m.keys.ToggleRow), key.Matches(msg, m.keys.CustomerCalled):
			if it, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleMsg{Reminder: it.Reminder} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Create):
			return m, m.StartCreate("")
		case key.Matches(msg, m.keys.Trash):
			if it, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteMsg{ID: it.Reminder.ID} }
			}
			return m, nil
		case msg.String() == "H":
			m.showCompleted = !m.showCompleted
			return m, m.reload()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		date, _ := time.ParseInLocation(dateLayout, strings.TrimSpace(m.fb.date), time.Local)
		in := reminder.Input{
			Title:      m.fb.title,
			Date:       date,
			Note:       m.fb.note,
			WorkItemID: m.fb.itemID,
		}
		return m, func() tea.Msg { return CreateMsg{Input: in} }
	case huh.StateAborted:
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// View renders the list or the form.
func (m Model) View() string {
	if m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			lipgloss.JoinVertical(lipgloss.Left, theme.TitleStyle.Render("New Reminder"), m.form.View()),
		)
	}
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No reminders. Press c to add one.")
	}
	return m.list.View()
}

// KeyHints returns the status bar hints for the panel.
func (m Model) KeyHints() string {
	if m.form != nil {
		return "enter submit | esc cancel"
	}
	completed := "H show completed"
	if m.showCompleted {
		completed = "H hide completed"
	}
	return "space toggle | c new | d delete | " + completed + " | esc back"
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
