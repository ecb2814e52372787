package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nhle/workdesk/internal/keys"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/ui/itemlist"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// AddReminderMsg asks the parent to open the reminder form linked to the
// displayed item.
type AddReminderMsg struct {
	ItemID string
}

// Model is the work item detail view.
type Model struct {
	item      *model.WorkItem
	reminders []model.Reminder
	viewport  viewport.Model
	keys      *keys.KeyMap
	now       func() time.Time
	width     int
	height    int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		now:      time.Now,
		width:    width,
		height:   height,
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Reminders):
			if m.item != nil {
				id := m.item.ID
				return m, func() tea.Msg { return AddReminderMsg{ItemID: id} }
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.item == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("This item no longer exists")
	}
	return m.viewport.View()
}

// ItemID returns the id of the displayed item.
func (m Model) ItemID() string {
	if m.item == nil {
		return ""
	}
	return m.item.ID
}

// SetItem shows w and the reminders linked to it.
func (m *Model) SetItem(w model.WorkItem, reminders []model.Reminder) {
	m.item = &w
	m.reminders = linked(reminders, w.ID)
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Refresh re-renders after a snapshot. A deleted item clears the view.
func (m *Model) Refresh(w model.WorkItem, ok bool, reminders []model.Reminder) {
	if !ok {
		m.item = nil
		return
	}
	offset := m.viewport.YOffset
	m.item = &w
	m.reminders = linked(reminders, w.ID)
	m.viewport.SetContent(m.renderContent())
	m.viewport.SetYOffset(offset)
}

func linked(reminders []model.Reminder, id string) []model.Reminder {
	var out []model.Reminder
	for _, r := range reminders {
		if r.WorkItemID == id {
			out = append(out, r)
		}
	}
	return out
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	w := m.item
	now := m.now()
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(w.CustomerName))

	statusBadge := theme.StatusStyle(w.Status).Render(w.Status)
	lifecycle := theme.DimmedStyle.Render(strings.ToUpper(w.Lifecycle().String()))
	called := ""
	if w.CustomerCalled {
		called = theme.DimmedStyle.Render("  customer called")
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, statusBadge, "  ", lifecycle, called))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(18)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string) {
		if value == "" {
			return
		}
		sections = append(sections, metaStyle.Render(label+":")+valStyle.Render(value))
	}

	if w.HasDate() {
		row("Date of work", w.DateOfWork.Format("02 Jan 2006 15:04"))
		row("Days", fmt.Sprintf("%d", w.DayCount(now)))
	}
	row("Work by", w.WorkBy)
	row("Type of work", w.WorkOfType)
	row("Passport", w.PassportNumber)
	row("Tracking", w.TrackingNumber)
	row("Mobile/WhatsApp", w.MobileWhatsappNumber)
	row("Sales price", itemlist.FormatMoney(w.SalesPrice))
	row("Advance", itemlist.FormatMoney(w.Advance))
	sections = append(sections, metaStyle.Render("Due:")+theme.DueStyle.Render(itemlist.FormatMoney(w.Due)))

	if purgeAt, ok := w.PurgeAt(); ok {
		row("Trashed", humanize.Time(*w.TrashedAt))
		sections = append(sections, metaStyle.Render("Purged:")+theme.PurgeStyle.Render(
			fmt.Sprintf("%s (%d days left)", purgeAt.Format("02 Jan 2006"), w.DaysUntilPurge(now)),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	sections = append(sections, "", separator, "")

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, headerStyle.Render(fmt.Sprintf("Reminders (%d)", len(m.reminders))))
	if len(m.reminders) == 0 {
		sections = append(sections, theme.DimmedStyle.Italic(true).Render("No reminders. Press R to add one."))
	}
	for _, r := range m.reminders {
		box := "[ ]"
		if r.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s  %s", box, r.Title, theme.DimmedStyle.Render(humanize.Time(r.Date)))
		sections = append(sections, line)
		if r.Note != "" {
			sections = append(sections, "    "+theme.DimmedStyle.Render(r.Note))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
