package itemlist

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/dashboard"
	"github.com/nhle/workdesk/internal/keys"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/view"
	"github.com/nhle/workdesk/internal/workitem"
)

// SelectedItemMsg is sent when the user opens the highlighted item.
type SelectedItemMsg struct {
	Item model.WorkItem
}

// chromeHeight is the number of lines used by the tab bar, search line
// and footer around the table.
const chromeHeight = 4

// Model is the work item table with its tab bar, search box and paging
// footer. Actions on items are handled by the parent.
type Model struct {
	board *dashboard.Board
	edits *workitem.StatusEdits
	keys  *keys.KeyMap

	table       table.Model
	pages       paginator.Model
	searchMode  bool
	searchInput textinput.Model

	items    []model.WorkItem
	statuses []string
	loaded   bool
	now      func() time.Time

	width  int
	height int
}

// New creates a table bound to board. edits may be nil.
func New(board *dashboard.Board, edits *workitem.StatusEdits, k *keys.KeyMap, width, height int) Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(max(height-chromeHeight, 1)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.ColorWhite).
		Background(theme.ColorBlue).
		Bold(true)
	t.SetStyles(styles)

	si := textinput.New()
	si.Placeholder = "search customer, passport, tracking, mobile, work by..."
	si.Prompt = "/ "
	si.Width = width - 4

	p := paginator.New()
	p.Type = paginator.Arabic

	return Model{
		board:       board,
		edits:       edits,
		keys:        k,
		table:       t,
		pages:       p,
		searchInput: si,
		now:         time.Now,
		width:       width,
		height:      height,
	}
}

// SetClock replaces the clock used for day counts.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

// Refresh recomputes the view from a new snapshot.
func (m *Model) Refresh(items []model.WorkItem, opts model.Options) {
	m.items = items
	m.statuses = opts.Statuses
	m.loaded = true
	m.recompute()
}

// recompute runs the board pipeline and rebuilds the table.
func (m *Model) recompute() {
	now := m.now()
	v := m.board.Refresh(m.items, now)
	q := m.board.Query()
	cols := columnsFor(q.Tab)

	// Columns must change before rows so the row width matches. Clearing
	// the rows drops the cursor to -1, so it is restored afterwards.
	cursor := m.table.Cursor()
	m.table.SetRows(nil)
	m.table.SetColumns(tableColumns(cols, q, m.board.PageHeader()))
	m.table.SetRows(tableRows(cols, v.Items, m.board.Selection(), m.edits, now))
	if len(v.Items) > 0 {
		m.table.SetCursor(min(max(cursor, 0), len(v.Items)-1))
	}

	m.pages.PerPage = v.PageSize
	m.pages.SetTotalPages(v.Total)
	m.pages.Page = max(v.Page-1, 0)
}

// Highlighted returns the item under the cursor.
func (m Model) Highlighted() (model.WorkItem, bool) {
	items := m.board.View().Items
	i := m.table.Cursor()
	if i < 0 || i >= len(items) {
		return model.WorkItem{}, false
	}
	return items[i], true
}

// Searching reports whether the search box has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Tabs returns the tabs for the known statuses.
func (m Model) Tabs() []string {
	return view.Tabs(m.statuses)
}

// SetTab switches to tab if it exists.
func (m *Model) SetTab(tab string) bool {
	for _, t := range m.Tabs() {
		if strings.EqualFold(t, tab) {
			m.board.SetTab(t)
			m.recompute()
			return true
		}
	}
	return false
}

// Update handles messages for the table.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleSearchKeys filters as the user types. Enter keeps the term, esc
// clears it.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.board.SetSearch("")
		m.recompute()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.board.SetSearch(m.searchInput.Value())
	m.recompute()
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.Highlighted()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return SelectedItemMsg{Item: item} }

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.board.Query().Search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.NextTab):
		m.stepTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.stepTab(-1)

	case key.Matches(msg, m.keys.CycleSort):
		m.board.CycleSort()
	case key.Matches(msg, m.keys.FlipSort):
		m.board.FlipSort()

	case key.Matches(msg, m.keys.NextPage):
		m.board.NextPage()
		m.table.GotoTop()
	case key.Matches(msg, m.keys.PrevPage):
		m.board.PrevPage()
		m.table.GotoTop()
	case key.Matches(msg, m.keys.MorePerPage):
		m.board.StepPageSize(1)
	case key.Matches(msg, m.keys.FewerPerPage):
		m.board.StepPageSize(-1)

	case key.Matches(msg, m.keys.ToggleRow):
		if item, ok := m.Highlighted(); ok {
			m.board.Selection().ToggleOne(item.ID)
		}
	case key.Matches(msg, m.keys.TogglePage):
		m.board.ToggleAllOnPage()
	case key.Matches(msg, m.keys.ClearSel):
		m.board.Selection().Clear()

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.recompute()
	return m, nil
}

func (m *Model) stepTab(delta int) {
	tabs := m.Tabs()
	i := slices.Index(tabs, m.board.Query().Tab)
	if i < 0 {
		i = 0
	}
	i = (i + delta + len(tabs)) % len(tabs)
	m.board.SetTab(tabs[i])
	m.table.GotoTop()
}

// View renders the tab bar, search line, table and footer.
func (m Model) View() string {
	parts := []string{m.renderTabs(), m.renderSearch()}

	if !m.loaded {
		parts = append(parts, m.renderCentered("Waiting for work items..."))
	} else if len(m.board.View().Items) == 0 {
		parts = append(parts, m.renderEmptyState())
	} else {
		parts = append(parts, m.table.View())
	}

	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTabs() string {
	active := m.board.Query().Tab
	var rendered []string
	for _, t := range m.Tabs() {
		if t == active {
			rendered = append(rendered, theme.ActiveTabStyle.Render(t))
		} else {
			rendered = append(rendered, theme.TabStyle.Render(t))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderSearch() string {
	if m.searchMode {
		return lipgloss.NewStyle().Padding(0, 1).Render(m.searchInput.View())
	}
	if term := m.board.Query().Search; term != "" {
		return theme.DimmedStyle.Padding(0, 1).Render(fmt.Sprintf("search: %q (/ to change, esc in search to clear)", term))
	}
	return ""
}

func (m Model) renderFooter() string {
	v := m.board.View()
	sel := m.board.Selection().Len()

	left := fmt.Sprintf("%d items", v.Total)
	if sel > 0 {
		left += fmt.Sprintf(" | %d selected", sel)
	}
	page := "page " + m.pages.View()
	if v.TotalPages == 0 {
		page = "page 0/0"
	}
	right := fmt.Sprintf("%s | %d per page", page, v.PageSize)

	return theme.DimmedStyle.Padding(0, 1).Render(left + " | " + right)
}

func (m Model) renderEmptyState() string {
	if m.board.Query().Search != "" {
		return m.renderCentered("No items match the search")
	}
	return m.renderCentered(fmt.Sprintf("No items in %s", m.board.Query().Tab))
}

func (m Model) renderCentered(text string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(max(m.height-chromeHeight, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(text)
}

// SetSize updates the table dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-chromeHeight, 1))
	m.searchInput.Width = width - 4
}
