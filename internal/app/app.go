package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/workdesk/internal/auth"
	"github.com/nhle/workdesk/internal/dashboard"
	"github.com/nhle/workdesk/internal/keys"
	"github.com/nhle/workdesk/internal/logging"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/notify"
	"github.com/nhle/workdesk/internal/options"
	"github.com/nhle/workdesk/internal/reminder"
	"github.com/nhle/workdesk/internal/state"
	appsync "github.com/nhle/workdesk/internal/sync"
	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/ui"
	"github.com/nhle/workdesk/internal/ui/bulkform"
	"github.com/nhle/workdesk/internal/ui/command"
	"github.com/nhle/workdesk/internal/ui/confirm"
	"github.com/nhle/workdesk/internal/ui/detail"
	helpview "github.com/nhle/workdesk/internal/ui/help"
	"github.com/nhle/workdesk/internal/ui/importform"
	"github.com/nhle/workdesk/internal/ui/itemform"
	"github.com/nhle/workdesk/internal/ui/itemlist"
	"github.com/nhle/workdesk/internal/ui/login"
	"github.com/nhle/workdesk/internal/ui/optionsmgr"
	"github.com/nhle/workdesk/internal/ui/reminders"
	"github.com/nhle/workdesk/internal/ui/settings"
	"github.com/nhle/workdesk/internal/view"
	"github.com/nhle/workdesk/internal/workitem"
)

// noticeTTL is how long a transient notice stays in the status bar.
const noticeTTL = 4 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewList
	ViewDetail
	ViewHelp
	ViewCommand
	ViewItemCreate
	ViewItemEdit
	ViewImport
	ViewBulk
	ViewConfirm
	ViewReminders
	ViewOptions
	ViewSettings
)

// Deps are the services the terminal UI drives.
type Deps struct {
	Items     *workitem.Service
	Reminders *reminder.Service
	State     *state.Store
	Session   *appsync.Session
	Registry  *options.Registry
	Auth      *auth.Authenticator
	Log       logging.Logger

	// Config enables the settings view; it is saved to ConfigPath.
	Config     *model.AppConfig
	ConfigPath string

	Prefs     model.Preferences
	PrefsPath string
	PageSize  int

	Now func() time.Time
}

// stateChangedMsg is delivered when the shared state changes.
type stateChangedMsg struct{}

type loginResultMsg struct{ err error }

type sessionStartedMsg struct{ err error }

type clearNoticeMsg struct{ seq int }

// Model is the root Bubble Tea model that manages view routing,
// layout, and the session lifecycle.
type Model struct {
	deps Deps

	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	board        *dashboard.Board
	edits        *workitem.StatusEdits
	prefs        model.Preferences

	loginView     login.Model
	itemList      itemlist.Model
	detail        detail.Model
	helpView      helpview.Model
	commandView   command.Model
	itemForm      itemform.Model
	importView    importform.Model
	bulkView      bulkform.Model
	confirmView   confirm.Model
	remindersView reminders.Model
	optionsView   optionsmgr.Model
	settingsView  settings.Model

	events       <-chan state.Event
	cancelEvents func()

	notice    notify.Notice
	noticeSeq int
	ready     bool
}

// New creates the root application model.
func New(d Deps) Model {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	d.Prefs.Theme = theme.Apply(d.Prefs.Theme)

	k := keys.DefaultKeyMap()
	board := dashboard.NewBoard(d.PageSize)
	edits := workitem.NewStatusEdits()
	events, cancel := d.State.Subscribe()

	username := ""
	if d.Auth != nil {
		username = d.Auth.Username()
	}

	list := itemlist.New(board, edits, k, 80, 24)
	list.SetClock(d.Now)

	start := ViewLogin
	if d.Prefs.Authenticated || d.Auth == nil {
		start = ViewList
	}

	return Model{
		deps:          d,
		currentView:   start,
		keys:          k,
		board:         board,
		edits:         edits,
		prefs:         d.Prefs,
		loginView:     login.New(username, 80, 24),
		itemList:      list,
		detail:        detail.New(k, 80, 24),
		helpView:      helpview.New(k, 80, 24),
		commandView:   command.New(80, 24),
		itemForm:      itemform.New(80, 24),
		importView:    importform.New(80, 24),
		bulkView:      bulkform.New(80),
		confirmView:   confirm.New(80),
		remindersView: reminders.New(k, 80, 24),
		optionsView:   optionsmgr.New(k, 80, 24),
		settingsView:  settings.New(d.ConfigPath, 80, 24),
		events:        events,
		cancelEvents:  cancel,
	}
}

// Init skips the login screen when the stored preferences say the user is
// already signed in, or when no authenticator is configured.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewList {
		return tea.Batch(m.startSession(), m.waitForEvent())
	}
	return tea.Batch(m.loginView.Start(""), m.waitForEvent())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.loginView.SetSize(msg.Width, msg.Height)
		m.itemList.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		m.itemForm.SetSize(w, h)
		m.importView.SetSize(w, h)
		m.bulkView.SetSize(w)
		m.confirmView.SetSize(w)
		m.remindersView.SetSize(w, h)
		m.optionsView.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case login.SubmitMsg:
		return m, m.verify(msg.Username, msg.Password)

	case loginResultMsg:
		if msg.err != nil {
			m.deps.Log.BusinessError("login rejected", msg.err)
			return m, m.loginView.Start("Invalid username or password")
		}
		m.prefs.Authenticated = true
		m.savePrefs()
		m.currentView = ViewList
		return m, m.startSession()

	case sessionStartedMsg:
		if msg.err != nil {
			return m, m.setNotice(notify.FromError(msg.err))
		}
		m.refreshFromState()
		return m, nil

	case stateChangedMsg:
		m.refreshFromState()
		return m, m.waitForEvent()

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq && !m.notice.Persistent {
			m.notice = notify.Notice{}
		}
		return m, nil

	case bulkTrashResultMsg:
		if msg.err == nil {
			m.board.Selection().Clear()
			m.refreshList()
		}
		n, _ := noticeFor(msg.writeResultMsg)
		return m, m.setNotice(n)

	case writeResultMsg:
		if n, ok := noticeFor(msg); ok {
			return m, m.setNotice(n)
		}
		return m, nil

	case statusResultMsg:
		if msg.err != nil {
			m.edits.Fail(msg.id)
			m.refreshList()
			return m, m.setNotice(notify.FromError(msg.err))
		}
		return m, nil

	case itemlist.SelectedItemMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetItem(msg.Item, m.deps.State.Reminders())
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case detail.AddReminderMsg:
		m.currentView = ViewReminders
		return m, m.remindersView.StartCreate(msg.ItemID)

	case itemform.CreateMsg:
		m.currentView = ViewList
		return m, m.createItem(msg.Input)

	case itemform.UpdateMsg:
		m.currentView = ViewList
		return m, m.updateItem(msg.Original, msg.Input)

	case itemform.CancelMsg, importform.CancelMsg, bulkform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case importform.SubmitMsg:
		m.currentView = ViewList
		if msg.Err != nil {
			return m, m.setNotice(notify.Notice{Kind: notify.KindValidation, Message: msg.Err.Error()})
		}
		return m, m.importRows(msg.Text)

	case bulkform.SubmitMsg:
		m.currentView = ViewList
		return m, m.bulkUpdate(msg.IDs, msg.Change)

	case confirm.ResultMsg:
		m.currentView = ViewList
		if req, ok := msg.Request.(bulkTrashRequest); ok && msg.Confirmed {
			return m, m.bulkTrash(req.ids)
		}
		return m, nil

	case reminders.CloseMsg, optionsmgr.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case optionsmgr.AddMsg:
		return m, m.addOptions(msg.Options)

	case optionsResultMsg:
		if msg.err != nil {
			m.optionsView.SetStatus(notify.FromError(msg.err).Message)
		} else {
			m.optionsView.SetStatus(msg.text)
		}
		return m, nil

	case settings.SavedMsg:
		m.currentView = ViewList
		return m, m.applySettings(msg.Config)

	case settings.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case reminders.CreateMsg:
		return m, m.createReminder(msg.Input)

	case reminders.ToggleMsg:
		return m, m.toggleReminder(msg.Reminder)

	case reminders.DeleteMsg:
		return m, m.deleteReminder(msg.ID)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.shutdown()
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Dismiss) && m.notice.Message != "" {
			m.notice = notify.Notice{}
			return m, nil
		}
		if m.currentView == ViewList && !m.itemList.Searching() {
			if handled, next, cmd := m.handleListKeys(msg); handled {
				return next, cmd
			}
		}
		if m.currentView == ViewHelp && (key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back)) {
			m.currentView = m.previousView
			return m, nil
		}
		if m.currentView == ViewCommand && msg.String() == "esc" {
			m.currentView = m.previousView
			return m, nil
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleListKeys handles the dashboard shortcuts. Keys it does not handle
// fall through to the table.
func (m Model) handleListKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.shutdown()
		return true, m, tea.Quit

	case key.Matches(msg, k.Help):
		m.helpView.SetEditMode(m.prefs.EditMode)
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case key.Matches(msg, k.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return true, m, m.commandView.Focus()

	case key.Matches(msg, k.Create):
		return true, m, m.openCreate()

	case key.Matches(msg, k.Edit):
		if !m.prefs.EditMode {
			return true, m, m.setNotice(notify.Info("Turn on edit mode (E) to edit items"))
		}
		if w, ok := m.itemList.Highlighted(); ok {
			m.itemForm.SetOptions(m.deps.State.Options())
			m.currentView = ViewItemEdit
			return true, m, m.itemForm.StartEdit(w)
		}
		return true, m, nil

	case key.Matches(msg, k.Trash):
		if w, ok := m.itemList.Highlighted(); ok && w.Lifecycle() != model.LifecycleTrashed {
			return true, m, m.trashItem(w)
		}
		return true, m, nil

	case key.Matches(msg, k.Restore):
		if w, ok := m.itemList.Highlighted(); ok && w.Lifecycle() == model.LifecycleTrashed {
			return true, m, m.restoreItem(w)
		}
		return true, m, nil

	case key.Matches(msg, k.Archive):
		if w, ok := m.itemList.Highlighted(); ok && w.Lifecycle() != model.LifecycleTrashed {
			return true, m, m.toggleArchive(w)
		}
		return true, m, nil

	case key.Matches(msg, k.StatusNext), key.Matches(msg, k.StatusPrev):
		delta := 1
		if key.Matches(msg, k.StatusPrev) {
			delta = -1
		}
		if w, ok := m.itemList.Highlighted(); ok {
			return true, m, m.cycleStatus(w, delta)
		}
		return true, m, nil

	case key.Matches(msg, k.CustomerCalled):
		if w, ok := m.itemList.Highlighted(); ok {
			return true, m, m.toggleCustomerCalled(w)
		}
		return true, m, nil

	case key.Matches(msg, k.BulkTrash):
		if m.board.Query().Tab == view.TabTrash {
			return true, m, m.setNotice(notify.Info("Selected items are already in the trash"))
		}
		ids := m.board.Selection().IDs()
		if len(ids) == 0 {
			return true, m, m.setNotice(notify.FromError(workitem.ErrEmptySelection))
		}
		m.currentView = ViewConfirm
		return true, m, m.confirmView.Ask(
			fmt.Sprintf("Move %d items to trash?", len(ids)),
			"Trashed items are purged after 30 days.",
			bulkTrashRequest{ids: ids},
		)

	case key.Matches(msg, k.BulkUpdate):
		ids := m.board.Selection().IDs()
		if len(ids) == 0 {
			return true, m, m.setNotice(notify.FromError(workitem.ErrEmptySelection))
		}
		m.currentView = ViewBulk
		return true, m, m.bulkView.Start(ids, m.deps.State.Options())

	case key.Matches(msg, k.Import):
		m.currentView = ViewImport
		return true, m, m.importView.Start()

	case key.Matches(msg, k.Reminders):
		m.currentView = ViewReminders
		return true, m, m.remindersView.SetReminders(m.deps.State.Reminders())

	case key.Matches(msg, k.Options):
		return true, m, m.openOptions()

	case key.Matches(msg, k.Settings):
		return true, m, m.openSettings()

	case key.Matches(msg, k.EditMode):
		m.setEditMode(!m.prefs.EditMode)
		return true, m, m.setNotice(notify.Info("Edit mode %s", onOff(m.prefs.EditMode)))

	case key.Matches(msg, k.ToggleTheme):
		m.setTheme(theme.Toggle(m.prefs.Theme))
		return true, m, nil

	case key.Matches(msg, k.Logout):
		return true, m, m.logout()
	}
	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewList:
		m.itemList, cmd = m.itemList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewItemCreate, ViewItemEdit:
		m.itemForm, cmd = m.itemForm.Update(msg)
	case ViewImport:
		m.importView, cmd = m.importView.Update(msg)
	case ViewBulk:
		m.bulkView, cmd = m.bulkView.Update(msg)
	case ViewConfirm:
		m.confirmView, cmd = m.confirmView.Update(msg)
	case ViewReminders:
		m.remindersView, cmd = m.remindersView.Update(msg)
	case ViewOptions:
		m.optionsView, cmd = m.optionsView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.streamStatus())
	content := m.renderContent()

	statusBar := m.layout.RenderStatusBar(m.keyHints())
	if m.notice.Message != "" {
		msg := m.notice.Message
		if m.notice.Persistent {
			msg += " (ctrl+x to dismiss)"
		}
		statusBar = m.layout.RenderNotice(msg, m.notice.IsError())
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.itemList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewItemCreate, ViewItemEdit:
		return m.itemForm.View()
	case ViewImport:
		return m.importView.View()
	case ViewBulk:
		return m.bulkView.View()
	case ViewConfirm:
		return m.confirmView.View()
	case ViewReminders:
		return m.remindersView.View()
	case ViewOptions:
		return m.optionsView.View()
	case ViewSettings:
		return m.settingsView.View()
	default:
		return ""
	}
}

func (m Model) headerTitle() string {
	title := "Workdesk"
	if m.prefs.EditMode {
		title += " [edit]"
	}
	if due := len(reminder.Due(m.deps.State.Reminders(), m.deps.Now())); due > 0 {
		title += fmt.Sprintf(" [%d due]", due)
	}
	return title
}

// streamStatus summarizes the live subscriptions.
func (m Model) streamStatus() string {
	if m.deps.Session == nil || !m.deps.Session.Running() {
		return "offline"
	}
	waiting := 0
	for _, s := range m.deps.Session.Statuses() {
		switch s.State {
		case appsync.StreamWaiting:
			waiting++
		case appsync.StreamStopped:
			return "disconnected: " + s.Collection
		}
	}
	if waiting > 0 {
		return fmt.Sprintf("connecting (%d)", waiting)
	}
	return "live"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewDetail:
		return "esc back | R add reminder | j/k scroll"
	case ViewItemCreate, ViewItemEdit, ViewImport, ViewBulk, ViewSettings:
		return "enter next/submit | shift+tab back | esc cancel"
	case ViewConfirm:
		return "←/→ choose | enter confirm"
	case ViewReminders:
		return m.remindersView.KeyHints()
	case ViewOptions:
		return "tab group | j/k move | n add | esc back"
	default:
		if m.board.Selection().Len() > 0 {
			return "space select | a page | u clear | D trash selected | B update selected"
		}
		return "q quit | ? help | / search | tab tabs | o/O sort | n/p page | c new | [/] status"
	}
}

// refreshFromState pulls a fresh snapshot into every view that shows it.
func (m *Model) refreshFromState() {
	snap := m.deps.State.Snapshot()
	m.edits.Reconcile(snap.Items)
	if snap.ItemsLoaded {
		m.itemList.Refresh(snap.Items, snap.Options)
	}
	if m.currentView == ViewDetail {
		w, ok := m.deps.State.Item(m.detail.ItemID())
		m.detail.Refresh(w, ok, snap.Reminders)
	}
	m.remindersView.SetReminders(snap.Reminders)
	m.optionsView.SetOptions(snap.Options)
}

// refreshList redraws the table from the current state.
func (m *Model) refreshList() {
	snap := m.deps.State.Snapshot()
	if snap.ItemsLoaded {
		m.itemList.Refresh(snap.Items, snap.Options)
	}
}

func (m *Model) openCreate() tea.Cmd {
	m.itemForm.SetOptions(m.deps.State.Options())
	m.currentView = ViewItemCreate
	return m.itemForm.StartCreate(m.deps.Now())
}

// setNotice shows n and schedules its removal unless it is persistent.
func (m *Model) setNotice(n notify.Notice) tea.Cmd {
	m.notice = n
	m.noticeSeq++
	if n.Persistent {
		return nil
	}
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

// waitForEvent blocks until the state changes. A closed channel ends the
// wait loop.
func (m Model) waitForEvent() tea.Cmd {
	ch := m.events
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// verify checks credentials off the UI goroutine since bcrypt is slow.
func (m Model) verify(username, password string) tea.Cmd {
	a := m.deps.Auth
	return func() tea.Msg {
		return loginResultMsg{err: a.Verify(username, password)}
	}
}

// startSession opens the live subscriptions.
func (m Model) startSession() tea.Cmd {
	s := m.deps.Session
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		return sessionStartedMsg{err: s.Start(context.Background())}
	}
}

// logout stops the session, forgets the sign-in and returns to the login
// screen. Without an authenticator there is nothing to sign out of.
func (m *Model) logout() tea.Cmd {
	if m.deps.Auth == nil {
		return m.setNotice(notify.Info("No login is configured"))
	}
	if m.deps.Session != nil {
		m.deps.Session.Stop()
	}
	m.board.Selection().Clear()
	m.prefs.Authenticated = false
	m.savePrefs()
	m.notice = notify.Notice{}
	m.currentView = ViewLogin
	return m.loginView.Start("")
}

func (m *Model) shutdown() {
	if m.deps.Session != nil {
		m.deps.Session.Stop()
	}
	m.cancelEvents()
}

func (m *Model) setEditMode(on bool) {
	m.prefs.EditMode = on
	m.savePrefs()
}

func (m *Model) setTheme(name string) {
	m.prefs.Theme = theme.Apply(name)
	m.savePrefs()
	m.refreshList()
}

// savePrefs writes the preference file. Failures are logged only.
func (m *Model) savePrefs() {
	if m.deps.PrefsPath == "" {
		return
	}
	if err := model.SavePreferences(m.deps.PrefsPath, m.prefs); err != nil {
		m.deps.Log.Warn("saving preferences failed", "error", err)
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(input string) tea.Cmd {
	verb, arg := command.Parse(input)
	switch verb {
	case "quit", "q":
		m.shutdown()
		return tea.Quit
	case "logout":
		return m.logout()
	case "tab":
		if !m.itemList.SetTab(arg) {
			return m.setNotice(notify.Notice{Kind: notify.KindValidation, Message: fmt.Sprintf("Unknown tab %q", arg)})
		}
	case "search":
		m.board.SetSearch(arg)
	case "clear":
		m.board.SetSearch("")
		m.board.SetTab(view.TabAll)
		m.board.Selection().Clear()
	case "sort":
		col, ok := view.ParseColumn(arg)
		if !ok {
			return m.setNotice(notify.Notice{Kind: notify.KindValidation, Message: fmt.Sprintf("Unknown column %q", arg)})
		}
		m.board.SortBy(col)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return m.setNotice(notify.Notice{Kind: notify.KindValidation, Message: "page needs a number"})
		}
		m.board.SetPage(n)
	case "page-size":
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return m.setNotice(notify.Notice{Kind: notify.KindValidation, Message: "page-size needs a positive number"})
		}
		m.board.SetPageSize(n)
	case "select":
		switch strings.ToLower(arg) {
		case "all":
			m.board.ToggleAllOnPage()
		case "none":
			m.board.Selection().Clear()
		}
	case "import":
		m.currentView = ViewImport
		return m.importView.Start()
	case "reminders":
		m.currentView = ViewReminders
		return m.remindersView.SetReminders(m.deps.State.Reminders())
	case "new":
		return m.openCreate()
	case "options":
		return m.openOptions()
	case "settings":
		return m.openSettings()
	case "theme":
		m.setTheme(arg)
	case "edit":
		m.setEditMode(strings.EqualFold(arg, "on"))
		return m.setNotice(notify.Info("Edit mode %s", onOff(m.prefs.EditMode)))
	default:
		return m.setNotice(notify.Notice{Kind: notify.KindValidation, Message: fmt.Sprintf("Unknown command %q", input)})
	}
	m.refreshList()
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
