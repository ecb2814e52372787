package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Detail
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search and tabs
	Search  key.Binding
	NextTab key.Binding
	PrevTab key.Binding

	// Sort
	CycleSort key.Binding
	FlipSort  key.Binding

	// Paging
	NextPage     key.Binding
	PrevPage     key.Binding
	MorePerPage  key.Binding
	FewerPerPage key.Binding

	// Selection
	ToggleRow  key.Binding
	TogglePage key.Binding
	ClearSel   key.Binding

	// Item actions
	Create         key.Binding
	Edit           key.Binding
	Trash          key.Binding
	Restore        key.Binding
	Archive        key.Binding
	StatusNext     key.Binding
	StatusPrev     key.Binding
	CustomerCalled key.Binding

	// Bulk
	BulkTrash  key.Binding
	BulkUpdate key.Binding

	// Other screens
	Import    key.Binding
	Reminders key.Binding
	Options   key.Binding
	Settings  key.Binding
	Command   key.Binding
	Help      key.Binding

	// Session
	EditMode    key.Binding
	ToggleTheme key.Binding
	Dismiss     key.Binding
	Logout      key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort column"),
		),
		FlipSort: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "sort direction"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "previous page"),
		),
		MorePerPage: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more per page"),
		),
		FewerPerPage: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer per page"),
		),
		ToggleRow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select row"),
		),
		TogglePage: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select page"),
		),
		ClearSel: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "clear selection"),
		),
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "new item"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit item"),
		),
		Trash: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "move to trash"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		Archive: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "archive/unarchive"),
		),
		StatusNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next status"),
		),
		StatusPrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous status"),
		),
		CustomerCalled: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "customer called"),
		),
		BulkTrash: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "trash selected"),
		),
		BulkUpdate: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "update selected"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import"),
		),
		Reminders: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reminders"),
		),
		Options: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "manage options"),
		),
		Settings: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "settings"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		EditMode: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit mode"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "toggle theme"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "dismiss notice"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Search,
		k.NextTab, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Search, k.NextTab, k.PrevTab, k.CycleSort, k.FlipSort},
		{k.NextPage, k.PrevPage, k.MorePerPage, k.FewerPerPage},
		{k.ToggleRow, k.TogglePage, k.ClearSel, k.BulkTrash, k.BulkUpdate},
		{k.Create, k.Edit, k.Trash, k.Restore, k.Archive},
		{k.StatusPrev, k.StatusNext, k.CustomerCalled, k.Import, k.Reminders},
		{k.Options, k.Settings},
		{k.Command, k.Help, k.EditMode, k.ToggleTheme, k.Dismiss, k.Logout},
	}
}
