// Package settings edits the application configuration file.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/theme"
	"github.com/nhle/workdesk/internal/ui"
)

// SavedMsg carries the edited configuration.
type SavedMsg struct {
	Config model.AppConfig
}

// CancelMsg is dispatched when the form is closed without saving.
type CancelMsg struct{}

type formBindings struct {
	pageSize   string
	theme      string
	username   string
	serverAddr string
	logLevel   string
	logFormat  string
	readOnly   bool
}

// Model is the settings form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	original model.AppConfig
	path     string
	width    int
	height   int
}

// New creates a settings form for the config file at path.
func New(path string, width, height int) Model {
	return Model{fb: &formBindings{}, path: path, width: width, height: height}
}

// Start opens the form with the values of cfg.
func (m *Model) Start(cfg model.AppConfig) tea.Cmd {
	m.original = cfg
	*m.fb = formBindings{
		pageSize:   strconv.Itoa(cfg.Display.PageSize),
		theme:      theme.Normalize(cfg.Display.Theme),
		username:   cfg.Auth.Username,
		serverAddr: cfg.Server.Addr,
		logLevel:   strings.ToLower(cfg.Log.Level),
		logFormat:  strings.ToLower(cfg.Log.Format),
		readOnly:   cfg.Store.ReadOnly,
	}

	display := huh.NewGroup(
		huh.NewInput().
			Title("Page size").
			Value(&m.fb.pageSize).
			Validate(validatePageSize),
		huh.NewSelect[string]().
			Title("Theme").
			Options(huh.NewOptions(theme.Dark, theme.Light)...).
			Value(&m.fb.theme),
	).Title("Display")

	access := huh.NewGroup(
		huh.NewInput().
			Title("Username").
			Value(&m.fb.username).
			Validate(validateRequired("Username")),
		huh.NewInput().
			Title("API listen address").
			Value(&m.fb.serverAddr).
			Validate(validateRequired("Listen address")),
		huh.NewConfirm().
			Title("Read-only store").
			Description("Reject every write. Applies after restart.").
			Value(&m.fb.readOnly),
	).Title("Access")

	logging := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Log level").
			Options(huh.NewOptions("debug", "info", "warn", "error")...).
			Value(&m.fb.logLevel),
		huh.NewSelect[string]().
			Title("Log format").
			Options(huh.NewOptions("json", "text")...).
			Value(&m.fb.logFormat),
	).Title("Logging")

	m.form = huh.NewForm(display, access, logging).
		WithWidth(m.formWidth()).
		WithKeyMap(ui.FormKeyMap())
	return m.form.Init()
}

// Update handles messages for the form.
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
		cfg := m.config()
		return m, func() tea.Msg { return SavedMsg{Config: cfg} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, cmd
}

// config applies the bound values to the original configuration.
func (m Model) config() model.AppConfig {
	cfg := m.original
	if n, err := strconv.Atoi(strings.TrimSpace(m.fb.pageSize)); err == nil {
		cfg.Display.PageSize = n
	}
	cfg.Display.Theme = m.fb.theme
	cfg.Auth.Username = strings.TrimSpace(m.fb.username)
	cfg.Server.Addr = strings.TrimSpace(m.fb.serverAddr)
	cfg.Store.ReadOnly = m.fb.readOnly
	cfg.Log.Level = m.fb.logLevel
	cfg.Log.Format = m.fb.logFormat
	return cfg
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	info := theme.DimmedStyle.Render(fmt.Sprintf("Config: %s\nStore:  %s", m.path, m.original.Store.Path))
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			theme.TitleStyle.Render("Settings"),
			info,
			"",
			m.form.View(),
		),
	)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 80)
}

func validatePageSize(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
