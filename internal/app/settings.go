package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/notify"
	"github.com/nhle/workdesk/internal/theme"
)

// optionsResultMsg reports a registry write started from the options view.
type optionsResultMsg struct {
	text string
	err  error
}

func (m *Model) openOptions() tea.Cmd {
	m.optionsView.SetOptions(m.deps.State.Options())
	m.optionsView.SetStatus("")
	m.currentView = ViewOptions
	return nil
}

func (m *Model) openSettings() tea.Cmd {
	if m.deps.Config == nil {
		return m.setNotice(notify.Info("Settings are not available"))
	}
	m.currentView = ViewSettings
	return m.settingsView.Start(*m.deps.Config)
}

// addOptions registers new option values with the shared registry.
func (m *Model) addOptions(values model.Options) tea.Cmd {
	reg := m.deps.Registry
	if reg == nil {
		return func() tea.Msg {
			return optionsResultMsg{err: fmt.Errorf("no option registry is configured")}
		}
	}
	return func() tea.Msg {
		added, err := reg.Register(context.Background(), values)
		if err != nil {
			return optionsResultMsg{err: err}
		}
		all := append(append(append([]string{}, added.WorkTypes...), added.Statuses...), added.WorkBy...)
		if len(all) == 0 {
			return optionsResultMsg{text: "Nothing new to add"}
		}
		return optionsResultMsg{text: "Added " + strings.Join(all, ", ")}
	}
}

// applySettings applies the display settings now and writes cfg to the
// config file. Other sections take effect on the next start.
func (m *Model) applySettings(cfg model.AppConfig) tea.Cmd {
	*m.deps.Config = cfg
	if cfg.Display.PageSize > 0 {
		m.board.SetPageSize(cfg.Display.PageSize)
	}
	if theme.Normalize(cfg.Display.Theme) != m.prefs.Theme {
		m.setTheme(cfg.Display.Theme)
	}
	m.refreshList()

	path := m.deps.ConfigPath
	if path == "" {
		return m.setNotice(notify.Info("Settings applied for this session"))
	}
	return func() tea.Msg {
		err := model.SaveConfig(path, &cfg)
		return writeResult("Settings saved; store, server and log changes apply on restart", err)
	}
}
