package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/workdesk/internal/app"
	"github.com/nhle/workdesk/internal/auth"
	"github.com/nhle/workdesk/internal/credential"
	"github.com/nhle/workdesk/internal/logging"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/theme"
)

// runTUI starts the dashboard. Logs go to log.file since the terminal
// belongs to the UI.
func runTUI(cmd *cobra.Command, a *App) error {
	log, closer, err := logging.Open(a.cfg.Log.File, a.cfg.Log.Level, a.cfg.Log.Format)
	if err != nil {
		return err
	}
	defer closer.Close()

	rt, err := openRuntime(a, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	prefsPath := model.DefaultPreferencesPath()
	prefs, err := model.LoadPreferences(prefsPath)
	if err != nil {
		log.Warn("preferences unreadable, using defaults", "error", err)
	}
	if _, err := os.Stat(prefsPath); errors.Is(err, fs.ErrNotExist) {
		prefs.Theme = theme.Normalize(a.cfg.Display.Theme)
	}

	m := app.New(app.Deps{
		Items:      rt.items,
		Reminders:  rt.reminders,
		State:      rt.state,
		Session:    rt.session,
		Registry:   rt.registry,
		Auth:       auth.New(a.cfg.Auth.Username, a.secrets()),
		Log:        log,
		Config:     a.cfg,
		ConfigPath: a.cfgPath,
		Prefs:      prefs,
		PrefsPath:  prefsPath,
		PageSize:   a.cfg.Display.PageSize,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// secrets returns the credential store holding the password hash.
func (a *App) secrets() credential.Store {
	if a.credentials != nil {
		return a.credentials
	}
	return credential.Keyring{}
}
