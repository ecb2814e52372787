// Package cli implements the workdesk command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nhle/workdesk/internal/credential"
	"github.com/nhle/workdesk/internal/logging"
	"github.com/nhle/workdesk/internal/model"
)

// App holds the global flags and the loaded configuration.
type App struct {
	ConfigPath string
	EnvFile    string
	LogLevel   string

	cfg         *model.AppConfig
	cfgPath     string
	credentials credential.Store
}

// NewRootCmd builds the command tree. Without a subcommand it starts the
// terminal UI.
func NewRootCmd() *cobra.Command {
	return newRootCmdWith(&App{})
}

func newRootCmdWith(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "workdesk",
		Short:        "Work item dashboard",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the dashboard
  workdesk

  # Serve the HTTP API
  workdesk serve --addr :8080

  # Import tab-separated rows
  workdesk import rows.tsv

  # Print the Approved tab sorted by due amount
  workdesk list --tab Approved --sort due --desc
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load()
	}

	cmd.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "config file (default is $HOME/.config/workdesk/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.EnvFile, "env-file", ".env", "dotenv file loaded before the config")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "override log.level")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newPasswdCmd(app))
	cmd.AddCommand(newRemindersCmd(app))

	return cmd
}

// load reads the dotenv file, if any, and then the config. Variables from
// the dotenv file never override ones already set.
func (a *App) load() error {
	if a.EnvFile != "" {
		if err := godotenv.Load(a.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", a.EnvFile, err)
		}
	}

	path := a.ConfigPath
	if path == "" {
		path = model.DefaultConfigPath()
	}
	a.cfgPath = path
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return err
	}
	if a.LogLevel != "" {
		cfg.Log.Level = a.LogLevel
	}
	a.cfg = cfg
	return nil
}

// logger returns a logger writing to w in the configured format.
func (a *App) logger(w io.Writer) logging.Logger {
	return logging.New(w, a.cfg.Log.Level, a.cfg.Log.Format)
}
