package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/workdesk/internal/auth"
)

func newPasswdCmd(a *App) *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Set the login password",
		Long: `Set the password for auth.username. The bcrypt hash is stored in the
system keyring.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				password string
				err      error
			)
			if fromStdin {
				password, err = readPasswordLine(cmd)
			} else {
				password, err = promptPassword()
			}
			if err != nil {
				return err
			}

			if err := auth.New(a.cfg.Auth.Username, a.secrets()).SetPassword(password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", a.cfg.Auth.Username)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "password-stdin", false, "read the password from the first line of stdin")
	return cmd
}

func readPasswordLine(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func promptPassword() (string, error) {
	var password, confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
			huh.NewInput().
				Title("Repeat password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm).
				Validate(func(s string) error {
					if s != password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return password, nil
}
