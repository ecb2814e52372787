package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nhle/workdesk/internal/reminder"
	"github.com/nhle/workdesk/internal/ui/itemlist"
)

func newRemindersCmd(a *App) *cobra.Command {
	var (
		search  string
		all     bool
		dueOnly bool
	)

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Print open reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(a, a.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.startAndWait(cmd.Context()); err != nil {
				return err
			}

			now := time.Now()
			list := reminder.Filter(rt.state.Reminders(), reminder.Query{Search: search, IncludeCompleted: all})
			if dueOnly {
				list = reminder.Due(list, now)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No reminders")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("", "Date", "When", "Title", "Note", "Work Item")
			for _, r := range list {
				done := " "
				if r.Completed {
					done = "x"
				}
				when := ""
				if !r.Date.IsZero() {
					when = humanize.RelTime(r.Date, now, "ago", "from now")
				}
				t.Row(done, itemlist.FormatDate(r.Date), when, r.Title, r.Note, r.WorkItemID)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by title or note")
	cmd.Flags().BoolVar(&all, "all", false, "include completed reminders")
	cmd.Flags().BoolVar(&dueOnly, "due", false, "only reminders dated today or earlier")
	return cmd
}
