package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/ui/itemlist"
	"github.com/nhle/workdesk/internal/view"
)

type listFlags struct {
	tab      string
	search   string
	sort     string
	desc     bool
	page     int
	pageSize int
	json     bool
}

type listOutput struct {
	Items      []model.WorkItem `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

func newListCmd(a *App) *cobra.Command {
	f := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Newest first unless a sort was asked for.
			if !cmd.Flags().Changed("sort") && !cmd.Flags().Changed("desc") {
				f.desc = true
			}

			rt, err := openRuntime(a, a.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.startAndWait(cmd.Context()); err != nil {
				return err
			}
			snap := rt.state.Snapshot()

			q, err := f.query(snap.Options.Statuses, a.cfg.Display.PageSize)
			if err != nil {
				return err
			}
			now := time.Now()
			v := view.Compute(snap.Items, q, now)

			if f.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(listOutput{
					Items:      v.Items,
					Total:      v.Total,
					Page:       v.Page,
					TotalPages: v.TotalPages,
				})
			}
			printView(cmd.OutOrStdout(), q, v, now)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.tab, "tab", view.TabAll, "tab to show (All Items, a status, Archived or Trash)")
	cmd.Flags().StringVar(&f.search, "search", "", "search term")
	cmd.Flags().StringVar(&f.sort, "sort", string(view.ColDateOfWork), "sort column")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "items per page (default display.page_size)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the view as JSON")
	return cmd
}

// query validates the flags. Tab names match case-insensitively.
func (f *listFlags) query(statuses []string, defaultPageSize int) (view.Query, error) {
	q := view.Query{
		Search:   f.search,
		Desc:     f.desc,
		Page:     f.page,
		PageSize: f.pageSize,
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}

	for _, t := range view.Tabs(statuses) {
		if strings.EqualFold(t, f.tab) {
			q.Tab = t
		}
	}
	if q.Tab == "" {
		return view.Query{}, fmt.Errorf("unknown tab %q", f.tab)
	}

	col, ok := view.ParseColumn(f.sort)
	if !ok {
		return view.Query{}, fmt.Errorf("unknown sort column %q", f.sort)
	}
	q.Sort = col
	return q, nil
}

func printView(w io.Writer, q view.Query, v view.View, now time.Time) {
	headers := []string{"Date", "Days", "Work By", "Type", "Status", "Customer", "Tracking", "Sales", "Advance", "Due"}
	trash := q.Tab == view.TabTrash
	if trash {
		headers = append(headers, "Purge")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, it := range v.Items {
		row := []string{
			itemlist.FormatDate(it.DateOfWork),
			strconv.Itoa(it.DayCount(now)),
			it.WorkBy,
			it.WorkOfType,
			it.Status,
			it.CustomerName,
			it.TrackingNumber,
			itemlist.FormatMoney(it.SalesPrice),
			itemlist.FormatMoney(it.Advance),
			itemlist.FormatMoney(it.Due),
		}
		if trash {
			row = append(row, purgeText(it, now))
		}
		t.Row(row...)
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%s | %d items | page %d/%d\n", q.Tab, v.Total, v.Page, max(v.TotalPages, 1))
}

func purgeText(it model.WorkItem, now time.Time) string {
	if _, ok := it.PurgeAt(); !ok {
		return ""
	}
	return fmt.Sprintf("%dd", it.DaysUntilPurge(now))
}
