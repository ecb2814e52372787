package itemlist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/selection"
	"github.com/nhle/workdesk/internal/view"
	"github.com/nhle/workdesk/internal/workitem"
)

// column pairs a table header with the sortable column it shows.
type column struct {
	title string
	width int
	sort  view.Column
}

var baseColumns = []column{
	{title: "Date", width: 11, sort: view.ColDateOfWork},
	{title: "Days", width: 5, sort: view.ColDayCount},
	{title: "Work By", width: 10, sort: view.ColWorkBy},
	{title: "Type", width: 14, sort: view.ColWorkOfType},
	{title: "Status", width: 17, sort: view.ColStatus},
	{title: "Customer", width: 18, sort: view.ColCustomerName},
	{title: "Passport", width: 11, sort: view.ColPassportNumber},
	{title: "Tracking", width: 11, sort: view.ColTrackingNumber},
	{title: "Mobile", width: 14, sort: view.ColMobileNumber},
	{title: "Sales", width: 10, sort: view.ColSalesPrice},
	{title: "Advance", width: 10, sort: view.ColAdvance},
	{title: "Due", width: 10, sort: view.ColDue},
}

var trashColumn = column{title: "Purge", width: 8, sort: view.ColTrashedAt}

// columnsFor returns the columns shown on tab. The Trash tab adds the
// purge countdown.
func columnsFor(tab string) []column {
	cols := baseColumns
	if tab == view.TabTrash {
		cols = append(cols[:len(cols):len(cols)], trashColumn)
	}
	return cols
}

// headerBox renders the select-all checkbox.
func headerBox(state selection.HeaderState) string {
	switch state {
	case selection.HeaderAll:
		return "[x]"
	case selection.HeaderIndeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

// tableColumns builds the header row with the sort indicator on the
// active column.
func tableColumns(cols []column, q view.Query, header selection.HeaderState) []table.Column {
	out := make([]table.Column, 0, len(cols)+1)
	out = append(out, table.Column{Title: headerBox(header), Width: 3})
	for _, c := range cols {
		title := c.title
		if c.sort == q.Sort {
			if q.Desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		out = append(out, table.Column{Title: title, Width: c.width})
	}
	return out
}

// tableRows renders one row per item on the page.
func tableRows(cols []column, items []model.WorkItem, sel *selection.Set, edits *workitem.StatusEdits, now time.Time) []table.Row {
	rows := make([]table.Row, len(items))
	for i, it := range items {
		box := "[ ]"
		if sel.Contains(it.ID) {
			box = "[x]"
		}
		row := make(table.Row, 0, len(cols)+1)
		row = append(row, box)
		for _, c := range cols {
			row = append(row, cell(c.sort, it, edits, now))
		}
		rows[i] = row
	}
	return rows
}

func cell(col view.Column, it model.WorkItem, edits *workitem.StatusEdits, now time.Time) string {
	switch col {
	case view.ColDateOfWork:
		return FormatDate(it.DateOfWork)
	case view.ColDayCount:
		if !it.HasDate() {
			return ""
		}
		return fmt.Sprintf("%d", it.DayCount(now))
	case view.ColWorkBy:
		return it.WorkBy
	case view.ColWorkOfType:
		return it.WorkOfType
	case view.ColStatus:
		return statusCell(it, edits)
	case view.ColCustomerName:
		return it.CustomerName
	case view.ColPassportNumber:
		return it.PassportNumber
	case view.ColTrackingNumber:
		return it.TrackingNumber
	case view.ColMobileNumber:
		return it.MobileWhatsappNumber
	case view.ColSalesPrice:
		return FormatMoney(it.SalesPrice)
	case view.ColAdvance:
		return FormatMoney(it.Advance)
	case view.ColDue:
		return FormatMoney(it.Due)
	case view.ColTrashedAt:
		if _, ok := it.PurgeAt(); !ok {
			return ""
		}
		return fmt.Sprintf("%dd", it.DaysUntilPurge(now))
	}
	return ""
}

// statusCell shows the pending value while a status write is in flight,
// marked with an ellipsis, and flags a reverted write.
func statusCell(it model.WorkItem, edits *workitem.StatusEdits) string {
	if edits == nil {
		return it.Status
	}
	display := edits.Display(it)
	switch edits.State(it.ID) {
	case workitem.EditPending:
		return display + " …"
	case workitem.EditReverted:
		return display + " !"
	}
	return display
}

// FormatDate renders a date of work for display.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

// FormatMoney renders an amount with thousands separators and at most two
// decimals.
func FormatMoney(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
