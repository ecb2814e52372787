// Package view derives the displayed work item list from the full item
// set: search filter, tab filter, sort, then paginate.
package view

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nhle/workdesk/internal/model"
)

// Lifecycle tabs. Every other tab name is a status value.
const (
	TabAll      = "All Items"
	TabArchived = "Archived"
	TabTrash    = "Trash"
)

// DefaultPageSize is used when a query carries no page size.
const DefaultPageSize = model.DefaultPageSize

// Tabs returns the dashboard tabs for the given status values: All Items,
// one per status, Archived and Trash.
func Tabs(statuses []string) []string {
	tabs := make([]string, 0, len(statuses)+3)
	tabs = append(tabs, TabAll)
	for _, s := range model.UnionStrings(nil, statuses) {
		if s == TabAll || s == TabArchived || s == TabTrash {
			continue
		}
		tabs = append(tabs, s)
	}
	return append(tabs, TabArchived, TabTrash)
}

// Column is a sortable work item column.
type Column string

const (
	ColDateOfWork     Column = "dateOfWork"
	ColDayCount       Column = "dayCount"
	ColWorkBy         Column = "workBy"
	ColWorkOfType     Column = "workOfType"
	ColStatus         Column = "status"
	ColCustomerName   Column = "customerName"
	ColPassportNumber Column = "passportNumber"
	ColTrackingNumber Column = "trackingNumber"
	ColMobileNumber   Column = "mobileWhatsappNumber"
	ColSalesPrice     Column = "salesPrice"
	ColAdvance        Column = "advance"
	ColDue            Column = "due"
	ColTrashedAt      Column = "trashedAt"
)

// Columns lists every sortable column in display order.
var Columns = []Column{
	ColDateOfWork, ColDayCount, ColWorkBy, ColWorkOfType, ColStatus,
	ColCustomerName, ColPassportNumber, ColTrackingNumber, ColMobileNumber,
	ColSalesPrice, ColAdvance, ColDue, ColTrashedAt,
}

// ParseColumn resolves a column name.
func ParseColumn(s string) (Column, bool) {
	for _, c := range Columns {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Numeric reports whether the column sorts numerically.
func (c Column) Numeric() bool {
	switch c {
	case ColDayCount, ColSalesPrice, ColAdvance, ColDue:
		return true
	default:
		return false
	}
}

// Query is the full set of view parameters.
type Query struct {
	Search   string
	Tab      string
	Sort     Column
	Desc     bool
	Page     int
	PageSize int
}

// View is the derived, paginated result.
type View struct {
	// Items is the current page.
	Items []model.WorkItem

	// Filtered is every item passing the search and tab filters, sorted.
	Filtered []model.WorkItem

	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// PageIDs returns the ids on the current page.
func (v View) PageIDs() []string {
	return ids(v.Items)
}

// VisibleIDs returns the ids of every filtered item across all pages.
func (v View) VisibleIDs() []string {
	return ids(v.Filtered)
}

func ids(items []model.WorkItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// Compute runs the pipeline. The input slice is not modified.
func Compute(items []model.WorkItem, q Query, now time.Time) View {
	filtered := FilterTab(Search(items, q.Search), q.Tab)
	if q.Sort != "" {
		Sort(filtered, q.Sort, q.Desc, now)
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	start, end, page, pages := Paginate(len(filtered), q.Page, size)

	return View{
		Items:      filtered[start:end],
		Filtered:   filtered,
		Total:      len(filtered),
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
	}
}

// Search keeps items whose customer name, tracking number, passport
// number, mobile number or work type contains term, case-insensitively.
// An empty term keeps everything. The result is always a fresh slice.
func Search(items []model.WorkItem, term string) []model.WorkItem {
	if term == "" {
		return slices.Clone(items)
	}
	needle := strings.ToLower(term)

	out := make([]model.WorkItem, 0, len(items))
	for _, it := range items {
		if matches(it, needle) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it model.WorkItem, needle string) bool {
	for _, field := range []string{
		it.CustomerName,
		it.TrackingNumber,
		it.PassportNumber,
		it.MobileWhatsappNumber,
		it.WorkOfType,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FilterTab applies the lifecycle rules of a tab. Trashed items show only
// under Trash; archived ones only under Archived; any other tab shows
// active items, narrowed to one status when the tab names it.
func FilterTab(items []model.WorkItem, tab string) []model.WorkItem {
	out := make([]model.WorkItem, 0, len(items))
	for _, it := range items {
		if inTab(it, tab) {
			out = append(out, it)
		}
	}
	return out
}

func inTab(it model.WorkItem, tab string) bool {
	switch tab {
	case TabTrash:
		return it.IsTrashed
	case TabArchived:
		return it.IsArchived && !it.IsTrashed
	case "", TabAll:
		return !it.IsArchived && !it.IsTrashed
	default:
		return !it.IsArchived && !it.IsTrashed && it.Status == tab
	}
}

// Sort orders items in place by col. The sort is stable and missing
// values go last in either direction.
func Sort(items []model.WorkItem, col Column, desc bool, now time.Time) {
	coll := collate.New(language.English, collate.IgnoreCase)

	slices.SortStableFunc(items, func(a, b model.WorkItem) int {
		ka, kb := sortKey(a, col, now), sortKey(b, col, now)
		switch {
		case ka.null && kb.null:
			return 0
		case ka.null:
			return 1
		case kb.null:
			return -1
		}

		var c int
		switch {
		case ka.isTime:
			c = ka.t.Compare(kb.t)
		case col.Numeric():
			c = cmp.Compare(ka.num, kb.num)
		default:
			c = coll.CompareString(ka.str, kb.str)
		}
		if desc {
			c = -c
		}
		return c
	})
}

type key struct {
	null   bool
	isTime bool
	t      time.Time
	num    float64
	str    string
}

func sortKey(it model.WorkItem, col Column, now time.Time) key {
	switch col {
	case ColDateOfWork:
		return key{null: !it.HasDate(), isTime: true, t: it.DateOfWork}
	case ColTrashedAt:
		if it.TrashedAt == nil {
			return key{null: true}
		}
		return key{isTime: true, t: *it.TrashedAt}
	case ColDayCount:
		return key{null: !it.HasDate(), num: float64(it.DayCount(now))}
	case ColSalesPrice:
		return key{num: it.SalesPrice}
	case ColAdvance:
		return key{num: it.Advance}
	case ColDue:
		return key{num: it.Due}
	case ColWorkBy:
		return key{str: it.WorkBy}
	case ColWorkOfType:
		return key{str: it.WorkOfType}
	case ColStatus:
		return key{str: it.Status}
	case ColCustomerName:
		return key{str: it.CustomerName}
	case ColPassportNumber:
		return key{str: it.PassportNumber}
	case ColTrackingNumber:
		return key{str: it.TrackingNumber}
	case ColMobileNumber:
		return key{str: it.MobileWhatsappNumber}
	default:
		return key{null: true}
	}
}

// Paginate clamps page to [1, totalPages] and returns the slice bounds of
// that page. An empty set has one (empty) page.
func Paginate(n, page, size int) (start, end, clamped, totalPages int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages = (n + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	clamped = page
	if clamped < 1 {
		clamped = 1
	}
	if clamped > totalPages {
		clamped = totalPages
	}

	start = (clamped - 1) * size
	if start > n {
		start = n
	}
	end = start + size
	if end > n {
		end = n
	}
	return start, end, clamped, totalPages
}
