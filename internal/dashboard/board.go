// Package dashboard holds the query parameters and selection behind the
// work item table, and recomputes the visible view from a snapshot.
package dashboard

import (
	"slices"
	"time"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/selection"
	"github.com/nhle/workdesk/internal/view"
)

// PageSizes are the selectable page sizes.
var PageSizes = []int{10, 25, 50, 100}

// Board is the dashboard controller. It is not safe for concurrent use.
type Board struct {
	query    view.Query
	selected *selection.Set
	current  view.View
}

// NewBoard returns a board on the All Items tab, sorted by date of work
// newest first.
func NewBoard(pageSize int) *Board {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	return &Board{
		query: view.Query{
			Tab:      view.TabAll,
			Sort:     view.ColDateOfWork,
			Desc:     true,
			Page:     1,
			PageSize: pageSize,
		},
		selected: selection.New(),
	}
}

// Query returns the current query parameters.
func (b *Board) Query() view.Query { return b.query }

// View returns the view from the last Refresh.
func (b *Board) View() view.View { return b.current }

// Selection returns the live selection.
func (b *Board) Selection() *selection.Set { return b.selected }

// SetQuery replaces every query parameter at once.
func (b *Board) SetQuery(q view.Query) {
	if q.Tab == "" {
		q.Tab = view.TabAll
	}
	if q.PageSize <= 0 {
		q.PageSize = b.query.PageSize
	}
	b.query = q
}

// SetSearch changes the search term and returns to the first page.
func (b *Board) SetSearch(term string) {
	if term == b.query.Search {
		return
	}
	b.query.Search = term
	b.query.Page = 1
}

// SetTab switches tabs and returns to the first page.
func (b *Board) SetTab(tab string) {
	if tab == b.query.Tab {
		return
	}
	b.query.Tab = tab
	b.query.Page = 1
}

// SortBy sorts by col. Choosing the active column flips its direction; a
// new column starts ascending.
func (b *Board) SortBy(col view.Column) {
	if col == b.query.Sort {
		b.query.Desc = !b.query.Desc
		return
	}
	b.query.Sort = col
	b.query.Desc = false
}

// CycleSort moves to the next sortable column, ascending.
func (b *Board) CycleSort() {
	i := slices.Index(view.Columns, b.query.Sort)
	b.SortBy(view.Columns[(i+1)%len(view.Columns)])
}

// FlipSort reverses the sort direction.
func (b *Board) FlipSort() {
	b.query.Desc = !b.query.Desc
}

// SetPage moves to page n. Refresh clamps out of range pages.
func (b *Board) SetPage(n int) {
	b.query.Page = n
}

// NextPage and PrevPage step relative to the last computed page.
func (b *Board) NextPage() {
	if b.current.TotalPages == 0 || b.current.Page < b.current.TotalPages {
		b.query.Page = b.current.Page + 1
	}
}

func (b *Board) PrevPage() {
	if b.current.Page > 1 {
		b.query.Page = b.current.Page - 1
	}
}

// SetPageSize changes the page size and returns to the first page.
func (b *Board) SetPageSize(n int) {
	if n <= 0 || n == b.query.PageSize {
		return
	}
	b.query.PageSize = n
	b.query.Page = 1
}

// StepPageSize moves to the next (delta > 0) or previous selectable size.
func (b *Board) StepPageSize(delta int) {
	i := slices.Index(PageSizes, b.query.PageSize)
	if i < 0 {
		b.SetPageSize(model.DefaultPageSize)
		return
	}
	i += delta
	if i < 0 || i >= len(PageSizes) {
		return
	}
	b.SetPageSize(PageSizes[i])
}

// Refresh recomputes the view from items, stores the clamped page and
// drops selected ids that are no longer in the filtered set.
func (b *Board) Refresh(items []model.WorkItem, now time.Time) view.View {
	b.current = view.Compute(items, b.query, now)
	b.query.Page = b.current.Page
	b.selected.Reconcile(b.current.VisibleIDs())
	return b.current
}

// PageHeader derives the select-all checkbox state for the current page.
func (b *Board) PageHeader() selection.HeaderState {
	return b.selected.HeaderState(b.current.PageIDs())
}

// ToggleAllOnPage toggles selection of every item on the current page.
func (b *Board) ToggleAllOnPage() {
	b.selected.ToggleAllOnPage(b.current.PageIDs())
}
