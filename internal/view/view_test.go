package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/nhle/workdesk/internal/model"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

func item(id string, mut func(*model.WorkItem)) model.WorkItem {
	w := model.WorkItem{
		ID:           id,
		DateOfWork:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		WorkOfType:   "Visa",
		Status:       model.StatusApproved,
		CustomerName: "Customer " + id,
	}
	if mut != nil {
		mut(&w)
	}
	return w
}

func idsOf(items []model.WorkItem) []string {
	return ids(items)
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchMatchesOnlyNamedFields(t *testing.T) {
	items := []model.WorkItem{
		item("1", func(w *model.WorkItem) { w.CustomerName = "Bob SMITH" }),
		item("2", func(w *model.WorkItem) { w.TrackingNumber = "TRK-smith" }),
		item("3", func(w *model.WorkItem) { w.PassportNumber = "P-Smith-9" }),
		item("4", func(w *model.WorkItem) { w.MobileWhatsappNumber = "smith+1555" }),
		item("5", func(w *model.WorkItem) { w.WorkOfType = "Smithing" }),
		item("6", func(w *model.WorkItem) { w.WorkBy = "Smith" }),
	}

	got := idsOf(Search(items, "SMITH"))
	want := []string{"1", "2", "3", "4", "5"}
	if !equalIDs(got, want) {
		t.Fatalf("Search ids = %v, want %v", got, want)
	}
}

func TestSearchEmptyTermKeepsAll(t *testing.T) {
	items := []model.WorkItem{item("1", nil), item("2", nil)}
	if got := Search(items, ""); len(got) != 2 {
		t.Fatalf("Search(\"\") len = %d, want 2", len(got))
	}
}

func TestTrashedOnlyUnderTrash(t *testing.T) {
	trashed := item("t", func(w *model.WorkItem) {
		w.IsTrashed = true
		w.IsArchived = true
	})
	tabs := Tabs(model.DefaultOptions().Statuses)
	for _, tab := range tabs {
		got := FilterTab([]model.WorkItem{trashed}, tab)
		if tab == TabTrash {
			if len(got) != 1 {
				t.Errorf("tab %q: trashed item missing", tab)
			}
			continue
		}
		if len(got) != 0 {
			t.Errorf("tab %q: trashed item visible", tab)
		}
	}
}

func TestArchivedHiddenOutsideArchivedTab(t *testing.T) {
	archived := item("a", func(w *model.WorkItem) { w.IsArchived = true })
	for _, tab := range Tabs(model.DefaultOptions().Statuses) {
		got := FilterTab([]model.WorkItem{archived}, tab)
		want := 0
		if tab == TabArchived {
			want = 1
		}
		if len(got) != want {
			t.Errorf("tab %q: got %d items, want %d", tab, len(got), want)
		}
	}
}

func TestStatusTabNarrowsActiveItems(t *testing.T) {
	items := []model.WorkItem{
		item("1", func(w *model.WorkItem) { w.Status = model.StatusRejected }),
		item("2", nil),
		item("3", func(w *model.WorkItem) {
			w.Status = model.StatusRejected
			w.IsArchived = true
		}),
	}
	got := idsOf(FilterTab(items, model.StatusRejected))
	if !equalIDs(got, []string{"1"}) {
		t.Fatalf("Rejected tab = %v, want [1]", got)
	}
	got = idsOf(FilterTab(items, TabAll))
	if !equalIDs(got, []string{"1", "2"}) {
		t.Fatalf("All tab = %v, want [1 2]", got)
	}
}

func TestTabsOrder(t *testing.T) {
	got := Tabs(model.DefaultOptions().Statuses)
	want := []string{
		TabAll,
		model.StatusUnderProcessing, model.StatusApproved, model.StatusRejected,
		model.StatusWaitingDelivery, model.StatusPaidOnly,
		TabArchived, TabTrash,
	}
	if !equalIDs(got, want) {
		t.Fatalf("Tabs = %v, want %v", got, want)
	}
}

func TestSortNumericStable(t *testing.T) {
	items := []model.WorkItem{
		item("a", func(w *model.WorkItem) { w.SalesPrice = 200 }),
		item("b", func(w *model.WorkItem) { w.SalesPrice = 100 }),
		item("c", func(w *model.WorkItem) { w.SalesPrice = 200 }),
		item("d", func(w *model.WorkItem) { w.SalesPrice = 100 }),
	}

	Sort(items, ColSalesPrice, false, testNow)
	if got := idsOf(items); !equalIDs(got, []string{"b", "d", "a", "c"}) {
		t.Fatalf("ascending = %v", got)
	}

	Sort(items, ColSalesPrice, true, testNow)
	if got := idsOf(items); !equalIDs(got, []string{"a", "c", "b", "d"}) {
		t.Fatalf("descending = %v", got)
	}
}

func TestSortTextCaseInsensitive(t *testing.T) {
	items := []model.WorkItem{
		item("1", func(w *model.WorkItem) { w.CustomerName = "charlie" }),
		item("2", func(w *model.WorkItem) { w.CustomerName = "Bravo" }),
		item("3", func(w *model.WorkItem) { w.CustomerName = "alpha" }),
	}
	Sort(items, ColCustomerName, false, testNow)
	if got := idsOf(items); !equalIDs(got, []string{"3", "2", "1"}) {
		t.Fatalf("text sort = %v, want [3 2 1]", got)
	}
}

func TestSortMissingValuesLast(t *testing.T) {
	items := []model.WorkItem{
		item("none", func(w *model.WorkItem) { w.DateOfWork = time.Time{} }),
		item("old", func(w *model.WorkItem) { w.DateOfWork = time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local) }),
		item("new", func(w *model.WorkItem) { w.DateOfWork = time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local) }),
	}

	for _, desc := range []bool{false, true} {
		for _, col := range []Column{ColDateOfWork, ColDayCount} {
			list := append([]model.WorkItem(nil), items...)
			Sort(list, col, desc, testNow)
			if list[len(list)-1].ID != "none" {
				t.Errorf("col %s desc=%v: last = %s, want none", col, desc, list[len(list)-1].ID)
			}
		}
	}
}

func TestSortDayCount(t *testing.T) {
	items := []model.WorkItem{
		item("recent", func(w *model.WorkItem) { w.DateOfWork = time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local) }),
		item("older", func(w *model.WorkItem) { w.DateOfWork = time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local) }),
	}
	Sort(items, ColDayCount, true, testNow)
	if items[0].ID != "older" {
		t.Fatalf("first by dayCount desc = %s, want older", items[0].ID)
	}
}

func TestPaginationSizes(t *testing.T) {
	cases := []struct {
		n, size       int
		first, last   int
		wantLastPages int
	}{
		{n: 0, size: 25, first: 0, last: 0, wantLastPages: 1},
		{n: 10, size: 25, first: 10, last: 10, wantLastPages: 1},
		{n: 25, size: 25, first: 25, last: 25, wantLastPages: 1},
		{n: 26, size: 25, first: 25, last: 1, wantLastPages: 2},
		{n: 50, size: 10, first: 10, last: 10, wantLastPages: 5},
		{n: 53, size: 10, first: 10, last: 3, wantLastPages: 6},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("n=%d/size=%d", tc.n, tc.size), func(t *testing.T) {
			s, e, _, pages := Paginate(tc.n, 1, tc.size)
			if e-s != tc.first {
				t.Errorf("first page len = %d, want %d", e-s, tc.first)
			}
			if pages != tc.wantLastPages {
				t.Errorf("total pages = %d, want %d", pages, tc.wantLastPages)
			}
			s, e, _, _ = Paginate(tc.n, pages, tc.size)
			if e-s != tc.last {
				t.Errorf("last page len = %d, want %d", e-s, tc.last)
			}
		})
	}
}

func TestComputeClampsPage(t *testing.T) {
	var items []model.WorkItem
	for i := range 30 {
		items = append(items, item(fmt.Sprintf("%02d", i), nil))
	}

	v := Compute(items, Query{Tab: TabAll, Page: 9, PageSize: 10}, testNow)
	if v.Page != 3 || v.TotalPages != 3 || len(v.Items) != 10 {
		t.Fatalf("page=%d pages=%d len=%d, want 3/3/10", v.Page, v.TotalPages, len(v.Items))
	}

	v = Compute(items, Query{Tab: TabAll, Page: 3, PageSize: 10, Search: "Customer 0"}, testNow)
	if v.Page != 1 || v.Total != 10 {
		t.Fatalf("after shrink page=%d total=%d, want 1/10", v.Page, v.Total)
	}

	v = Compute(items, Query{Tab: TabAll, Page: 0}, testNow)
	if v.Page != 1 || v.PageSize != DefaultPageSize || len(v.Items) != 25 {
		t.Fatalf("defaults page=%d size=%d len=%d", v.Page, v.PageSize, len(v.Items))
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	items := []model.WorkItem{
		item("b", func(w *model.WorkItem) { w.CustomerName = "b" }),
		item("a", func(w *model.WorkItem) { w.CustomerName = "a" }),
	}
	Compute(items, Query{Sort: ColCustomerName}, testNow)
	if items[0].ID != "b" {
		t.Fatal("Compute reordered its input")
	}
}

func TestParseColumn(t *testing.T) {
	if c, ok := ParseColumn("due"); !ok || c != ColDue {
		t.Fatalf("ParseColumn(due) = %q, %v", c, ok)
	}
	if _, ok := ParseColumn("nope"); ok {
		t.Fatal("ParseColumn accepted unknown column")
	}
}
