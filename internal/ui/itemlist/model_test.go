package itemlist

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/workdesk/internal/dashboard"
	"github.com/nhle/workdesk/internal/keys"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/selection"
	"github.com/nhle/workdesk/internal/view"
	"github.com/nhle/workdesk/internal/workitem"
)

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)

func newList(t *testing.T, n int) (Model, *dashboard.Board) {
	t.Helper()

	items := make([]model.WorkItem, n)
	for i := range items {
		items[i] = model.WorkItem{
			ID:           fmt.Sprintf("w-%02d", i),
			DateOfWork:   now.AddDate(0, 0, -i),
			Status:       model.StatusApproved,
			WorkOfType:   "Visa",
			CustomerName: fmt.Sprintf("Customer %02d", i),
		}
	}

	board := dashboard.NewBoard(5)
	m := New(board, workitem.NewStatusEdits(), keys.DefaultKeyMap(), 120, 30)
	m.SetClock(func() time.Time { return now })
	m.Refresh(items, model.DefaultOptions())
	return m, board
}

func press(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestPagingAndTabReset(t *testing.T) {
	m, board := newList(t, 12)

	m = press(m, "n")
	m = press(m, "n")
	if got := board.Query().Page; got != 3 {
		t.Fatalf("page = %d, want 3", got)
	}
	m = press(m, "n")
	if got := board.Query().Page; got != 3 {
		t.Fatalf("page past the end = %d, want 3", got)
	}

	m = press(m, "l")
	if got := board.Query().Tab; got != model.StatusUnderProcessing {
		t.Fatalf("tab = %q, want %q", got, model.StatusUnderProcessing)
	}
	if got := board.Query().Page; got != 1 {
		t.Errorf("page after tab change = %d, want 1", got)
	}
	if _, ok := m.Highlighted(); ok {
		t.Errorf("approved item visible on the wrong tab")
	}

	m = press(m, "h")
	if got := board.Query().Tab; got != view.TabAll {
		t.Errorf("tab = %q, want %q", got, view.TabAll)
	}
}

func TestSelectionKeys(t *testing.T) {
	m, board := newList(t, 12)

	m = press(m, " ")
	first, _ := m.Highlighted()
	if !board.Selection().Contains(first.ID) {
		t.Fatalf("highlighted row not selected")
	}
	if got := board.PageHeader(); got != selection.HeaderIndeterminate {
		t.Errorf("header = %v, want indeterminate", got)
	}

	m = press(m, "a")
	if got := board.PageHeader(); got != selection.HeaderAll {
		t.Errorf("header = %v, want all", got)
	}
	if got := board.Selection().Len(); got != 5 {
		t.Errorf("selected = %d, want 5", got)
	}

	m = press(m, "n")
	if got := board.PageHeader(); got != selection.HeaderNone {
		t.Errorf("header on next page = %v, want none", got)
	}

	press(m, "u")
	if got := board.Selection().Len(); got != 0 {
		t.Errorf("selected after clear = %d", got)
	}
}

func TestCursorSurvivesRefresh(t *testing.T) {
	m, _ := newList(t, 12)

	got, ok := m.Highlighted()
	if !ok || got.ID != "w-00" {
		t.Fatalf("highlighted after load = %q, %v", got.ID, ok)
	}

	m = press(m, "j")
	m.Refresh(m.items, model.DefaultOptions())
	if got, ok := m.Highlighted(); !ok || got.ID != "w-01" {
		t.Fatalf("highlighted after refresh = %q, %v, want w-01", got.ID, ok)
	}

	// An empty tab has no cursor; coming back lands on a real row.
	m = press(m, "l")
	if _, ok := m.Highlighted(); ok {
		t.Fatalf("row highlighted on an empty tab")
	}
	m = press(m, "h")
	if got, ok := m.Highlighted(); !ok || got.ID != "w-00" {
		t.Errorf("highlighted after returning = %q, %v", got.ID, ok)
	}
}

func TestSearchFiltersWhileTyping(t *testing.T) {
	m, board := newList(t, 12)

	m = press(m, "/")
	if !m.Searching() {
		t.Fatalf("search mode not entered")
	}
	for _, r := range "er 07" {
		m = press(m, string(r))
	}
	if got := board.View().Total; got != 1 {
		t.Fatalf("matches = %d, want 1", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Searching() || board.Query().Search != "" {
		t.Errorf("esc did not clear the search")
	}
	if got := board.View().Total; got != 12 {
		t.Errorf("total after clear = %d, want 12", got)
	}
}

func TestSetTabIgnoresCase(t *testing.T) {
	m, board := newList(t, 1)
	if !m.SetTab("trash") {
		t.Fatalf("SetTab(trash) = false")
	}
	if board.Query().Tab != view.TabTrash {
		t.Errorf("tab = %q", board.Query().Tab)
	}
	if m.SetTab("nowhere") {
		t.Errorf("unknown tab accepted")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{1000, "1,000.00"},
		{1234.5, "1,234.50"},
		{-250, "-250.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
