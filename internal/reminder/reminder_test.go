package reminder_test

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/reminder"
	"github.com/nhle/workdesk/internal/workitem"
	"github.com/nhle/workdesk/tests/testutil"
)

func day(d int) time.Time {
	return time.Date(2024, 4, d, 0, 0, 0, 0, time.Local)
}

func TestReminderLifecycle(t *testing.T) {
	ctx := context.Background()
	docs := testutil.NewTestStore(t)
	svc := reminder.NewService(docs, nil)

	if _, err := svc.Create(ctx, reminder.Input{}); !workitem.IsValidation(err) {
		t.Fatalf("empty create err = %v, want validation", err)
	}

	r, err := svc.Create(ctx, reminder.Input{Title: "Collect passport", Date: day(3), WorkItemID: "w1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Toggle(ctx, r); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	doc, err := docs.GetDocument(ctx, docstore.JoinPath(model.RemindersCollection, r.ID))
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	got := model.ReminderFromFields(doc.ID, doc.Fields)
	if !got.Completed || got.WorkItemID != "w1" {
		t.Fatalf("after toggle = %+v", got)
	}

	if err := svc.Update(ctx, r.ID, reminder.Input{Title: "Return passport", Date: day(4)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	doc, _ = docs.GetDocument(ctx, docstore.JoinPath(model.RemindersCollection, r.ID))
	got = model.ReminderFromFields(doc.ID, doc.Fields)
	if got.Title != "Return passport" || got.WorkItemID != "" || got.Date.Day() != 4 {
		t.Fatalf("after update = %+v", got)
	}

	if err := svc.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := docs.GetDocument(ctx, docstore.JoinPath(model.RemindersCollection, r.ID)); err == nil {
		t.Fatal("reminder still present after delete")
	}
}

func TestFilter(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	list := []model.Reminder{
		{ID: "undated", Title: "Someday"},
		{ID: "late", Title: "Call Bob", Date: day(9)},
		{ID: "done", Title: "Call Ann", Date: day(1), Completed: true},
		{ID: "early-2", Title: "Visa docs", Date: day(2), CreatedAt: created.Add(time.Hour)},
		{ID: "early-1", Title: "Fees", Note: "call the embassy", Date: day(2), CreatedAt: created},
	}

	got := ids(reminder.Filter(list, reminder.Query{}))
	want := []string{"early-1", "early-2", "late", "undated"}
	if !equal(got, want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}

	got = ids(reminder.Filter(list, reminder.Query{Search: "CALL", IncludeCompleted: true}))
	want = []string{"done", "early-1", "late"}
	if !equal(got, want) {
		t.Fatalf("search = %v, want %v", got, want)
	}

	got = ids(reminder.Due(list, day(2).Add(15*time.Hour)))
	want = []string{"early-1", "early-2"}
	if !equal(got, want) {
		t.Fatalf("Due = %v, want %v", got, want)
	}
}

func ids(rs []model.Reminder) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func equal(a, b []string) bool {
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
