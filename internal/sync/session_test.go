package sync_test

import (
	"context"
	"testing"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/options"
	"github.com/nhle/workdesk/internal/state"
	"github.com/nhle/workdesk/internal/sync"
	"github.com/nhle/workdesk/tests/testutil"
)

func TestSessionPumpsSnapshotsIntoState(t *testing.T) {
	ctx := context.Background()
	docs := testutil.NewTestStore(t)
	reg := options.NewRegistry(docs)
	st := state.New()
	sess := sync.New(docs, reg, st, nil)

	if err := sess.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer sess.Stop()

	if _, err := docs.GetDocument(ctx, options.DocumentPath); err != nil {
		t.Fatalf("options document not created: %v", err)
	}

	testutil.Eventually(t, func() bool { return st.Snapshot().ItemsLoaded }, "initial item snapshot")

	older := model.WorkItem{DateOfWork: model.ParseDateOfWork("2024-01-01"), CustomerName: "Old", WorkOfType: "Visa"}
	newer := model.WorkItem{DateOfWork: model.ParseDateOfWork("2024-05-01"), CustomerName: "New", WorkOfType: "Visa"}
	for _, w := range []model.WorkItem{older, newer} {
		if _, err := docs.AddDocument(ctx, model.WorkItemsCollection, w.Fields()); err != nil {
			t.Fatalf("AddDocument: %v", err)
		}
	}

	testutil.Eventually(t, func() bool { return len(st.Items()) == 2 }, "two items in state")
	if items := st.Items(); items[0].CustomerName != "New" {
		t.Fatalf("items not ordered newest first: %q", items[0].CustomerName)
	}

	err := docs.UpdateDocument(ctx, options.DocumentPath, docstore.Fields{
		model.FieldWorkTypes: docstore.ArrayUnion("Hajj"),
	})
	if err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	testutil.Eventually(t, func() bool {
		for _, v := range st.Options().WorkTypes {
			if v == "Hajj" {
				return true
			}
		}
		return false
	}, "option union reached state")

	r := model.Reminder{Title: "Call", Date: model.ParseDateOfWork("2024-05-02")}
	if _, err := docs.AddDocument(ctx, model.RemindersCollection, r.Fields()); err != nil {
		t.Fatalf("AddDocument reminder: %v", err)
	}
	testutil.Eventually(t, func() bool { return len(st.Reminders()) == 1 }, "reminder in state")
}

func TestSessionStartIsIdempotentAndStopEndsStreams(t *testing.T) {
	ctx := context.Background()
	docs := testutil.NewTestStore(t)
	sess := sync.New(docs, options.NewRegistry(docs), state.New(), nil)

	if err := sess.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := sess.Start(ctx); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if !sess.Running() {
		t.Fatal("session not running")
	}

	sess.Stop()
	sess.Stop()
	if sess.Running() {
		t.Fatal("session still running after Stop")
	}
	for _, status := range sess.Statuses() {
		if status.State != sync.StreamStopped {
			t.Fatalf("%s state = %v, want stopped", status.Collection, status.State)
		}
	}
}

func TestSessionStartFailsOnReadOnlyStoreWithoutOptions(t *testing.T) {
	docs := testutil.NewTestStore(t, docstore.WithReadOnly(true))
	sess := sync.New(docs, options.NewRegistry(docs), state.New(), nil)

	err := sess.Start(context.Background())
	if !docstore.IsPermissionError(err) {
		t.Fatalf("err = %v, want permission error", err)
	}
	if sess.Running() {
		t.Fatal("session running after failed start")
	}
}
