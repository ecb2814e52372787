package docstore_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/tests/testutil"
)

func TestAddGetUpdate(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.AddDocument(ctx, "items", docstore.Fields{"name": "a", "count": 1, "tmp": true})
	if err != nil {
		t.Fatalf("adding document: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	path := docstore.JoinPath("items", id)
	if err := s.UpdateDocument(ctx, path, docstore.Fields{
		"count": 2,
		"tmp":   docstore.DeleteField,
		"tags":  docstore.ArrayUnion("x", "y"),
	}); err != nil {
		t.Fatalf("updating document: %v", err)
	}
	if err := s.UpdateDocument(ctx, path, docstore.Fields{
		"tags": docstore.StringsUnion([]string{"y", "z"}),
	}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	doc, err := s.GetDocument(ctx, path)
	if err != nil {
		t.Fatalf("getting document: %v", err)
	}
	if doc.Fields["count"] != float64(2) || doc.Fields["name"] != "a" {
		t.Errorf("unexpected fields: %v", doc.Fields)
	}
	if _, ok := doc.Fields["tmp"]; ok {
		t.Errorf("expected tmp to be deleted")
	}
	if want := []any{"x", "y", "z"}; !reflect.DeepEqual(doc.Fields["tags"], want) {
		t.Errorf("expected tags %v, got %v", want, doc.Fields["tags"])
	}
}

func TestGetAndUpdateMissing(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if _, err := s.GetDocument(ctx, "items/none"); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateDocument(ctx, "items/none", docstore.Fields{"a": 1}); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if _, err := s.GetDocument(ctx, "bad-path"); err == nil {
		t.Fatalf("expected invalid path error")
	}
}

func TestBatchIsAtomic(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SetDocument(ctx, "items/a", docstore.Fields{"v": 1}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	b := s.Batch()
	b.Update("items/a", docstore.Fields{"v": 2})
	b.Update("items/missing", docstore.Fields{"v": 2})
	if err := b.Commit(ctx); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected batch to fail with ErrNotFound, got %v", err)
	}

	doc, err := s.GetDocument(ctx, "items/a")
	if err != nil {
		t.Fatalf("getting document: %v", err)
	}
	if doc.Fields["v"] != float64(1) {
		t.Fatalf("expected failed batch to leave v=1, got %v", doc.Fields["v"])
	}
}

func TestSubscribeDeliversOrderedSnapshots(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.SetDocument(ctx, "items/a", docstore.Fields{"date": "2024-01-01"}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	sub, err := s.Subscribe(ctx, "items", docstore.OrderSpec{Field: "date", Desc: true})
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer sub.Stop()

	first := testutil.NextSnapshot(t, sub)
	if len(first.Docs) != 1 {
		t.Fatalf("expected initial snapshot of 1 doc, got %d", len(first.Docs))
	}

	b := s.Batch()
	b.Set("items/b", docstore.Fields{"date": "2024-03-01"})
	b.Set("items/c", docstore.Fields{"date": "2024-02-01"})
	b.Set("other/z", docstore.Fields{"date": "2025-01-01"})
	if err := b.Commit(ctx); err != nil {
		t.Fatalf("committing: %v", err)
	}

	snap := testutil.NextSnapshot(t, sub)
	var ids []string
	for _, d := range snap.Docs {
		ids = append(ids, d.ID)
	}
	if want := []string{"b", "c", "a"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected order %v, got %v", want, ids)
	}
}

func TestSubscriptionStopClosesChannel(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := s.Subscribe(ctx, "items", docstore.OrderSpec{})
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	testutil.NextSnapshot(t, sub)

	cancel()
	testutil.Eventually(t, func() bool {
		select {
		case _, ok := <-sub.Snapshots():
			return !ok
		default:
			return false
		}
	}, "subscription channel closed after cancel")
}

func TestCloseEndsOpenSubscriptions(t *testing.T) {
	s, err := docstore.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	sub, err := s.Subscribe(context.Background(), "items", docstore.OrderSpec{})
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	testutil.NextSnapshot(t, sub)

	if err := s.Close(); err != nil {
		t.Fatalf("closing store: %v", err)
	}

	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription still running after Close")
	}
	if _, ok := <-sub.Snapshots(); ok {
		t.Error("snapshot channel open after Close")
	}
	sub.Stop()
}

func TestSubscribeRejectsBadOrderField(t *testing.T) {
	s := testutil.NewTestStore(t)
	if _, err := s.Subscribe(context.Background(), "items", docstore.OrderSpec{Field: "x') --"}); err == nil {
		t.Fatalf("expected invalid order field error")
	}
}

func TestReadOnlyStoreReturnsPermissionError(t *testing.T) {
	s := testutil.NewTestStore(t, docstore.WithReadOnly(true))

	_, err := s.AddDocument(context.Background(), "items", docstore.Fields{"a": 1})
	if !docstore.IsPermissionError(err) {
		t.Fatalf("expected permission error, got %v", err)
	}
}
