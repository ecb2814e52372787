package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/workdesk/internal/docstore"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T, opts ...docstore.Option) *docstore.SQLiteStore {
	t.Helper()

	s, err := docstore.NewSQLiteStore(":memory:", opts...)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NextSnapshot waits for the next snapshot on sub or fails the test.
func NextSnapshot(t *testing.T, sub *docstore.Subscription) docstore.Snapshot {
	t.Helper()

	select {
	case snap, ok := <-sub.Snapshots():
		if !ok {
			t.Fatalf("subscription closed")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for snapshot")
	}
	return docstore.Snapshot{}
}

// Eventually polls cond until it holds or the deadline passes.
func Eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met: %s", msg)
}

// FailingStore wraps a Store and fails writes while Fail is set.
type FailingStore struct {
	docstore.Store
	Err  error
	Fail bool
}

func (f *FailingStore) SetDocument(ctx context.Context, path string, fields docstore.Fields) error {
	if f.Fail {
		return f.Err
	}
	return f.Store.SetDocument(ctx, path, fields)
}

func (f *FailingStore) UpdateDocument(ctx context.Context, path string, updates docstore.Fields) error {
	if f.Fail {
		return f.Err
	}
	return f.Store.UpdateDocument(ctx, path, updates)
}

func (f *FailingStore) AddDocument(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	if f.Fail {
		return "", f.Err
	}
	return f.Store.AddDocument(ctx, collection, fields)
}

func (f *FailingStore) DeleteDocument(ctx context.Context, path string) error {
	if f.Fail {
		return f.Err
	}
	return f.Store.DeleteDocument(ctx, path)
}

func (f *FailingStore) Batch() docstore.Batch {
	return &failingBatch{Batch: f.Store.Batch(), owner: f}
}

type failingBatch struct {
	docstore.Batch
	owner *FailingStore
}

func (b *failingBatch) Commit(ctx context.Context) error {
	if b.owner.Fail {
		return b.owner.Err
	}
	return b.Batch.Commit(ctx)
}
