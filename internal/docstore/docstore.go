// Package docstore defines the document-collection contract the dashboard
// syncs against and a SQLite implementation of it.
//
// Documents live at "collection/id" paths and carry a JSON field map.
// Subscriptions deliver full, ordered snapshots of a collection; writes
// are single-document or batched, and batches apply atomically.
package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Fields is a document body.
type Fields = map[string]any

// Document is a single stored document.
type Document struct {
	ID         string
	Collection string
	Fields     Fields
	CreateTime time.Time
	UpdateTime time.Time
}

// Path returns the document's "collection/id" path.
func (d Document) Path() string {
	return JoinPath(d.Collection, d.ID)
}

// Snapshot is the full content of a collection at a point in time.
type Snapshot struct {
	Collection string
	Docs       []Document
	ReadTime   time.Time
}

// OrderSpec orders snapshot documents by a top-level field.
type OrderSpec struct {
	Field string
	Desc  bool
}

// Store is the remote sync contract consumed by the rest of the module.
type Store interface {
	// Subscribe streams full snapshots of collection, starting with the
	// current content. The subscription ends when ctx is done or Stop is called.
	Subscribe(ctx context.Context, collection string, order OrderSpec) (*Subscription, error)

	// GetDocument returns ErrNotFound when no document exists at path.
	GetDocument(ctx context.Context, path string) (*Document, error)

	// SetDocument creates or fully replaces the document at path.
	SetDocument(ctx context.Context, path string, fields Fields) error

	// UpdateDocument merges updates into an existing document. ArrayUnion
	// and DeleteField sentinels are honoured.
	UpdateDocument(ctx context.Context, path string, updates Fields) error

	// AddDocument creates a document with a generated id.
	AddDocument(ctx context.Context, collection string, fields Fields) (string, error)

	// DeleteDocument removes the document at path. Deleting a missing
	// document is not an error.
	DeleteDocument(ctx context.Context, path string) error

	// Batch starts a set of writes committed atomically.
	Batch() Batch
}

// Batch queues writes and applies them in one atomic commit.
type Batch interface {
	Set(path string, fields Fields)
	Update(path string, updates Fields)

	// Add queues a create with a generated id and returns that id.
	Add(collection string, fields Fields) string

	Delete(path string)
	Commit(ctx context.Context) error
}

// JoinPath builds a "collection/id" document path.
func JoinPath(collection, id string) string {
	return collection + "/" + id
}

// SplitPath parses a "collection/id" document path.
func SplitPath(path string) (collection, id string, err error) {
	collection, id, ok := strings.Cut(path, "/")
	if !ok || collection == "" || id == "" || strings.Contains(id, "/") {
		return "", "", fmt.Errorf("invalid document path %q", path)
	}
	return collection, id, nil
}
