package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db       *sqlx.DB
	readOnly bool
	now      func() time.Time

	// pubMu serializes snapshot delivery so each subscriber sees
	// monotonically newer snapshots.
	pubMu gosync.Mutex
	subs  map[string]map[*Subscription]struct{}
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithReadOnly makes every write fail with a PermissionError.
func WithReadOnly(readOnly bool) Option {
	return func(s *SQLiteStore) { s.readOnly = readOnly }
}

// WithClock overrides the clock used for document timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:   db,
		now:  time.Now,
		subs: make(map[string]map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close ends every subscription and closes the database.
func (s *SQLiteStore) Close() error {
	s.pubMu.Lock()
	var open []*Subscription
	for _, set := range s.subs {
		for sub := range set {
			sub.closeLocked()
			open = append(open, sub)
		}
	}
	s.subs = make(map[string]map[*Subscription]struct{})
	s.pubMu.Unlock()

	// Outside pubMu: a concurrent Stop holds stopOnce while it waits for pubMu.
	for _, sub := range open {
		sub.release()
	}

	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// docRow is the documents table row shape.
type docRow struct {
	Collection string    `db:"collection"`
	ID         string    `db:"id"`
	Fields     string    `db:"fields"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r docRow) document() (Document, error) {
	fields := Fields{}
	if r.Fields != "" {
		if err := json.Unmarshal([]byte(r.Fields), &fields); err != nil {
			return Document{}, fmt.Errorf("decoding document %s/%s: %w", r.Collection, r.ID, err)
		}
	}
	return Document{
		ID:         r.ID,
		Collection: r.Collection,
		Fields:     fields,
		CreateTime: r.CreatedAt,
		UpdateTime: r.UpdatedAt,
	}, nil
}

// GetDocument retrieves a single document by path.
func (s *SQLiteStore) GetDocument(ctx context.Context, path string) (*Document, error) {
	collection, id, err := SplitPath(path)
	if err != nil {
		return nil, err
	}

	var row docRow
	err = s.db.GetContext(ctx, &row,
		"SELECT collection, id, fields, created_at, updated_at FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", path, err)
	}

	doc, err := row.document()
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SetDocument creates or replaces the document at path.
func (s *SQLiteStore) SetDocument(ctx context.Context, path string, fields Fields) error {
	b := s.Batch()
	b.Set(path, fields)
	return b.Commit(ctx)
}

// UpdateDocument merges updates into the existing document at path.
func (s *SQLiteStore) UpdateDocument(ctx context.Context, path string, updates Fields) error {
	b := s.Batch()
	b.Update(path, updates)
	return b.Commit(ctx)
}

// AddDocument creates a new document with a generated id.
func (s *SQLiteStore) AddDocument(ctx context.Context, collection string, fields Fields) (string, error) {
	b := s.Batch()
	id := b.Add(collection, fields)
	if err := b.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// DeleteDocument removes the document at path.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, path string) error {
	b := s.Batch()
	b.Delete(path)
	return b.Commit(ctx)
}

// Batch starts an atomic write batch.
func (s *SQLiteStore) Batch() Batch {
	return &sqliteBatch{store: s}
}

type opKind string

const (
	opSet    opKind = "set"
	opUpdate opKind = "update"
	opAdd    opKind = "add"
	opDelete opKind = "delete"
)

type writeOp struct {
	kind   opKind
	path   string
	fields Fields
}

type sqliteBatch struct {
	store *SQLiteStore
	ops   []writeOp
}

func (b *sqliteBatch) Set(path string, fields Fields) {
	b.ops = append(b.ops, writeOp{kind: opSet, path: path, fields: fields})
}

func (b *sqliteBatch) Update(path string, updates Fields) {
	b.ops = append(b.ops, writeOp{kind: opUpdate, path: path, fields: updates})
}

func (b *sqliteBatch) Add(collection string, fields Fields) string {
	id := uuid.New().String()
	b.ops = append(b.ops, writeOp{kind: opAdd, path: JoinPath(collection, id), fields: fields})
	return id
}

func (b *sqliteBatch) Delete(path string) {
	b.ops = append(b.ops, writeOp{kind: opDelete, path: path})
}

// Commit applies every queued write in one transaction, then notifies
// subscribers of the touched collections.
func (b *sqliteBatch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}
	touched, err := b.store.commit(ctx, b.ops)
	if err != nil {
		return err
	}
	b.ops = nil
	b.store.publish(ctx, touched)
	return nil
}

func (s *SQLiteStore) commit(ctx context.Context, ops []writeOp) ([]string, error) {
	if s.readOnly {
		return nil, &PermissionError{Op: string(ops[0].kind), Path: ops[0].path, Message: "store is read-only"}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, classifyWriteError("begin", "", fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	now := s.now().UTC()
	seen := make(map[string]bool)
	var touched []string

	for _, op := range ops {
		collection, id, err := SplitPath(op.path)
		if err != nil {
			return nil, err
		}
		if err := applyOp(ctx, tx, op, collection, id, now); err != nil {
			return nil, classifyWriteError(string(op.kind), op.path, err)
		}
		if !seen[collection] {
			seen[collection] = true
			touched = append(touched, collection)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyWriteError("commit", "", fmt.Errorf("committing batch: %w", err))
	}
	return touched, nil
}

func applyOp(ctx context.Context, tx *sqlx.Tx, op writeOp, collection, id string, now time.Time) error {
	switch op.kind {
	case opSet, opAdd:
		body, err := json.Marshal(resolveSentinels(op.fields))
		if err != nil {
			return fmt.Errorf("encoding %s: %w", op.path, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (collection, id, fields, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(collection, id) DO UPDATE SET
				fields = excluded.fields,
				updated_at = excluded.updated_at`,
			collection, id, string(body), now, now,
		)
		if err != nil {
			return fmt.Errorf("writing %s: %w", op.path, err)
		}

	case opUpdate:
		var raw string
		err := tx.GetContext(ctx, &raw,
			"SELECT fields FROM documents WHERE collection = ? AND id = ?", collection, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("updating %s: %w", op.path, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", op.path, err)
		}

		current := Fields{}
		if err := json.Unmarshal([]byte(raw), &current); err != nil {
			return fmt.Errorf("decoding %s: %w", op.path, err)
		}
		body, err := json.Marshal(applyUpdates(current, op.fields))
		if err != nil {
			return fmt.Errorf("encoding %s: %w", op.path, err)
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE documents SET fields = ?, updated_at = ? WHERE collection = ? AND id = ?",
			string(body), now, collection, id,
		)
		if err != nil {
			return fmt.Errorf("updating %s: %w", op.path, err)
		}

	case opDelete:
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM documents WHERE collection = ? AND id = ?", collection, id); err != nil {
			return fmt.Errorf("deleting %s: %w", op.path, err)
		}

	default:
		return fmt.Errorf("unknown write %q", op.kind)
	}
	return nil
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// querySnapshot loads every document in collection in the requested order.
func (s *SQLiteStore) querySnapshot(ctx context.Context, collection string, order OrderSpec) (Snapshot, error) {
	query := "SELECT collection, id, fields, created_at, updated_at FROM documents WHERE collection = ?"
	args := []any{collection}

	if order.Field != "" {
		direction := "ASC"
		if order.Desc {
			direction = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY json_extract(fields, ?) %s, id ASC", direction)
		args = append(args, "$."+order.Field)
	} else {
		query += " ORDER BY id ASC"
	}

	var rows []docRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return Snapshot{}, fmt.Errorf("querying %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, r := range rows {
		doc, err := r.document()
		if err != nil {
			return Snapshot{}, err
		}
		docs = append(docs, doc)
	}

	return Snapshot{Collection: collection, Docs: docs, ReadTime: s.now()}, nil
}
