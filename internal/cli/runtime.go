package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/logging"
	"github.com/nhle/workdesk/internal/options"
	"github.com/nhle/workdesk/internal/reminder"
	"github.com/nhle/workdesk/internal/state"
	appsync "github.com/nhle/workdesk/internal/sync"
	"github.com/nhle/workdesk/internal/workitem"
)

// loadTimeout bounds how long one-shot commands wait for the first
// snapshots.
const loadTimeout = 10 * time.Second

// runtime is the wired document store and the services on top of it.
type runtime struct {
	docs      *docstore.SQLiteStore
	registry  *options.Registry
	state     *state.Store
	session   *appsync.Session
	items     *workitem.Service
	reminders *reminder.Service
	log       logging.Logger
}

func openRuntime(a *App, log logging.Logger) (*runtime, error) {
	docs, err := docstore.NewSQLiteStore(a.cfg.Store.Path, docstore.WithReadOnly(a.cfg.Store.ReadOnly))
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", a.cfg.Store.Path, err)
	}

	registry := options.NewRegistry(docs)
	st := state.New()
	return &runtime{
		docs:      docs,
		registry:  registry,
		state:     st,
		session:   appsync.New(docs, registry, st, log),
		items:     workitem.NewService(docs, registry, log),
		reminders: reminder.NewService(docs, log),
		log:       log,
	}, nil
}

// Close stops the session and closes the store.
func (r *runtime) Close() error {
	r.session.Stop()
	return r.docs.Close()
}

// startAndWait starts the session and blocks until every stream has
// delivered its first snapshot.
func (r *runtime) startAndWait(ctx context.Context) error {
	if err := r.session.Start(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if r.live() {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for snapshots: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (r *runtime) live() bool {
	for _, s := range r.session.Statuses() {
		if s.State != appsync.StreamLive {
			return false
		}
	}
	return true
}
