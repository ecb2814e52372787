// Package sync keeps the process-wide state in step with the document
// store for the lifetime of an authenticated session.
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/logging"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/options"
	"github.com/nhle/workdesk/internal/state"
)

// StreamState is the state of one live subscription.
type StreamState int

const (
	StreamWaiting StreamState = iota
	StreamLive
	StreamStopped
)

func (s StreamState) String() string {
	switch s {
	case StreamLive:
		return "live"
	case StreamStopped:
		return "stopped"
	default:
		return "waiting"
	}
}

// StreamStatus reports on a single collection subscription.
type StreamStatus struct {
	Collection   string
	State        StreamState
	LastSnapshot time.Time
	Documents    int
}

// stream binds a collection subscription to the function that folds its
// snapshots into state.
type stream struct {
	collection string
	order      docstore.OrderSpec
	apply      func(docstore.Snapshot)
}

// Session owns the item, settings and reminder subscriptions.
type Session struct {
	docs     docstore.Store
	registry *options.Registry
	state    *state.Store
	log      logging.Logger

	mu      gosync.Mutex
	running bool
	cancel  context.CancelFunc
	subs    []*docstore.Subscription
	wg      gosync.WaitGroup

	statusMu gosync.Mutex
	statuses map[string]*StreamStatus
}

// New creates a stopped session.
func New(docs docstore.Store, registry *options.Registry, st *state.Store, log logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	return &Session{
		docs:     docs,
		registry: registry,
		state:    st,
		log:      log.With("component", "sync"),
		statuses: make(map[string]*StreamStatus),
	}
}

func (s *Session) streams() []stream {
	return []stream{
		{
			collection: model.WorkItemsCollection,
			order:      docstore.OrderSpec{Field: model.FieldDateOfWork, Desc: true},
			apply:      s.applyItems,
		},
		{
			collection: model.SettingsCollection,
			apply:      s.applySettings,
		},
		{
			collection: model.RemindersCollection,
			order:      docstore.OrderSpec{Field: model.FieldReminderDate},
			apply:      s.applyReminders,
		},
	}
}

// Start creates the options document if needed and opens every
// subscription. Starting a running session does nothing.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if err := s.registry.Ensure(ctx); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	s.state.SetOptions(s.registry.Options())

	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	var subs []*docstore.Subscription
	for _, st := range s.streams() {
		sub, err := s.docs.Subscribe(subCtx, st.collection, st.order)
		if err != nil {
			cancel()
			for _, opened := range subs {
				opened.Stop()
			}
			s.wg.Wait()
			return fmt.Errorf("subscribing to %s: %w", st.collection, err)
		}
		subs = append(subs, sub)
		s.setStatus(st.collection, StreamWaiting, docstore.Snapshot{})

		s.wg.Add(1)
		go s.pump(sub, st)
	}

	s.subs = subs
	s.cancel = cancel
	s.running = true
	s.log.Info("session started")
	return nil
}

// Stop closes every subscription and waits for the pumps to exit.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	for _, sub := range s.subs {
		sub.Stop()
	}
	s.wg.Wait()

	s.subs = nil
	s.running = false
	s.log.Info("session stopped")
}

// Running reports whether the session is started.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Statuses returns the state of every stream.
func (s *Session) Statuses() []StreamStatus {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	out := make([]StreamStatus, 0, len(s.statuses))
	for _, st := range s.streams() {
		if status, ok := s.statuses[st.collection]; ok {
			out = append(out, *status)
		}
	}
	return out
}

// pump folds snapshots into state until the subscription closes.
func (s *Session) pump(sub *docstore.Subscription, st stream) {
	defer s.wg.Done()

	for snap := range sub.Snapshots() {
		st.apply(snap)
		s.setStatus(st.collection, StreamLive, snap)
		s.log.Debug("snapshot applied", "collection", st.collection, "documents", len(snap.Docs))
	}
	s.setStatus(st.collection, StreamStopped, docstore.Snapshot{})
}

func (s *Session) applyItems(snap docstore.Snapshot) {
	items := make([]model.WorkItem, 0, len(snap.Docs))
	for _, doc := range snap.Docs {
		items = append(items, model.WorkItemFromFields(doc.ID, doc.Fields))
	}
	s.state.ReplaceItems(items)
}

func (s *Session) applySettings(snap docstore.Snapshot) {
	for _, doc := range snap.Docs {
		if doc.ID != model.OptionsDocumentID {
			continue
		}
		s.state.SetOptions(s.registry.Apply(doc.Fields))
		return
	}
}

func (s *Session) applyReminders(snap docstore.Snapshot) {
	reminders := make([]model.Reminder, 0, len(snap.Docs))
	for _, doc := range snap.Docs {
		reminders = append(reminders, model.ReminderFromFields(doc.ID, doc.Fields))
	}
	s.state.ReplaceReminders(reminders)
}

func (s *Session) setStatus(collection string, state StreamState, snap docstore.Snapshot) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	status, ok := s.statuses[collection]
	if !ok {
		status = &StreamStatus{Collection: collection}
		s.statuses[collection] = status
	}
	status.State = state
	if state == StreamLive {
		status.LastSnapshot = snap.ReadTime
		status.Documents = len(snap.Docs)
	}
}
