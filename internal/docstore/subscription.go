package docstore

import (
	"context"
	"fmt"
	gosync "sync"
)

// Subscription is a live stream of collection snapshots. Delivery is
// latest-wins: a reader that falls behind skips straight to the newest
// snapshot.
type Subscription struct {
	store      *SQLiteStore
	collection string
	order      OrderSpec

	ch       chan Snapshot
	done     chan struct{}
	stopOnce gosync.Once
	closed   bool
}

// Snapshots returns the snapshot channel. It is closed when the
// subscription ends.
func (sub *Subscription) Snapshots() <-chan Snapshot {
	return sub.ch
}

// Done is closed once the subscription is stopped or its store is closed.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

// Stop ends the subscription. It is safe to call more than once.
func (sub *Subscription) Stop() {
	sub.stopOnce.Do(func() {
		close(sub.done)
		sub.store.unsubscribe(sub)
	})
}

// release ends the subscription for a closing store, which has already
// dropped it from the subscriber set.
func (sub *Subscription) release() {
	sub.stopOnce.Do(func() {
		close(sub.done)
	})
}

// closeLocked closes the snapshot channel. The caller holds pubMu.
func (sub *Subscription) closeLocked() {
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.ch)
}

// deliverLocked replaces any undelivered snapshot with snap. The caller
// holds pubMu, which makes it the only sender.
func (sub *Subscription) deliverLocked(snap Snapshot) {
	if sub.closed {
		return
	}
	select {
	case <-sub.ch:
	default:
	}
	sub.ch <- snap
}

// Subscribe registers a subscription and delivers the current snapshot.
func (s *SQLiteStore) Subscribe(ctx context.Context, collection string, order OrderSpec) (*Subscription, error) {
	if collection == "" {
		return nil, fmt.Errorf("subscribing: empty collection name")
	}
	if order.Field != "" && !fieldNamePattern.MatchString(order.Field) {
		return nil, fmt.Errorf("subscribing to %s: invalid order field %q", collection, order.Field)
	}

	sub := &Subscription{
		store:      s,
		collection: collection,
		order:      order,
		ch:         make(chan Snapshot, 1),
		done:       make(chan struct{}),
	}

	s.pubMu.Lock()
	snap, err := s.querySnapshot(ctx, collection, order)
	if err != nil {
		s.pubMu.Unlock()
		return nil, err
	}
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[*Subscription]struct{})
	}
	s.subs[collection][sub] = struct{}{}
	sub.deliverLocked(snap)
	s.pubMu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			sub.Stop()
		case <-sub.done:
		}
	}()

	return sub, nil
}

func (s *SQLiteStore) unsubscribe(sub *Subscription) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	if set, ok := s.subs[sub.collection]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(s.subs, sub.collection)
		}
	}
	sub.closeLocked()
}

// publish sends a fresh snapshot to every subscriber of the given
// collections. A failed read skips delivery; the next write retries.
func (s *SQLiteStore) publish(ctx context.Context, collections []string) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	// Snapshots are read after the writer's context may be gone.
	ctx = context.WithoutCancel(ctx)

	for _, collection := range collections {
		set := s.subs[collection]
		if len(set) == 0 {
			continue
		}

		byOrder := make(map[OrderSpec]Snapshot)
		for sub := range set {
			snap, ok := byOrder[sub.order]
			if !ok {
				var err error
				snap, err = s.querySnapshot(ctx, collection, sub.order)
				if err != nil {
					continue
				}
				byOrder[sub.order] = snap
			}
			sub.deliverLocked(snap)
		}
	}
}
