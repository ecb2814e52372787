// Package state holds the process-wide work item, option and reminder
// state that the dashboard reads, and notifies listeners when it changes.
package state

import (
	"slices"
	gosync "sync"

	"github.com/nhle/workdesk/internal/model"
)

// EventKind identifies which part of the state changed.
type EventKind int

const (
	ItemsChanged EventKind = iota
	OptionsChanged
	RemindersChanged
)

// Event announces a state change. Version increases with every change.
type Event struct {
	Kind    EventKind
	Version uint64
}

// Snapshot is a consistent copy of the whole state.
type Snapshot struct {
	Items     []model.WorkItem
	Options   model.Options
	Reminders []model.Reminder
	Version   uint64

	// ItemsLoaded is false until the first item snapshot arrives.
	ItemsLoaded bool
}

// Store is safe for concurrent use. Only subscription pumps write to it.
type Store struct {
	mu          gosync.RWMutex
	items       []model.WorkItem
	byID        map[string]int
	itemsLoaded bool
	options     model.Options
	reminders   []model.Reminder
	version     uint64

	subMu  gosync.Mutex
	subs   map[int]chan Event
	nextID int
}

// New creates a store seeded with the default options so views can render
// before the options document arrives.
func New() *Store {
	return &Store{
		byID:    make(map[string]int),
		options: model.DefaultOptions(),
		subs:    make(map[int]chan Event),
	}
}

// ReplaceItems swaps in a full item snapshot.
func (s *Store) ReplaceItems(items []model.WorkItem) {
	s.mu.Lock()
	s.items = slices.Clone(items)
	s.byID = make(map[string]int, len(items))
	for i, it := range s.items {
		s.byID[it.ID] = i
	}
	s.itemsLoaded = true
	s.version++
	v := s.version
	s.mu.Unlock()

	s.notify(Event{Kind: ItemsChanged, Version: v})
}

// SetOptions replaces the option lists. Callers pass the registry's union.
func (s *Store) SetOptions(o model.Options) {
	s.mu.Lock()
	s.options = model.Options{}.Union(o)
	s.version++
	v := s.version
	s.mu.Unlock()

	s.notify(Event{Kind: OptionsChanged, Version: v})
}

// ReplaceReminders swaps in a full reminder snapshot.
func (s *Store) ReplaceReminders(reminders []model.Reminder) {
	s.mu.Lock()
	s.reminders = slices.Clone(reminders)
	s.version++
	v := s.version
	s.mu.Unlock()

	s.notify(Event{Kind: RemindersChanged, Version: v})
}

// Items returns a copy of the current items.
func (s *Store) Items() []model.WorkItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Item looks up a single item by id.
func (s *Store) Item(id string) (model.WorkItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return model.WorkItem{}, false
	}
	return s.items[i], true
}

// Options returns a copy of the current option lists.
func (s *Store) Options() model.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.Options{}.Union(s.options)
}

// Reminders returns a copy of the current reminders.
func (s *Store) Reminders() []model.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reminders)
}

// Snapshot returns a consistent copy of everything.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Items:       slices.Clone(s.items),
		Options:     model.Options{}.Union(s.options),
		Reminders:   slices.Clone(s.reminders),
		Version:     s.version,
		ItemsLoaded: s.itemsLoaded,
	}
}

// Version returns the current change counter.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe returns a channel of change events and a cancel func. Events
// coalesce: a slow listener sees only the most recent one.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once gosync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			close(ch)
			s.subMu.Unlock()
		})
	}
	return ch, cancel
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- ev
	}
}
