package state

import (
	"testing"

	"github.com/nhle/workdesk/internal/model"
)

func TestReplaceItemsNotifies(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe()
	defer cancel()

	s.ReplaceItems([]model.WorkItem{{ID: "a"}, {ID: "b"}})

	ev := <-events
	if ev.Kind != ItemsChanged || ev.Version != 1 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if got, ok := s.Item("b"); !ok || got.ID != "b" {
		t.Fatalf("expected lookup of b, got %+v %v", got, ok)
	}
	if !s.Snapshot().ItemsLoaded {
		t.Fatalf("expected items loaded")
	}
}

func TestEventsCoalesce(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe()
	defer cancel()

	s.ReplaceItems(nil)
	s.SetOptions(model.DefaultOptions())
	s.ReplaceReminders(nil)

	ev := <-events
	if ev.Kind != RemindersChanged || ev.Version != 3 {
		t.Fatalf("expected only the latest event, got %+v", ev)
	}
	select {
	case extra := <-events:
		t.Fatalf("unexpected extra event %+v", extra)
	default:
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s := New()
	s.ReplaceItems([]model.WorkItem{{ID: "a", Status: "x"}})

	items := s.Items()
	items[0].Status = "changed"

	if got, _ := s.Item("a"); got.Status != "x" {
		t.Fatalf("store mutated through returned slice")
	}
}

func TestCancelClosesChannel(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe()
	cancel()
	cancel()

	if _, ok := <-events; ok {
		t.Fatalf("expected closed channel")
	}
	s.ReplaceItems(nil)
}

func TestDefaultOptionsBeforeSnapshot(t *testing.T) {
	s := New()
	if len(s.Options().Statuses) == 0 {
		t.Fatalf("expected default statuses before any options snapshot")
	}
}
