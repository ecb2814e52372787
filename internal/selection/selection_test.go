package selection

import (
	"slices"
	"testing"
)

func TestToggleOne(t *testing.T) {
	s := New()
	s.ToggleOne("a")
	if !s.Contains("a") {
		t.Fatal("a not selected after toggle")
	}
	s.ToggleOne("a")
	if s.Contains("a") || s.Len() != 0 {
		t.Fatal("a still selected after second toggle")
	}
}

func TestToggleAllOnPagePartial(t *testing.T) {
	page := []string{"p1", "p2", "p3", "p4", "p5"}
	s := New("p1", "p2", "p3", "other")

	if got := s.HeaderState(page); got != HeaderIndeterminate {
		t.Fatalf("header = %v, want indeterminate", got)
	}

	s.ToggleAllOnPage(page)
	for _, id := range page {
		if !s.Contains(id) {
			t.Fatalf("%s not selected after select-all", id)
		}
	}
	if got := s.HeaderState(page); got != HeaderAll {
		t.Fatalf("header = %v, want all", got)
	}

	s.ToggleAllOnPage(page)
	if got := s.IDs(); !slices.Equal(got, []string{"other"}) {
		t.Fatalf("after deselect-all ids = %v, want [other]", got)
	}
	if got := s.HeaderState(page); got != HeaderNone {
		t.Fatalf("header = %v, want none", got)
	}
}

func TestHeaderStateEmptyPage(t *testing.T) {
	s := New("x")
	if got := s.HeaderState(nil); got != HeaderNone {
		t.Fatalf("empty page header = %v, want none", got)
	}
}

func TestReconcileKeepsVisibleSubset(t *testing.T) {
	s := New("a", "b", "c", "d")
	dropped := s.Reconcile([]string{"b", "d", "e"})
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if got := s.IDs(); !slices.Equal(got, []string{"b", "d"}) {
		t.Fatalf("ids = %v, want [b d]", got)
	}
}

func TestClear(t *testing.T) {
	s := New("a", "b")
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("len = %d after clear", s.Len())
	}
	var zero Set
	zero.Clear()
	zero.ToggleOne("z")
	if !zero.Contains("z") {
		t.Fatal("zero value not usable")
	}
}
