// Package selection tracks the set of selected work item ids.
package selection

import "slices"

// HeaderState is the derived state of the select-all-on-page checkbox.
type HeaderState int

const (
	HeaderNone HeaderState = iota
	HeaderIndeterminate
	HeaderAll
)

func (h HeaderState) String() string {
	switch h {
	case HeaderIndeterminate:
		return "indeterminate"
	case HeaderAll:
		return "all"
	default:
		return "none"
	}
}

// Set is a set of selected ids. The zero value is empty and ready to use.
// It is not safe for concurrent use.
type Set struct {
	ids map[string]struct{}
}

// New returns a set containing ids.
func New(ids ...string) *Set {
	s := &Set{}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *Set) add(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Contains reports whether id is selected.
func (s *Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// ToggleOne adds id if absent, removes it otherwise.
func (s *Set) ToggleOne(id string) {
	if s.Contains(id) {
		delete(s.ids, id)
		return
	}
	s.add(id)
}

// ToggleAllOnPage removes exactly pageIDs when every one of them is
// selected, and adds all of them otherwise. Ids not on the page are kept.
func (s *Set) ToggleAllOnPage(pageIDs []string) {
	if len(pageIDs) == 0 {
		return
	}
	if s.countOn(pageIDs) == len(pageIDs) {
		for _, id := range pageIDs {
			delete(s.ids, id)
		}
		return
	}
	for _, id := range pageIDs {
		s.add(id)
	}
}

// Clear empties the set.
func (s *Set) Clear() {
	clear(s.ids)
}

// Reconcile drops every selected id not in visibleIDs and reports how many
// were dropped.
func (s *Set) Reconcile(visibleIDs []string) int {
	if len(s.ids) == 0 {
		return 0
	}
	visible := make(map[string]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		visible[id] = struct{}{}
	}

	dropped := 0
	for id := range s.ids {
		if _, ok := visible[id]; !ok {
			delete(s.ids, id)
			dropped++
		}
	}
	return dropped
}

// HeaderState derives the page checkbox state. An empty page is never
// "all selected".
func (s *Set) HeaderState(pageIDs []string) HeaderState {
	n := s.countOn(pageIDs)
	switch {
	case len(pageIDs) == 0 || n == 0:
		return HeaderNone
	case n == len(pageIDs):
		return HeaderAll
	default:
		return HeaderIndeterminate
	}
}

// countOn counts distinct selected ids among pageIDs.
func (s *Set) countOn(pageIDs []string) int {
	seen := make(map[string]struct{}, len(pageIDs))
	n := 0
	for _, id := range pageIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s.Contains(id) {
			n++
		}
	}
	return n
}
