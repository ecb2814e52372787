package workitem

import (
	gosync "sync"

	"github.com/nhle/workdesk/internal/model"
)

// EditState is the state of an optimistic status edit.
type EditState int

const (
	// EditConfirmed means the stored status is shown; no edit is in flight.
	EditConfirmed EditState = iota
	// EditPending means the new status is shown before the write lands.
	EditPending
	// EditReverted means the write failed and the old status is shown again.
	EditReverted
)

func (s EditState) String() string {
	switch s {
	case EditPending:
		return "pending"
	case EditReverted:
		return "reverted"
	default:
		return "confirmed"
	}
}

// StatusEdit is one in-flight or failed status change.
type StatusEdit struct {
	State EditState
	From  string
	To    string
}

// StatusEdits tracks optimistic status changes per item until a snapshot
// or a write failure resolves them. It is safe for concurrent use.
type StatusEdits struct {
	mu    gosync.Mutex
	edits map[string]StatusEdit
}

// NewStatusEdits returns an empty tracker.
func NewStatusEdits() *StatusEdits {
	return &StatusEdits{edits: make(map[string]StatusEdit)}
}

// Begin records that id is being changed from one status to another.
func (e *StatusEdits) Begin(id, from, to string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.edits[id] = StatusEdit{State: EditPending, From: from, To: to}
}

// Fail marks the pending edit of id as reverted.
func (e *StatusEdits) Fail(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if edit, ok := e.edits[id]; ok && edit.State == EditPending {
		edit.State = EditReverted
		e.edits[id] = edit
	}
}

// Reconcile resolves edits against a confirmed snapshot. A pending edit is
// resolved once the stored status differs from the value it replaced,
// whether it now shows the new value or another writer's. Reverted edits
// and edits of vanished items are dropped.
func (e *StatusEdits) Reconcile(items []model.WorkItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.edits) == 0 {
		return
	}

	stored := make(map[string]string, len(items))
	for _, it := range items {
		stored[it.ID] = it.Status
	}
	for id, edit := range e.edits {
		status, ok := stored[id]
		if !ok || edit.State == EditReverted || status != edit.From {
			delete(e.edits, id)
		}
	}
}

// Get returns the edit tracked for id, if any.
func (e *StatusEdits) Get(id string) (StatusEdit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	edit, ok := e.edits[id]
	return edit, ok
}

// State returns the edit state of id.
func (e *StatusEdits) State(id string) EditState {
	edit, ok := e.Get(id)
	if !ok {
		return EditConfirmed
	}
	return edit.State
}

// Display returns the status to show for w.
func (e *StatusEdits) Display(w model.WorkItem) string {
	if edit, ok := e.Get(w.ID); ok && edit.State == EditPending {
		return edit.To
	}
	return w.Status
}
