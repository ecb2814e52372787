package workitem

import (
	"testing"

	"github.com/nhle/workdesk/internal/model"
)

func TestStatusEditConfirmedBySnapshot(t *testing.T) {
	edits := NewStatusEdits()
	item := model.WorkItem{ID: "a", Status: model.StatusUnderProcessing}

	edits.Begin("a", item.Status, model.StatusApproved)
	if got := edits.Display(item); got != model.StatusApproved {
		t.Fatalf("pending display = %q", got)
	}

	edits.Reconcile([]model.WorkItem{item})
	if edits.State("a") != EditPending {
		t.Fatalf("stale snapshot resolved the edit: %v", edits.State("a"))
	}

	item.Status = model.StatusApproved
	edits.Reconcile([]model.WorkItem{item})
	if edits.State("a") != EditConfirmed {
		t.Fatalf("state = %v, want confirmed", edits.State("a"))
	}
	if got := edits.Display(item); got != model.StatusApproved {
		t.Fatalf("display = %q", got)
	}
}

func TestStatusEditRevertedOnFailure(t *testing.T) {
	edits := NewStatusEdits()
	item := model.WorkItem{ID: "a", Status: model.StatusUnderProcessing}

	edits.Begin("a", item.Status, model.StatusRejected)
	edits.Fail("a")
	if edits.State("a") != EditReverted {
		t.Fatalf("state = %v, want reverted", edits.State("a"))
	}
	if got := edits.Display(item); got != model.StatusUnderProcessing {
		t.Fatalf("display after failure = %q, want original", got)
	}

	edits.Reconcile([]model.WorkItem{item})
	if _, ok := edits.Get("a"); ok {
		t.Fatal("reverted edit survived reconcile")
	}
}

func TestStatusEditOtherWriterWins(t *testing.T) {
	edits := NewStatusEdits()
	edits.Begin("a", model.StatusUnderProcessing, model.StatusApproved)

	other := model.WorkItem{ID: "a", Status: model.StatusPaidOnly}
	edits.Reconcile([]model.WorkItem{other})
	if got := edits.Display(other); got != model.StatusPaidOnly {
		t.Fatalf("display = %q, want the stored value", got)
	}
}
