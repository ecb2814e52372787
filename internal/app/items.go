package app

import (
	"context"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/notify"
	"github.com/nhle/workdesk/internal/reminder"
	"github.com/nhle/workdesk/internal/workitem"
)

// writeResultMsg is sent after any write. success is shown when err is
// nil. partial means the write landed but a follow-up step failed.
type writeResultMsg struct {
	success string
	err     error
	partial bool
}

// statusResultMsg reports the outcome of an optimistic status change.
type statusResultMsg struct {
	id  string
	err error
}

// bulkTrashResultMsg reports a bulk trash; success also clears the selection.
type bulkTrashResultMsg struct {
	writeResultMsg
}

// bulkTrashRequest is the confirm dialog payload for a bulk trash.
type bulkTrashRequest struct {
	ids []string
}

func writeResult(success string, err error) tea.Msg {
	return writeResultMsg{success: success, err: err}
}

func partialResult(success string, err error) tea.Msg {
	return writeResultMsg{success: success, err: err, partial: err != nil}
}

// createItem persists a new work item.
func (m *Model) createItem(in workitem.SaveInput) tea.Cmd {
	svc := m.deps.Items
	return func() tea.Msg {
		w, err := svc.Create(context.Background(), in)
		if err != nil && w.ID == "" {
			return writeResult("", err)
		}
		return partialResult(fmt.Sprintf("Created %s", w.CustomerName), err)
	}
}

// updateItem saves an edit of original.
func (m *Model) updateItem(original model.WorkItem, in workitem.SaveInput) tea.Cmd {
	svc := m.deps.Items
	return func() tea.Msg {
		w, err := svc.Update(context.Background(), original, in)
		if err != nil && w.ID == "" {
			return writeResult("", err)
		}
		return partialResult(fmt.Sprintf("Saved %s", w.CustomerName), err)
	}
}

// trashItem moves an active or archived item to the trash.
func (m *Model) trashItem(w model.WorkItem) tea.Cmd {
	svc := m.deps.Items
	return func() tea.Msg {
		err := svc.MoveToTrash(context.Background(), w.ID)
		return writeResult(fmt.Sprintf("Moved %s to trash", w.CustomerName), err)
	}
}

// restoreItem takes an item out of the trash.
func (m *Model) restoreItem(w model.WorkItem) tea.Cmd {
	svc := m.deps.Items
	return func() tea.Msg {
		err := svc.Restore(context.Background(), w.ID)
		return writeResult(fmt.Sprintf("Restored %s", w.CustomerName), err)
	}
}

// toggleArchive archives an active item or unarchives an archived one.
func (m *Model) toggleArchive(w model.WorkItem) tea.Cmd {
	svc := m.deps.Items
	return func() tea.Msg {
		ctx := context.Background()
		if w.Lifecycle() == model.LifecycleArchived {
			err := svc.Unarchive(ctx, w.ID)
			return writeResult(fmt.Sprintf("Unarchived %s", w.CustomerName), err)
		}
		err := svc.Archive(ctx, w.ID)
		return writeResult(fmt.Sprintf("Archived %s", w.CustomerName), err)
	}
}

// cycleStatus shows the next (or previous) status immediately and writes
// it in the background. A failed write reverts the display.
func (m *Model) cycleStatus(w model.WorkItem, delta int) tea.Cmd {
	statuses := m.deps.State.Options().Statuses
	if len(statuses) == 0 {
		return nil
	}
	current := m.edits.Display(w)
	i := slices.Index(statuses, current)
	var next string
	if i < 0 {
		next = statuses[0]
	} else {
		next = statuses[(i+delta+len(statuses))%len(statuses)]
	}
	if next == current {
		return nil
	}

	m.edits.Begin(w.ID, w.Status, next)
	m.refreshList()

	svc := m.deps.Items
	return func() tea.Msg {
		err := svc.ChangeStatus(context.Background(), w, next)
		return statusResultMsg{id: w.ID, err: err}
	}
}

// toggleCustomerCalled flips the customer called flag.
func (m *Model) toggleCustomerCalled(w model.WorkItem) tea.Cmd {
	svc := m.deps.Items
	return func() tea.Msg {
		err := svc.SetCustomerCalled(context.Background(), w.ID, !w.CustomerCalled)
		msg := fmt.Sprintf("Marked %s as called", w.CustomerName)
		if w.CustomerCalled {
			msg = fmt.Sprintf("Marked %s as not called", w.CustomerName)
		}
		return writeResult(msg, err)
	}
}

// bulkTrash trashes every selected id in one batch.
func (m *Model) bulkTrash(ids []string) tea.Cmd {
	svc := m.deps.Items
	return func() tea.Msg {
		err := svc.BulkTrash(context.Background(), ids)
		return bulkTrashResultMsg{writeResultMsg{success: fmt.Sprintf("Moved %d items to trash", len(ids)), err: err}}
	}
}

// bulkUpdate applies change to every selected id in one batch.
func (m *Model) bulkUpdate(ids []string, change workitem.BulkChange) tea.Cmd {
	svc := m.deps.Items
	return func() tea.Msg {
		if change.IsEmpty() {
			return writeResultMsg{success: "Nothing to change"}
		}
		err := svc.BulkUpdate(context.Background(), ids, change)
		return writeResult(fmt.Sprintf("Updated %d items", len(ids)), err)
	}
}

// importRows imports tab-separated text.
func (m *Model) importRows(text string) tea.Cmd {
	svc := m.deps.Items
	return func() tea.Msg {
		res, err := svc.Import(context.Background(), text)
		if err != nil && res.Imported == 0 {
			return writeResult("", err)
		}
		return partialResult(fmt.Sprintf("Imported %d rows, skipped %d", res.Imported, res.Skipped), err)
	}
}

// createReminder persists a new reminder.
func (m *Model) createReminder(in reminder.Input) tea.Cmd {
	svc := m.deps.Reminders
	return func() tea.Msg {
		r, err := svc.Create(context.Background(), in)
		return writeResult(fmt.Sprintf("Added reminder %q", r.Title), err)
	}
}

// toggleReminder flips a reminder's completed flag.
func (m *Model) toggleReminder(r model.Reminder) tea.Cmd {
	svc := m.deps.Reminders
	return func() tea.Msg {
		err := svc.Toggle(context.Background(), r)
		return writeResult("", err)
	}
}

// deleteReminder removes a reminder.
func (m *Model) deleteReminder(id string) tea.Cmd {
	svc := m.deps.Reminders
	return func() tea.Msg {
		err := svc.Delete(context.Background(), id)
		return writeResult("Reminder deleted", err)
	}
}

// noticeFor turns a write result into a status bar notice.
func noticeFor(msg writeResultMsg) (notify.Notice, bool) {
	if msg.err != nil {
		n := notify.FromError(msg.err)
		if msg.partial {
			n.Message = msg.success + ". " + n.Message
		}
		return n, true
	}
	if msg.success == "" {
		return notify.Notice{}, false
	}
	return notify.Info("%s", msg.success), true
}
