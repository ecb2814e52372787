// Package reminder manages dated reminders, optionally linked to work items.
package reminder

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/logging"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/workitem"
)

// Input is the editable part of a reminder.
type Input struct {
	Title      string
	Date       time.Time
	Note       string
	WorkItemID string
}

// Validate requires a title and a date.
func (in Input) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if in.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return &workitem.ValidationError{Fields: missing}
	}
	return nil
}

// Service writes reminders to the document store.
type Service struct {
	docs docstore.Store
	log  logging.Logger
	now  func() time.Time
}

// NewService builds a Service. A nil logger discards output.
func NewService(docs docstore.Store, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{docs: docs, log: log.With("component", "reminder"), now: time.Now}
}

// Create stores a new open reminder.
func (s *Service) Create(ctx context.Context, in Input) (model.Reminder, error) {
	if err := in.Validate(); err != nil {
		return model.Reminder{}, err
	}
	r := model.Reminder{
		Title:      strings.TrimSpace(in.Title),
		Date:       in.Date,
		Note:       strings.TrimSpace(in.Note),
		WorkItemID: in.WorkItemID,
		CreatedAt:  s.now(),
	}
	id, err := s.docs.AddDocument(ctx, model.RemindersCollection, r.Fields())
	if err != nil {
		s.log.InternalError("create reminder failed", err)
		return model.Reminder{}, fmt.Errorf("creating reminder: %w", err)
	}
	r.ID = id
	return r, nil
}

// Get reads the stored reminder.
func (s *Service) Get(ctx context.Context, id string) (model.Reminder, error) {
	doc, err := s.docs.GetDocument(ctx, path(id))
	if err != nil {
		return model.Reminder{}, fmt.Errorf("loading reminder %s: %w", id, err)
	}
	return model.ReminderFromFields(doc.ID, doc.Fields), nil
}

// Toggle flips the completion flag of r.
func (s *Service) Toggle(ctx context.Context, r model.Reminder) error {
	err := s.docs.UpdateDocument(ctx, path(r.ID), docstore.Fields{
		model.FieldReminderCompleted: !r.Completed,
	})
	if err != nil {
		s.log.InternalError("toggle reminder failed", err, "reminder_id", r.ID)
		return fmt.Errorf("toggling reminder %s: %w", r.ID, err)
	}
	return nil
}

// Update replaces the editable fields of reminder id.
func (s *Service) Update(ctx context.Context, id string, in Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	updates := docstore.Fields{
		model.FieldReminderTitle: strings.TrimSpace(in.Title),
		model.FieldReminderDate:  model.FormatDateOfWork(in.Date),
		model.FieldReminderNote:  strings.TrimSpace(in.Note),
	}
	if in.WorkItemID != "" {
		updates[model.FieldReminderWorkItem] = in.WorkItemID
	} else {
		updates[model.FieldReminderWorkItem] = docstore.DeleteField
	}
	if err := s.docs.UpdateDocument(ctx, path(id), updates); err != nil {
		s.log.InternalError("update reminder failed", err, "reminder_id", id)
		return fmt.Errorf("updating reminder %s: %w", id, err)
	}
	return nil
}

// Delete removes reminder id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.docs.DeleteDocument(ctx, path(id)); err != nil {
		s.log.InternalError("delete reminder failed", err, "reminder_id", id)
		return fmt.Errorf("deleting reminder %s: %w", id, err)
	}
	return nil
}

func path(id string) string {
	return docstore.JoinPath(model.RemindersCollection, id)
}

// Query filters a reminder list.
type Query struct {
	Search           string
	IncludeCompleted bool
}

// Filter keeps reminders whose title or note contains the search term,
// dropping completed ones unless asked, ordered by date then creation
// time. Undated reminders go last.
func Filter(reminders []model.Reminder, q Query) []model.Reminder {
	needle := strings.ToLower(q.Search)

	out := make([]model.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.Completed && !q.IncludeCompleted {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Note), needle) {
			continue
		}
		out = append(out, r)
	}

	slices.SortStableFunc(out, func(a, b model.Reminder) int {
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
		case a.Date.IsZero():
			return 1
		case b.Date.IsZero():
			return -1
		default:
			if c := a.Date.Compare(b.Date); c != 0 {
				return c
			}
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

// Due returns the open reminders dated on or before the local day of now.
func Due(reminders []model.Reminder, now time.Time) []model.Reminder {
	end := model.DateOnly(now).AddDate(0, 0, 1)
	var out []model.Reminder
	for _, r := range Filter(reminders, Query{}) {
		if !r.Date.IsZero() && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	return out
}
