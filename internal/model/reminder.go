package model

import "time"

// RemindersCollection is the document collection holding reminders.
const RemindersCollection = "reminders"

// Reminder document field names.
const (
	FieldReminderTitle     = "title"
	FieldReminderDate      = "date"
	FieldReminderNote      = "note"
	FieldReminderCompleted = "completed"
	FieldReminderWorkItem  = "workItemId"
	FieldReminderCreatedAt = "createdAt"
)

// Reminder is a dated note, optionally linked to a work item.
type Reminder struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Note       string    `json:"note,omitempty"`
	Completed  bool      `json:"completed"`
	WorkItemID string    `json:"workItemId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Fields encodes the reminder as a document field map.
func (r Reminder) Fields() map[string]any {
	f := map[string]any{
		FieldReminderTitle:     r.Title,
		FieldReminderDate:      FormatDateOfWork(r.Date),
		FieldReminderNote:      r.Note,
		FieldReminderCompleted: r.Completed,
		FieldReminderCreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if r.WorkItemID != "" {
		f[FieldReminderWorkItem] = r.WorkItemID
	}
	return f
}

// ReminderFromFields decodes a reminder document with zero defaults.
func ReminderFromFields(id string, f map[string]any) Reminder {
	r := Reminder{
		ID:         id,
		Title:      StringField(f, FieldReminderTitle),
		Date:       ParseDateOfWork(StringField(f, FieldReminderDate)),
		Note:       StringField(f, FieldReminderNote),
		Completed:  BoolField(f, FieldReminderCompleted),
		WorkItemID: StringField(f, FieldReminderWorkItem),
	}
	if t, ok := TimeField(f, FieldReminderCreatedAt); ok {
		r.CreatedAt = t
	}
	return r
}
