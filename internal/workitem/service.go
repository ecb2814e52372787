// Package workitem implements the work item lifecycle: saves, trash and
// archive transitions, status and bulk edits, and tab-separated import.
// Every operation is committed as one remote write.
package workitem

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/logging"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/options"
)

// Service applies lifecycle operations against a document store.
type Service struct {
	docs     docstore.Store
	registry *options.Registry
	log      logging.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds a Service. A nil logger discards output.
func NewService(docs docstore.Store, registry *options.Registry, log logging.Logger, opts ...Option) *Service {
	if log == nil {
		log = logging.Nop()
	}
	s := &Service{
		docs:     docs,
		registry: registry,
		log:      log.With("component", "workitem"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveInput is the editable part of a work item.
type SaveInput struct {
	DateOfWork time.Time

	WorkBy     string
	WorkOfType string
	Status     string

	CustomerName         string
	PassportNumber       string
	TrackingNumber       string
	MobileWhatsappNumber string

	SalesPrice float64
	Advance    float64
}

// InputFrom returns the editable fields of w.
func InputFrom(w model.WorkItem) SaveInput {
	return SaveInput{
		DateOfWork:           w.DateOfWork,
		WorkBy:               w.WorkBy,
		WorkOfType:           w.WorkOfType,
		Status:               w.Status,
		CustomerName:         w.CustomerName,
		PassportNumber:       w.PassportNumber,
		TrackingNumber:       w.TrackingNumber,
		MobileWhatsappNumber: w.MobileWhatsappNumber,
		SalesPrice:           w.SalesPrice,
		Advance:              w.Advance,
	}
}

// Validate checks the required fields: date, work type, status and
// customer name.
func (in SaveInput) Validate() error {
	var missing []string
	if in.DateOfWork.IsZero() {
		missing = append(missing, "date of work")
	}
	if strings.TrimSpace(in.WorkOfType) == "" {
		missing = append(missing, "work type")
	}
	if strings.TrimSpace(in.Status) == "" {
		missing = append(missing, "status")
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		missing = append(missing, "customer name")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func (in SaveInput) apply(w *model.WorkItem) {
	w.WorkBy = strings.TrimSpace(in.WorkBy)
	w.WorkOfType = strings.TrimSpace(in.WorkOfType)
	w.Status = strings.TrimSpace(in.Status)
	w.CustomerName = strings.TrimSpace(in.CustomerName)
	w.PassportNumber = strings.TrimSpace(in.PassportNumber)
	w.TrackingNumber = strings.TrimSpace(in.TrackingNumber)
	w.MobileWhatsappNumber = strings.TrimSpace(in.MobileWhatsappNumber)
	w.SalesPrice = in.SalesPrice
	w.Advance = in.Advance
	w.RecomputeDue()
}

// editableFields is the update body of an edit. Lifecycle flags are left alone.
func editableFields(w model.WorkItem) docstore.Fields {
	f := w.Fields()
	delete(f, model.FieldIsArchived)
	delete(f, model.FieldIsTrashed)
	delete(f, model.FieldTrashedAt)
	delete(f, model.FieldCustomerCalled)
	return f
}

// Create inserts a new active item. Its date of work is stamped with the
// current time of day.
func (s *Service) Create(ctx context.Context, in SaveInput) (model.WorkItem, error) {
	if err := in.Validate(); err != nil {
		s.log.BusinessError("create rejected", err)
		return model.WorkItem{}, err
	}

	var w model.WorkItem
	in.apply(&w)
	w.DateOfWork = model.WithTimeOfDay(in.DateOfWork, s.now())

	id, err := s.docs.AddDocument(ctx, model.WorkItemsCollection, w.Fields())
	if err != nil {
		s.log.InternalError("create failed", err)
		return model.WorkItem{}, fmt.Errorf("creating work item: %w", err)
	}
	w.ID = id
	s.log.Info("work item created", "item_id", id)

	if err := s.register(ctx, model.ItemOptions(w)); err != nil {
		return w, err
	}
	return w, nil
}

// Update saves in over original. If the stored date carried a time of day
// and the new one does not, the original time of day is kept.
func (s *Service) Update(ctx context.Context, original model.WorkItem, in SaveInput) (model.WorkItem, error) {
	if original.ID == "" {
		return model.WorkItem{}, fmt.Errorf("updating work item: %w", docstore.ErrNotFound)
	}
	if err := in.Validate(); err != nil {
		s.log.BusinessError("update rejected", err, "item_id", original.ID)
		return model.WorkItem{}, err
	}

	w := original
	in.apply(&w)
	w.DateOfWork = in.DateOfWork
	if model.HasTimeOfDay(original.DateOfWork) && !model.HasTimeOfDay(in.DateOfWork) {
		w.DateOfWork = model.WithTimeOfDay(in.DateOfWork, original.DateOfWork)
	}

	if err := s.docs.UpdateDocument(ctx, itemPath(w.ID), editableFields(w)); err != nil {
		s.log.InternalError("update failed", err, "item_id", w.ID)
		return model.WorkItem{}, fmt.Errorf("updating work item %s: %w", w.ID, err)
	}

	if err := s.register(ctx, model.ItemOptions(w)); err != nil {
		return w, err
	}
	return w, nil
}

// MoveToTrash trashes an item that is not already trashed.
func (s *Service) MoveToTrash(ctx context.Context, id string) error {
	return s.transition(ctx, "trash", id,
		func(w model.WorkItem) bool { return !w.IsTrashed },
		func() docstore.Fields { return s.trashFields() })
}

// Restore takes an item out of the trash, returning it to its archived or
// active state.
func (s *Service) Restore(ctx context.Context, id string) error {
	return s.transition(ctx, "restore", id,
		func(w model.WorkItem) bool { return w.IsTrashed },
		func() docstore.Fields {
			return docstore.Fields{
				model.FieldIsTrashed: false,
				model.FieldTrashedAt: docstore.DeleteField,
			}
		})
}

// Archive archives an item that is not trashed.
func (s *Service) Archive(ctx context.Context, id string) error {
	return s.transition(ctx, "archive", id,
		func(w model.WorkItem) bool { return !w.IsTrashed },
		func() docstore.Fields { return docstore.Fields{model.FieldIsArchived: true} })
}

// Unarchive returns an archived item to the active state.
func (s *Service) Unarchive(ctx context.Context, id string) error {
	return s.transition(ctx, "unarchive", id,
		func(w model.WorkItem) bool { return w.IsArchived },
		func() docstore.Fields { return docstore.Fields{model.FieldIsArchived: false} })
}

func (s *Service) transition(ctx context.Context, op, id string, allowed func(model.WorkItem) bool, updates func() docstore.Fields) error {
	w, err := s.load(ctx, id)
	if err != nil {
		s.log.InternalError(op+" failed", err, "item_id", id)
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	if !allowed(w) {
		err := fmt.Errorf("%s %s while %s: %w", op, id, w.Lifecycle(), ErrInvalidTransition)
		s.log.BusinessError(op+" rejected", err, "item_id", id)
		return err
	}

	if err := s.docs.UpdateDocument(ctx, itemPath(id), updates()); err != nil {
		s.log.InternalError(op+" failed", err, "item_id", id)
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	s.log.Info("work item "+op, "item_id", id)
	return nil
}

func (s *Service) trashFields() docstore.Fields {
	return docstore.Fields{
		model.FieldIsTrashed: true,
		model.FieldTrashedAt: s.now().UTC().Format(time.RFC3339Nano),
	}
}

// ChangeStatus updates only the status of w. Choosing the current status
// is a no-op.
func (s *Service) ChangeStatus(ctx context.Context, w model.WorkItem, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return &ValidationError{Fields: []string{"status"}}
	}
	if status == w.Status {
		return nil
	}

	err := s.docs.UpdateDocument(ctx, itemPath(w.ID), docstore.Fields{model.FieldStatus: status})
	if err != nil {
		s.log.InternalError("status change failed", err, "item_id", w.ID, "status", status)
		return fmt.Errorf("changing status of %s: %w", w.ID, err)
	}
	return nil
}

// SetCustomerCalled records whether the customer has been called.
func (s *Service) SetCustomerCalled(ctx context.Context, id string, called bool) error {
	err := s.docs.UpdateDocument(ctx, itemPath(id), docstore.Fields{model.FieldCustomerCalled: called})
	if err != nil {
		s.log.InternalError("customer called update failed", err, "item_id", id)
		return fmt.Errorf("updating customer called on %s: %w", id, err)
	}
	return nil
}

// BulkTrash trashes every id in one batch. Items already in the trash are
// skipped so their purge date stays put; if every id is already trashed the
// move is rejected with ErrInvalidTransition.
func (s *Service) BulkTrash(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}

	movable := make([]string, 0, len(ids))
	for _, id := range ids {
		w, err := s.load(ctx, id)
		if err != nil {
			s.log.InternalError("bulk trash failed", err, "item_id", id)
			return fmt.Errorf("trashing %s: %w", id, err)
		}
		if !w.IsTrashed {
			movable = append(movable, id)
		}
	}
	if len(movable) == 0 {
		err := fmt.Errorf("trashing %d items already in the trash: %w", len(ids), ErrInvalidTransition)
		s.log.BusinessError("bulk trash rejected", err, "count", len(ids))
		return err
	}

	batch := s.docs.Batch()
	fields := s.trashFields()
	for _, id := range movable {
		batch.Update(itemPath(id), fields)
	}
	if err := batch.Commit(ctx); err != nil {
		s.log.InternalError("bulk trash failed", err, "count", len(movable))
		return fmt.Errorf("trashing %d items: %w", len(movable), err)
	}
	s.log.Info("work items trashed", "count", len(movable), "skipped", len(ids)-len(movable))
	return nil
}

// BulkChange names the fields a bulk update sets. Empty fields are left alone.
type BulkChange struct {
	Status string
	WorkBy string
}

// IsEmpty reports whether the change sets nothing.
func (c BulkChange) IsEmpty() bool {
	return strings.TrimSpace(c.Status) == "" && strings.TrimSpace(c.WorkBy) == ""
}

// BulkUpdate sets the chosen fields on every id in one batch. An empty
// change does nothing. Neither field affects due, so due is not rewritten.
func (s *Service) BulkUpdate(ctx context.Context, ids []string, change BulkChange) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	if change.IsEmpty() {
		return nil
	}

	fields := docstore.Fields{}
	var seen model.Options
	if v := strings.TrimSpace(change.Status); v != "" {
		fields[model.FieldStatus] = v
		seen.Statuses = []string{v}
	}
	if v := strings.TrimSpace(change.WorkBy); v != "" {
		fields[model.FieldWorkBy] = v
		seen.WorkBy = []string{v}
	}

	batch := s.docs.Batch()
	for _, id := range ids {
		batch.Update(itemPath(id), fields)
	}
	if err := batch.Commit(ctx); err != nil {
		s.log.InternalError("bulk update failed", err, "count", len(ids))
		return fmt.Errorf("updating %d items: %w", len(ids), err)
	}

	return s.register(ctx, seen)
}

// Get reads the stored item.
func (s *Service) Get(ctx context.Context, id string) (model.WorkItem, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return model.WorkItem{}, fmt.Errorf("loading work item %s: %w", id, err)
	}
	return w, nil
}

func (s *Service) load(ctx context.Context, id string) (model.WorkItem, error) {
	doc, err := s.docs.GetDocument(ctx, itemPath(id))
	if err != nil {
		return model.WorkItem{}, err
	}
	return model.WorkItemFromFields(doc.ID, doc.Fields), nil
}

// register records categorical values in the option registry. The item
// write has already succeeded when this runs.
func (s *Service) register(ctx context.Context, values model.Options) error {
	if s.registry == nil || values.IsEmpty() {
		return nil
	}
	added, err := s.registry.Register(ctx, values)
	if err != nil {
		s.log.InternalError("option registry update failed", err)
		return fmt.Errorf("saved, but %w", err)
	}
	if !added.IsEmpty() {
		s.log.Debug("options registered",
			"work_types", added.WorkTypes, "statuses", added.Statuses, "work_by", added.WorkBy)
	}
	return nil
}

func itemPath(id string) string {
	return docstore.JoinPath(model.WorkItemsCollection, id)
}

// IsNotFound reports whether err means the item does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, docstore.ErrNotFound)
}
