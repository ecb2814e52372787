// Package options maintains the growing registry of work types, statuses
// and work-by values shared through one settings document.
package options

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/model"
)

// DocumentPath is where the registry document lives.
var DocumentPath = docstore.JoinPath(model.SettingsCollection, model.OptionsDocumentID)

// Registry is the local view of the option lists. It only ever grows.
type Registry struct {
	docs docstore.Store

	mu      gosync.RWMutex
	current model.Options
}

// NewRegistry creates a registry seeded with the static defaults.
func NewRegistry(docs docstore.Store) *Registry {
	return &Registry{
		docs:    docs,
		current: model.DefaultOptions(),
	}
}

// Options returns a copy of the current lists.
func (r *Registry) Options() model.Options {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return model.Options{}.Union(r.current)
}

// Ensure creates the registry document with the defaults if it is absent.
func (r *Registry) Ensure(ctx context.Context) error {
	doc, err := r.docs.GetDocument(ctx, DocumentPath)
	if err == nil {
		r.Apply(doc.Fields)
		return nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("loading option registry: %w", err)
	}

	if err := r.docs.SetDocument(ctx, DocumentPath, r.Options().Fields()); err != nil {
		return fmt.Errorf("creating option registry: %w", err)
	}
	return nil
}

// Apply unions the values of an incoming registry document into the local
// lists and returns the result. Values are never removed.
func (r *Registry) Apply(fields docstore.Fields) model.Options {
	incoming := model.OptionsFromFields(fields)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = r.current.Union(incoming)
	return model.Options{}.Union(r.current)
}

// Register appends any values not yet known to the shared document with a
// set-union write, and to the local lists once the write succeeds. It
// returns the values that were new.
func (r *Registry) Register(ctx context.Context, values model.Options) (model.Options, error) {
	r.mu.RLock()
	missing := r.current.Missing(values)
	r.mu.RUnlock()

	if missing.IsEmpty() {
		return missing, nil
	}

	updates := docstore.Fields{}
	if len(missing.WorkTypes) > 0 {
		updates[model.FieldWorkTypes] = docstore.StringsUnion(missing.WorkTypes)
	}
	if len(missing.Statuses) > 0 {
		updates[model.FieldStatuses] = docstore.StringsUnion(missing.Statuses)
	}
	if len(missing.WorkBy) > 0 {
		updates[model.FieldWorkByAll] = docstore.StringsUnion(missing.WorkBy)
	}

	err := r.docs.UpdateDocument(ctx, DocumentPath, updates)
	if errors.Is(err, docstore.ErrNotFound) {
		seed := r.Options().Union(missing)
		err = r.docs.SetDocument(ctx, DocumentPath, seed.Fields())
	}
	if err != nil {
		return missing, fmt.Errorf("registering options: %w", err)
	}

	r.mu.Lock()
	r.current = r.current.Union(missing)
	r.mu.Unlock()

	return missing, nil
}
