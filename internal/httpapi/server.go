// Package httpapi serves the dashboard over a JSON API with a websocket
// stream of the live view.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nhle/workdesk/internal/auth"
	"github.com/nhle/workdesk/internal/logging"
	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/reminder"
	"github.com/nhle/workdesk/internal/state"
	"github.com/nhle/workdesk/internal/workitem"
)

// Deps are the collaborators behind the API.
type Deps struct {
	Items     *workitem.Service
	Reminders *reminder.Service
	State     *state.Store

	// Auth enables Basic authentication when set.
	Auth *auth.Authenticator

	Log      logging.Logger
	PageSize int
	Now      func() time.Time
}

// Handlers implements the API endpoints.
type Handlers struct {
	items     *workitem.Service
	reminders *reminder.Service
	state     *state.Store
	log       logging.Logger
	pageSize  int
	now       func() time.Time
}

func newHandlers(d Deps) *Handlers {
	h := &Handlers{
		items:     d.Items,
		reminders: d.Reminders,
		state:     d.State,
		log:       d.Log,
		pageSize:  d.PageSize,
		now:       d.Now,
	}
	if h.log == nil {
		h.log = logging.Nop()
	}
	if h.pageSize <= 0 {
		h.pageSize = model.DefaultPageSize
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// NewRouter builds the API routes.
func NewRouter(d Deps) http.Handler {
	h := newHandlers(d)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			if d.Auth != nil {
				r.Use(basicAuth(d.Auth, h.log))
			}

			r.Get("/ws", h.StreamView)

			r.Group(func(r chi.Router) {
				r.Use(chimw.Timeout(30 * time.Second))

				r.Get("/items", h.ListItems)
				r.Post("/items", h.CreateItem)
				r.Post("/items/bulk/trash", h.BulkTrash)
				r.Post("/items/bulk/update", h.BulkUpdate)
				r.Get("/items/{id}", h.GetItem)
				r.Put("/items/{id}", h.UpdateItem)
				r.Post("/items/{id}/trash", h.TrashItem)
				r.Post("/items/{id}/restore", h.RestoreItem)
				r.Post("/items/{id}/archive", h.ArchiveItem)
				r.Post("/items/{id}/unarchive", h.UnarchiveItem)
				r.Patch("/items/{id}/status", h.ChangeStatus)
				r.Patch("/items/{id}/customer-called", h.SetCustomerCalled)

				r.Post("/import", h.Import)
				r.Get("/options", h.Options)

				r.Get("/reminders", h.ListReminders)
				r.Post("/reminders", h.CreateReminder)
				r.Put("/reminders/{id}", h.UpdateReminder)
				r.Delete("/reminders/{id}", h.DeleteReminder)
				r.Patch("/reminders/{id}/toggle", h.ToggleReminder)
			})
		})
	})

	return r
}

// NewServer wraps handler in an http.Server listening on addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.state.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"items":        len(snap.Items),
		"itemsLoaded":  snap.ItemsLoaded,
		"stateVersion": snap.Version,
	})
}
