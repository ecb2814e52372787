package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/reminder"
)

type reminderRequest struct {
	Title      string `json:"title"`
	Date       string `json:"date"`
	Note       string `json:"note"`
	WorkItemID string `json:"workItemId"`
}

func (req reminderRequest) input() reminder.Input {
	return reminder.Input{
		Title:      req.Title,
		Date:       model.ParseDateOfWork(req.Date),
		Note:       req.Note,
		WorkItemID: req.WorkItemID,
	}
}

type reminderListResponse struct {
	Items []model.Reminder `json:"items"`
	Total int              `json:"total"`
}

func (h *Handlers) ListReminders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	includeCompleted, err := parseBoolParam(query.Get("include_completed"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid include_completed")
		return
	}

	items := reminder.Filter(h.state.Reminders(), reminder.Query{
		Search:           query.Get("search"),
		IncludeCompleted: includeCompleted,
	})
	writeJSON(w, http.StatusOK, reminderListResponse{Items: items, Total: len(items)})
}

func (h *Handlers) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	rem, err := h.reminders.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rem)
}

func (h *Handlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.reminders.Update(r.Context(), id, req.input()); err != nil {
		writeServiceError(w, err)
		return
	}
	rem, err := h.reminders.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rem)
}

func (h *Handlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ToggleReminder(w http.ResponseWriter, r *http.Request) {
	rem, err := h.reminders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.reminders.Toggle(r.Context(), rem); err != nil {
		writeServiceError(w, err)
		return
	}
	rem.Completed = !rem.Completed
	writeJSON(w, http.StatusOK, rem)
}
