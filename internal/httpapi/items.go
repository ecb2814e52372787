package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nhle/workdesk/internal/model"
	"github.com/nhle/workdesk/internal/view"
	"github.com/nhle/workdesk/internal/workitem"
)

const maxImportBytes = 5 << 20

type saveItemRequest struct {
	DateOfWork           string  `json:"dateOfWork"`
	WorkBy               string  `json:"workBy"`
	WorkOfType           string  `json:"workOfType"`
	Status               string  `json:"status"`
	CustomerName         string  `json:"customerName"`
	PassportNumber       string  `json:"passportNumber"`
	TrackingNumber       string  `json:"trackingNumber"`
	MobileWhatsappNumber string  `json:"mobileWhatsappNumber"`
	SalesPrice           float64 `json:"salesPrice"`
	Advance              float64 `json:"advance"`
}

func (req saveItemRequest) input() workitem.SaveInput {
	return workitem.SaveInput{
		DateOfWork:           model.ParseDateOfWork(req.DateOfWork),
		WorkBy:               req.WorkBy,
		WorkOfType:           req.WorkOfType,
		Status:               req.Status,
		CustomerName:         req.CustomerName,
		PassportNumber:       req.PassportNumber,
		TrackingNumber:       req.TrackingNumber,
		MobileWhatsappNumber: req.MobileWhatsappNumber,
		SalesPrice:           req.SalesPrice,
		Advance:              req.Advance,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type customerCalledRequest struct {
	CustomerCalled bool `json:"customerCalled"`
}

type bulkRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
	WorkBy string   `json:"workBy"`
}

type itemResponse struct {
	model.WorkItem
	DayCount       *int `json:"dayCount"`
	DaysUntilPurge *int `json:"daysUntilPurge,omitempty"`
}

func toItemResponse(w model.WorkItem, now time.Time) itemResponse {
	resp := itemResponse{WorkItem: w}
	if w.HasDate() {
		n := w.DayCount(now)
		resp.DayCount = &n
	}
	if w.IsTrashed {
		n := w.DaysUntilPurge(now)
		resp.DaysUntilPurge = &n
	}
	return resp
}

type viewResponse struct {
	Items      []itemResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
	Tabs       []string       `json:"tabs"`
	Sort       string         `json:"sort"`
	Desc       bool           `json:"desc"`
	Version    uint64         `json:"version"`
}

// computeView runs the pipeline over the current state.
func (h *Handlers) computeView(q view.Query) viewResponse {
	snap := h.state.Snapshot()
	now := h.now()
	v := view.Compute(snap.Items, q, now)

	items := make([]itemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, toItemResponse(it, now))
	}
	return viewResponse{
		Items:      items,
		Total:      v.Total,
		Page:       v.Page,
		PageSize:   v.PageSize,
		TotalPages: v.TotalPages,
		Tabs:       view.Tabs(snap.Options.Statuses),
		Sort:       string(q.Sort),
		Desc:       q.Desc,
		Version:    snap.Version,
	}
}

func (h *Handlers) ListItems(w http.ResponseWriter, r *http.Request) {
	params, err := viewParamsFromValues(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	q, err := params.query(h.pageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.computeView(q))
}

func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(item, h.now()))
}

func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req saveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.items.Create(r.Context(), req.input())
	if err != nil && item.ID == "" {
		writeServiceError(w, err)
		return
	}
	if err != nil {
		h.log.BusinessError("items.create: saved with registry failure", err, "item_id", item.ID)
	}
	writeJSON(w, http.StatusCreated, toItemResponse(item, h.now()))
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req saveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	original, err := h.items.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	item, err := h.items.Update(r.Context(), original, req.input())
	if err != nil && item.ID == "" {
		writeServiceError(w, err)
		return
	}
	if err != nil {
		h.log.BusinessError("items.update: saved with registry failure", err, "item_id", item.ID)
	}
	writeJSON(w, http.StatusOK, toItemResponse(item, h.now()))
}

func (h *Handlers) TrashItem(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.items.MoveToTrash)
}

func (h *Handlers) RestoreItem(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.items.Restore)
}

func (h *Handlers) ArchiveItem(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.items.Archive)
}

func (h *Handlers) UnarchiveItem(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.items.Unarchive)
}

func (h *Handlers) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, string) error) {
	id := chi.URLParam(r, "id")
	if err := op(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": "ok"})
}

func (h *Handlers) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.items.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.items.ChangeStatus(r.Context(), item, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	item.Status = strings.TrimSpace(req.Status)
	writeJSON(w, http.StatusOK, toItemResponse(item, h.now()))
}

func (h *Handlers) SetCustomerCalled(w http.ResponseWriter, r *http.Request) {
	var req customerCalledRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.items.SetCustomerCalled(r.Context(), id, req.CustomerCalled); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "customerCalled": req.CustomerCalled})
}

func (h *Handlers) BulkTrash(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.items.BulkTrash(r.Context(), req.IDs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"trashed": len(req.IDs)})
}

func (h *Handlers) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	change := workitem.BulkChange{Status: req.Status, WorkBy: req.WorkBy}
	if err := h.items.BulkUpdate(r.Context(), req.IDs, change); err != nil {
		writeServiceError(w, err)
		return
	}
	updated := len(req.IDs)
	if change.IsEmpty() {
		updated = 0
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "import body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "reading body failed")
		return
	}

	res, err := h.items.Import(r.Context(), string(body))
	if err != nil && res.Imported == 0 {
		writeServiceError(w, err)
		return
	}
	if err != nil {
		h.log.BusinessError("import: saved with registry failure", err, "imported", res.Imported)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"imported": res.Imported,
		"skipped":  res.Skipped,
		"ids":      res.IDs,
	})
}

func (h *Handlers) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state.Options())
}
