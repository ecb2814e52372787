package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nhle/workdesk/internal/docstore"
	"github.com/nhle/workdesk/internal/workitem"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps an operation error to a status code. The
// services have already logged it.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case workitem.IsValidation(err):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, workitem.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, docstore.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "item not found")
	case docstore.IsPermissionError(err):
		writeError(w, http.StatusForbidden, "permission_denied", err.Error())
	default:
		writeError(w, http.StatusBadGateway, "remote_write_failed", err.Error())
	}
}
