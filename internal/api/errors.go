package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rosettapad/rosettapad/internal/bluetooth"
	"github.com/rosettapad/rosettapad/internal/lightbar"
	"github.com/rosettapad/rosettapad/internal/profile"
)

// Error is the structured error payload returned to clients.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	errCodeBadRequest   = "bad_request"
	errCodeNotFound     = "not_found"
	errCodeNotPermitted = "not_permitted"
	errCodeConflict     = "conflict"
	errCodeInternal     = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		// Best-effort write; the connection may already be gone.
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{Status: status, Code: code, Message: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, errCodeBadRequest, message)
}

// writeDomainError maps domain errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lightbar.ErrNotFound),
		errors.Is(err, profile.ErrNotFound),
		errors.Is(err, bluetooth.ErrUnknownDevice):
		writeError(w, http.StatusNotFound, errCodeNotFound, err.Error())
	case errors.Is(err, lightbar.ErrNotPermitted),
		errors.Is(err, profile.ErrProtected):
		writeError(w, http.StatusForbidden, errCodeNotPermitted, err.Error())
	case errors.Is(err, lightbar.ErrInvalidConfig),
		errors.Is(err, lightbar.ErrInvalidAnimation):
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
	case errors.Is(err, bluetooth.ErrScanInProgress):
		writeError(w, http.StatusConflict, errCodeConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, errCodeInternal, err.Error())
	}
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
