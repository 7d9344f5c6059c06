package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/getsentry/raven-go"
	"github.com/rs/zerolog"

	"github.com/fingerguard/server/internal/fcontext"
	"github.com/fingerguard/server/internal/fingerguard/service"
	"github.com/fingerguard/server/internal/fingerguard/store"
)

// maxRequestBody caps ingestion payloads. The largest legitimate message
// is a status report carrying a full enrolled-user list; 64 KiB is
// generous for the sensor hardware's ~200-template ceiling.
const maxRequestBody = 64 << 10

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// decodeJSON reads a bounded JSON body. Unknown fields are tolerated:
// device firmwares attach extra fields freely and the server mirrors
// only what it understands.
func decodeJSON(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxRequestBody)
	return json.NewDecoder(body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   message,
		RequestID: fcontext.RequestID(r.Context()),
	})
}

// handleErr maps a service error to the wire. Validation sentinels are
// client errors; store.ErrNotFound is a 404; everything else is logged,
// reported, and surfaced as a generic 500.
func (s *Server) handleErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrDeviceIDRequired):
		writeError(w, r, http.StatusBadRequest, "missing_device_id", err.Error())
	case errors.Is(err, service.ErrUserNameRequired):
		writeError(w, r, http.StatusBadRequest, "missing_user_name", err.Error())
	case errors.Is(err, service.ErrActionRequired):
		writeError(w, r, http.StatusBadRequest, "missing_action", err.Error())
	case errors.Is(err, service.ErrUnknownCommandType):
		writeError(w, r, http.StatusBadRequest, "unknown_command_type", err.Error())
	case errors.Is(err, service.ErrCommandIDRequired):
		writeError(w, r, http.StatusBadRequest, "missing_command_id", err.Error())
	case errors.Is(err, service.ErrCommandNameRequired):
		writeError(w, r, http.StatusBadRequest, "missing_command_name", err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "device_not_found", "unknown deviceId")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("handler error")
		s.notifier.CaptureError(err, nil, raven.NewHttp(r))
		writeError(w, r, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}
