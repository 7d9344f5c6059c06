package httpapi

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fingerguard/server/internal/fcontext"
	"github.com/fingerguard/server/internal/fingerguard/store"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

// ── Ingestion (device-facing) ────────────────────────────────────────────────

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req types.HeartbeatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.heartbeat.Record(r.Context(), req)
	if err != nil {
		s.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req types.StatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	updated, err := s.registry.ReportStatus(r.Context(), req)
	if err != nil {
		s.handleErr(w, r, err)
		return
	}
	if !updated {
		// Heartbeat is the canonical creation path; a status report for
		// a device we've never heard from is acknowledged but ignored.
		zerolog.Ctx(r.Context()).Warn().Str("device_id", req.DeviceID).Msg("status report for unseen device ignored")
	}

	writeJSON(w, http.StatusOK, types.AckResponse{Success: true})
}

func (s *Server) handleAccessLog(w http.ResponseWriter, r *http.Request) {
	var req types.AccessLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	if _, err := s.logs.RecordAccess(r.Context(), req); err != nil {
		s.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AckResponse{Success: true})
}

func (s *Server) handleEventLog(w http.ResponseWriter, r *http.Request) {
	var req types.EventLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	if _, err := s.logs.RecordEvent(r.Context(), req); err != nil {
		s.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AckResponse{Success: true})
}

// ── Control (operator-facing) ────────────────────────────────────────────────

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req types.CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	cmd, err := s.commands.Enqueue(r.Context(), req)
	if err != nil {
		s.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.CommandResponse{Success: true, Command: cmd})
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.registry.List(r.Context())
	if err != nil {
		s.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.DeviceListResponse{Success: true, Devices: devices})
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]

	dev, err := s.registry.Get(r.Context(), deviceID)
	if err != nil {
		s.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.DeviceResponse{Success: true, Device: dev})
}

func (s *Server) handleQueryAccess(w http.ResponseWriter, r *http.Request) {
	q, ok := logQueryFromRequest(w, r)
	if !ok {
		return
	}

	logs, total, err := s.logs.QueryAccess(r.Context(), q)
	if err != nil {
		s.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.LogsResponse{Success: true, Logs: logs, Total: total})
}

func (s *Server) handleQueryEvents(w http.ResponseWriter, r *http.Request) {
	q, ok := logQueryFromRequest(w, r)
	if !ok {
		return
	}

	logs, total, err := s.logs.QueryEvents(r.Context(), q)
	if err != nil {
		s.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.LogsResponse{Success: true, Logs: logs, Total: total})
}

// logQueryFromRequest parses the deviceId/limit query parameters. The
// store clamps out-of-range limits; only an unparsable limit is rejected.
func logQueryFromRequest(w http.ResponseWriter, r *http.Request) (store.LogQuery, bool) {
	q := store.LogQuery{DeviceID: r.URL.Query().Get("deviceId")}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return store.LogQuery{}, false
		}
		q.Limit = limit
	}

	return q, true
}

// ── Health ───────────────────────────────────────────────────────────────────

type healthStats struct {
	UptimeSeconds   float64 `json:"uptimeSeconds"`
	RequestCount    int64   `json:"requestCount"`
	Devices         int     `json:"devices"`
	DevicesOnline   int     `json:"devicesOnline"`
	AccessLogs      int     `json:"accessLogs"`
	EventLogs       int     `json:"eventLogs"`
	PendingCommands int     `json:"pendingCommands"`
}

type healthResponse struct {
	Status string      `json:"status"`
	Stats  healthStats `json:"stats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats := healthStats{
		UptimeSeconds: time.Since(s.bootTime).Seconds(),
		RequestCount:  atomic.LoadInt64(&s.requestCount),
	}

	if devices, err := s.registry.List(ctx); err == nil {
		stats.Devices = len(devices)
		for _, d := range devices {
			if d.Status == "online" {
				stats.DevicesOnline++
			}
		}
	}
	if _, total, err := s.logs.QueryAccess(ctx, store.LogQuery{Limit: 1}); err == nil {
		stats.AccessLogs = total
	}
	if _, total, err := s.logs.QueryEvents(ctx, store.LogQuery{Limit: 1}); err == nil {
		stats.EventLogs = total
	}
	if pending, err := s.commands.PendingCount(ctx); err == nil {
		stats.PendingCommands = pending
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "OK", Stats: stats})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, struct {
		Success   bool     `json:"success"`
		Error     string   `json:"error"`
		Endpoints []string `json:"endpoints"`
		RequestID string   `json:"requestId,omitempty"`
	}{
		Error:     "not_found",
		Endpoints: endpoints,
		RequestID: fcontext.RequestID(r.Context()),
	})
}
