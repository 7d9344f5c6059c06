package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fingerguard/server/internal/fingerguard/service"
	"github.com/fingerguard/server/internal/notifier"
)

type Dependencies struct {
	Logger    zerolog.Logger
	Addr      string
	Notifier  notifier.Notifier
	Heartbeat *service.HeartbeatService
	Registry  *service.DeviceRegistry
	Commands  *service.CommandService
	Logs      *service.LogService
}

type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
	notifier   notifier.Notifier

	heartbeat *service.HeartbeatService
	registry  *service.DeviceRegistry
	commands  *service.CommandService
	logs      *service.LogService

	bootTime     time.Time
	requestCount int64
}

func NewServer(d Dependencies) *Server {
	s := &Server{
		logger:    d.Logger,
		notifier:  d.Notifier,
		heartbeat: d.Heartbeat,
		registry:  d.Registry,
		commands:  d.Commands,
		logs:      d.Logs,
		bootTime:  time.Now().UTC(),
	}
	if s.notifier == nil {
		s.notifier = notifier.Noop{}
	}

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// endpoints is the canonical surface, echoed on unknown paths so device
// firmware pointed at a stale URL gets a usable hint.
var endpoints = []string{
	"POST /devices/heartbeat",
	"POST /devices/status",
	"GET /devices",
	"GET /devices/{deviceId}",
	"POST /command",
	"POST /logs/access",
	"POST /logs/event",
	"GET /logs/access",
	"GET /logs/events",
	"GET /health",
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(
		middlewareRequestID(),
		middlewareLogger(s.logger),
		middlewareCounter(s),
		s.middlewareRecover(),
	)

	r.HandleFunc("/devices/heartbeat", s.handleHeartbeat).Methods(http.MethodPost)
	r.HandleFunc("/devices/status", s.handleStatus).Methods(http.MethodPost)
	r.HandleFunc("/devices", s.handleListDevices).Methods(http.MethodGet)
	r.HandleFunc("/devices/{deviceId}", s.handleGetDevice).Methods(http.MethodGet)
	r.HandleFunc("/command", s.handleCommand).Methods(http.MethodPost)
	r.HandleFunc("/logs/access", s.handleAccessLog).Methods(http.MethodPost)
	r.HandleFunc("/logs/event", s.handleEventLog).Methods(http.MethodPost)
	r.HandleFunc("/logs/access", s.handleQueryAccess).Methods(http.MethodGet)
	r.HandleFunc("/logs/events", s.handleQueryEvents).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleNotFound)

	return r
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
