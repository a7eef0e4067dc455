// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/flightdesk/internal/domain/model"
	"github.com/okian/flightdesk/internal/domain/scoring"
	"github.com/okian/flightdesk/internal/domain/summary"
	"github.com/okian/flightdesk/internal/domain/types"
	"github.com/okian/flightdesk/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	LoadSnapshot(ctx context.Context, raw model.RawSnapshot) (types.RevisionInfo, error)
	Current(ctx context.Context) (types.RevisionInfo, error)
	Revision(ctx context.Context, id string) (types.RevisionInfo, error)

	Conflicts(ctx context.Context, kind string) (types.ConflictReport, error)
	Candidates(ctx context.Context, missionID string, topN int) (types.CandidateList, error)
	Assess(ctx context.Context, missionID, pilotID string) (scoring.Suggestion, error)
	Urgent(ctx context.Context, topN int) ([]types.UrgentMission, error)
	Summary(ctx context.Context, day model.Date) (summary.Summary, error)
	Mission(ctx context.Context, missionID string, day model.Date) (types.MissionDetail, error)
	Drones(ctx context.Context, q types.DroneQuery) (types.DroneList, error)
}

const (
	defaultMaxTopN       = 50
	defaultMaxBodyBytes  = 32 << 20
	contentTypeJSON      = "application/json; charset=utf-8"
	snapshotPathRevision = "revision"
)

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithMaxTopN caps ?limit on ranking endpoints.
func WithMaxTopN(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxTopN = n
		}
	}
}

// WithLogger sets the logger used for handler panics.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBodyBytes caps the size of a snapshot upload.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxTopN      int
	maxBodyBytes int64
	logger       logger.Logger

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	snapshotHandler  *SnapshotHandler
	conflictsHandler *ConflictsHandler
	missionsHandler  *MissionsHandler
	summaryHandler   *SummaryHandler
	dronesHandler    *DronesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{maxTopN: defaultMaxTopN, maxBodyBytes: defaultMaxBodyBytes, logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.snapshotHandler = NewSnapshotHandler(deps, s.maxBodyBytes)
	s.conflictsHandler = NewConflictsHandler(deps)
	s.missionsHandler = NewMissionsHandler(deps, s.maxTopN)
	s.summaryHandler = NewSummaryHandler(deps)
	s.dronesHandler = NewDronesHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.instrument("healthz", s.healthHandler.HandleHealth))
	mux.HandleFunc("GET /stats", s.instrument("stats", s.statsHandler.HandleStats))
	mux.HandleFunc("POST /snapshot", s.instrument("snapshot", s.snapshotHandler.HandlePostSnapshot))
	mux.HandleFunc("GET /snapshot", s.instrument("snapshot", s.snapshotHandler.HandleGetSnapshot))
	mux.HandleFunc("GET /snapshots/{"+snapshotPathRevision+"}",
		s.instrument("snapshots", s.snapshotHandler.HandleGetRevision))
	mux.HandleFunc("GET /conflicts", s.instrument("conflicts", s.conflictsHandler.HandleGetConflicts))
	mux.HandleFunc("GET /missions/{mission}", s.instrument("mission", s.missionsHandler.HandleGetMission))
	mux.HandleFunc("GET /missions/{mission}/candidates",
		s.instrument("candidates", s.missionsHandler.HandleGetCandidates))
	mux.HandleFunc("GET /missions/{mission}/candidates/{pilot}",
		s.instrument("assessment", s.missionsHandler.HandleGetAssessment))
	mux.HandleFunc("GET /urgent", s.instrument("urgent", s.missionsHandler.HandleGetUrgent))
	mux.HandleFunc("GET /summary", s.instrument("summary", s.summaryHandler.HandleGetSummary))
	mux.HandleFunc("GET /drones", s.instrument("drones", s.dronesHandler.HandleGetDrones))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// parseLimit reads ?limit. A missing value yields 0 so the service applies
// its default; values below 1, malformed or over-max values are rejected.
func parseLimit(r *http.Request, maxTopN int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)
	}
	if n > maxTopN {
		return 0, fmt.Errorf("%w: limit must not exceed %d", ErrBadRequest, maxTopN)
	}
	return n, nil
}

// parseDay reads ?date. A missing value is an absent date.
func parseDay(r *http.Request) (model.Date, error) {
	day := model.ParseDate(r.URL.Query().Get("date"))
	if day.IsUnknown() {
		return day, fmt.Errorf("%w: date must be %s", ErrBadRequest, model.DateLayout)
	}
	return day, nil
}
