package api

import (
	"context"
	"net/http"

	"github.com/okian/flightdesk/internal/domain/model"
	"github.com/okian/flightdesk/internal/domain/scoring"
	"github.com/okian/flightdesk/internal/domain/types"
)

// MissionsDependencies defines the interface for mission lookups and candidate ranking.
type MissionsDependencies interface {
	Mission(ctx context.Context, missionID string, day model.Date) (types.MissionDetail, error)
	Candidates(ctx context.Context, missionID string, topN int) (types.CandidateList, error)
	Assess(ctx context.Context, missionID, pilotID string) (scoring.Suggestion, error)
	Urgent(ctx context.Context, topN int) ([]types.UrgentMission, error)
}

// MissionsHandler handles ranking requests.
type MissionsHandler struct {
	deps    MissionsDependencies
	maxTopN int
}

// NewMissionsHandler creates a new missions handler.
func NewMissionsHandler(deps MissionsDependencies, maxTopN int) *MissionsHandler {
	return &MissionsHandler{deps: deps, maxTopN: maxTopN}
}

// HandleGetMission handles GET /missions/{mission}[?date=YYYY-MM-DD] requests.
func (h *MissionsHandler) HandleGetMission(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_mission"
	day, err := parseDay(r)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	d, err := h.deps.Mission(r.Context(), r.PathValue("mission"), day)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleGetCandidates handles GET /missions/{mission}/candidates?limit=N requests.
func (h *MissionsHandler) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_candidates"
	limit, err := parseLimit(r, h.maxTopN)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	list, err := h.deps.Candidates(r.Context(), r.PathValue("mission"), limit)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleGetAssessment handles GET /missions/{mission}/candidates/{pilot} requests.
func (h *MissionsHandler) HandleGetAssessment(w http.ResponseWriter, r *http.Request) {
	sg, err := h.deps.Assess(r.Context(), r.PathValue("mission"), r.PathValue("pilot"))
	if err != nil {
		fail(w, Wrap("api.get_assessment", err))
		return
	}
	writeJSON(w, http.StatusOK, sg)
}

// HandleGetUrgent handles GET /urgent?limit=N requests.
func (h *MissionsHandler) HandleGetUrgent(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_urgent"
	limit, err := parseLimit(r, h.maxTopN)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	urgent, err := h.deps.Urgent(r.Context(), limit)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, urgent)
}
