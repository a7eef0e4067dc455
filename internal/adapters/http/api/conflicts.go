package api

import (
	"context"
	"net/http"

	"github.com/okian/flightdesk/internal/domain/types"
)

// ConflictsDependencies defines the interface for conflict detection.
type ConflictsDependencies interface {
	Conflicts(ctx context.Context, kind string) (types.ConflictReport, error)
}

// ConflictsHandler handles conflict requests.
type ConflictsHandler struct {
	deps ConflictsDependencies
}

// NewConflictsHandler creates a new conflicts handler.
func NewConflictsHandler(deps ConflictsDependencies) *ConflictsHandler {
	return &ConflictsHandler{deps: deps}
}

// HandleGetConflicts handles GET /conflicts[?kind=] requests.
func (h *ConflictsHandler) HandleGetConflicts(w http.ResponseWriter, r *http.Request) {
	rep, err := h.deps.Conflicts(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		fail(w, Wrap("api.get_conflicts", err))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
