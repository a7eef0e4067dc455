package api

import (
	"context"
	"net/http"

	"github.com/okian/flightdesk/internal/domain/model"
	"github.com/okian/flightdesk/internal/domain/summary"
)

// SummaryDependencies defines the interface for snapshot summaries.
type SummaryDependencies interface {
	Summary(ctx context.Context, day model.Date) (summary.Summary, error)
}

// SummaryHandler handles summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /summary[?date=YYYY-MM-DD] requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	day, err := parseDay(r)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	sum, err := h.deps.Summary(r.Context(), day)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
