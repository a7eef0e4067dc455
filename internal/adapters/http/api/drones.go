package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/flightdesk/internal/domain/types"
)

// DronesDependencies defines the interface for drone listings.
type DronesDependencies interface {
	Drones(ctx context.Context, q types.DroneQuery) (types.DroneList, error)
}

// DronesHandler handles drone availability requests.
type DronesHandler struct {
	deps DronesDependencies
}

// NewDronesHandler creates a new drones handler.
func NewDronesHandler(deps DronesDependencies) *DronesHandler {
	return &DronesHandler{deps: deps}
}

// HandleGetDrones handles GET /drones[?capability=&location=&mission=&date=&available=] requests.
func (h *DronesHandler) HandleGetDrones(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_drones"
	query := r.URL.Query()
	day, err := parseDay(r)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	q := types.DroneQuery{
		Capability: query.Get("capability"),
		Location:   query.Get("location"),
		MissionID:  query.Get("mission"),
		Day:        day,
	}
	if raw := query.Get("available"); raw != "" {
		q.AvailableOnly, err = strconv.ParseBool(raw)
		if err != nil {
			fail(w, WrapKind(op, ErrBadRequest, fmt.Errorf("available must be a boolean: %q", raw)))
			return
		}
	}
	list, err := h.deps.Drones(r.Context(), q)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, list)
}
