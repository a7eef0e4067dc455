package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/flightdesk/internal/domain/model"
	"github.com/okian/flightdesk/internal/domain/types"
)

// SnapshotDependencies defines the interface for snapshot operations.
type SnapshotDependencies interface {
	LoadSnapshot(ctx context.Context, raw model.RawSnapshot) (types.RevisionInfo, error)
	Current(ctx context.Context) (types.RevisionInfo, error)
	Revision(ctx context.Context, id string) (types.RevisionInfo, error)
}

// SnapshotHandler handles snapshot uploads and revision queries.
type SnapshotHandler struct {
	deps         SnapshotDependencies
	maxBodyBytes int64
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(deps SnapshotDependencies, maxBodyBytes int64) *SnapshotHandler {
	return &SnapshotHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandlePostSnapshot handles POST /snapshot requests.
func (h *SnapshotHandler) HandlePostSnapshot(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_snapshot"
	var raw model.RawSnapshot
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if raw.Pilots == nil && raw.Drones == nil && raw.Missions == nil {
		fail(w, WrapKind(op, ErrBadRequest, errors.New("snapshot has no pilots, drones or missions")))
		return
	}
	info, err := h.deps.LoadSnapshot(r.Context(), raw)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// HandleGetSnapshot handles GET /snapshot requests.
func (h *SnapshotHandler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	info, err := h.deps.Current(r.Context())
	if err != nil {
		fail(w, Wrap("api.get_snapshot", err))
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// HandleGetRevision handles GET /snapshots/{revision} requests.
func (h *SnapshotHandler) HandleGetRevision(w http.ResponseWriter, r *http.Request) {
	info, err := h.deps.Revision(r.Context(), r.PathValue(snapshotPathRevision))
	if err != nil {
		fail(w, Wrap("api.get_revision", err))
		return
	}
	writeJSON(w, http.StatusOK, info)
}
