// Package availability decides whether a pilot or drone is free for a mission window.
package availability

import (
	"fmt"
	"strings"

	"github.com/okian/flightdesk/internal/domain/model"
)

// Result is the outcome of an availability check. A caveat means the check
// could not be completed from the data and the resource was assumed free.
type Result struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Caveat    string `json:"caveat,omitempty"`
}

// Checker evaluates resource availability.
type Checker interface {
	Check(r model.Resource, w model.Window) Result
}

// MissionLookup resolves mission ids; *model.Snapshot satisfies it.
type MissionLookup interface {
	Mission(id string) (model.Mission, bool)
}

// Evaluator implements Checker against one snapshot's missions.
type Evaluator struct {
	missions MissionLookup
}

// NewEvaluator creates an evaluator resolving assignments through missions.
func NewEvaluator(missions MissionLookup) *Evaluator {
	return &Evaluator{missions: missions}
}

// Check runs, in order: the blocking-status test, the overlap test against the
// resource's current assignment, and the available-from test. Unknown or missing
// dates never make a resource unavailable; they are reported as caveats.
func (e *Evaluator) Check(r model.Resource, w model.Window) Result {
	if r.Blocked() {
		return Result{Available: false, Reason: r.StatusLabel()}
	}

	var caveats []string
	own := w.MissionID != "" && r.Assignment() == w.MissionID

	if a := r.Assignment(); a != "" && !own {
		assigned, found := e.missions.Mission(a)
		switch {
		case !found:
			caveats = append(caveats, fmt.Sprintf("assignment %s not in snapshot", a))
		default:
			overlap, ok := assigned.Window().Overlaps(w)
			if !ok {
				caveats = append(caveats, fmt.Sprintf("overlap with %s not evaluated: date unknown or missing", a))
			} else if overlap {
				return Result{Available: false, Reason: "double-booked with " + a}
			}
		}
	}

	// The available-from day of an assigned resource is typically its own
	// mission's end, so it only applies to other windows.
	if from := r.AvailableFrom(); !own && !from.IsAbsent() {
		switch {
		case from.IsUnknown() || !w.Start.IsKnown():
			caveats = append(caveats, "available-from not evaluated: date unknown or missing")
		case from.Compare(w.Start) > 0:
			return Result{Available: false, Reason: "available from " + from.String()}
		}
	}

	return Result{Available: true, Caveat: strings.Join(caveats, "; ")}
}
