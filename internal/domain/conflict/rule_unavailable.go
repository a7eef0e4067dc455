package conflict

import (
	"context"
	"fmt"

	"github.com/okian/flightdesk/internal/domain/model"
)

// NewUnavailableAssignmentRule flags resources whose status contradicts a
// mission they are linked to, from either side of the link, as judged by the
// availability evaluator.
func NewUnavailableAssignmentRule() Rule { return unavailableAssignmentRule{} }

type unavailableAssignmentRule struct{}

func (unavailableAssignmentRule) Kind() Kind { return KindUnavailableAssignment }

// linkedTo presents a resource as assigned to mission. Overlap with the
// resource's own current assignment is reported by the double-booking rule.
type linkedTo struct {
	model.Resource
	mission string
}

func (l linkedTo) Assignment() string { return l.mission }

func (unavailableAssignmentRule) Evaluate(_ context.Context, in Input) ([]Finding, []Skip) {
	var (
		findings []Finding
		skips    []Skip
	)
	for _, r := range in.Snapshot.Resources() {
		a := r.Assignment()
		if a == "" {
			continue
		}
		if _, ok := in.Snapshot.Mission(a); !ok {
			skips = append(skips, Skip{Kind: KindUnavailableAssignment, ResourceID: r.ResourceID(), MissionID: a,
				Reason: "assigned mission not in snapshot"})
		}
	}

	for _, m := range in.Snapshot.Missions() {
		for _, r := range linkedResources(in.Snapshot, m) {
			view := r
			if a := r.Assignment(); a != "" && a != m.ID {
				view = linkedTo{Resource: r, mission: m.ID}
			}
			res := in.Availability.Check(view, m.Window())
			if res.Available {
				continue
			}
			findings = append(findings, Finding{
				Kind:        KindUnavailableAssignment,
				Severity:    SeverityHigh,
				ResourceIDs: []string{r.ResourceID()},
				MissionID:   m.ID,
				Status:      r.StatusLabel(),
				Detail:      fmt.Sprintf("%s %s is %s but assigned to %s", r.ResourceKind(), r.ResourceID(), res.Reason, m.ID),
			})
		}
	}
	return findings, skips
}

// linkedResources returns the pilots then drones tied to m.
func linkedResources(snap *model.Snapshot, m model.Mission) []model.Resource {
	var out []model.Resource
	for _, p := range snap.AssignedPilots(m) {
		out = append(out, p)
	}
	for _, d := range snap.AssignedDrones(m) {
		out = append(out, d)
	}
	return out
}
