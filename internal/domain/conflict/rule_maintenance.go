package conflict

import (
	"context"
	"fmt"
)

// NewMaintenanceRule flags assigned drones whose maintenance is due on or
// before the mission start, or within lookaheadDays after it.
func NewMaintenanceRule(lookaheadDays int) Rule {
	if lookaheadDays < 0 {
		lookaheadDays = 0
	}
	return maintenanceRule{lookahead: lookaheadDays}
}

type maintenanceRule struct {
	lookahead int
}

func (maintenanceRule) Kind() Kind { return KindMaintenanceRequired }

func (r maintenanceRule) Evaluate(_ context.Context, in Input) ([]Finding, []Skip) {
	var (
		findings []Finding
		skips    []Skip
	)
	for _, m := range in.Snapshot.Missions() {
		for _, d := range in.Snapshot.AssignedDrones(m) {
			due := d.MaintenanceDue
			if due.IsAbsent() {
				continue // maintenance not tracked for this drone
			}
			if !due.IsKnown() || !m.Start.IsKnown() {
				skips = append(skips, Skip{Kind: KindMaintenanceRequired, ResourceID: d.ID, MissionID: m.ID,
					Reason: "maintenance-due or mission start date unknown or missing"})
				continue
			}
			if due.Compare(m.Start.AddDays(r.lookahead)) > 0 {
				continue
			}
			findings = append(findings, Finding{
				Kind:           KindMaintenanceRequired,
				Severity:       SeverityHigh,
				ResourceIDs:    []string{d.ID},
				MissionID:      m.ID,
				MaintenanceDue: datePtr(due),
				MissionStart:   datePtr(m.Start),
				Detail: fmt.Sprintf("drone %s maintenance is due %s, mission %s starts %s",
					d.ID, due, m.ID, m.Start),
			})
		}
	}
	return findings, skips
}
