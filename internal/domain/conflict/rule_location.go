package conflict

import (
	"context"
	"fmt"

	"github.com/okian/flightdesk/internal/domain/model"
)

// NewLocationRule flags assigned pilots based somewhere other than the mission location.
func NewLocationRule() Rule { return locationRule{} }

type locationRule struct{}

func (locationRule) Kind() Kind { return KindLocationMismatch }

func (locationRule) Evaluate(_ context.Context, in Input) ([]Finding, []Skip) {
	var (
		findings []Finding
		skips    []Skip
	)
	for _, m := range in.Snapshot.Missions() {
		for _, p := range in.Snapshot.AssignedPilots(m) {
			if m.Location == "" || p.Location == "" {
				skips = append(skips, Skip{Kind: KindLocationMismatch, ResourceID: p.ID, MissionID: m.ID,
					Reason: "pilot or mission location missing"})
				continue
			}
			if model.EqualFold(p.Location, m.Location) {
				continue
			}
			findings = append(findings, Finding{
				Kind:             KindLocationMismatch,
				Severity:         SeverityMedium,
				ResourceIDs:      []string{p.ID},
				MissionID:        m.ID,
				ResourceLocation: p.Location,
				MissionLocation:  m.Location,
				Detail:           fmt.Sprintf("pilot %s is in %s but %s is in %s", p.ID, p.Location, m.ID, m.Location),
			})
		}
	}
	return findings, skips
}
