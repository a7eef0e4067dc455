package conflict

import (
	"context"
	"fmt"
)

// NewDoubleBookingRule flags resources linked to two missions whose windows overlap.
// A resource is linked to a mission through its current assignment or through the
// mission's assigned pilot/drone column; each overlapping pair is reported once.
func NewDoubleBookingRule() Rule { return doubleBookingRule{} }

type doubleBookingRule struct{}

func (doubleBookingRule) Kind() Kind { return KindDoubleBooking }

func (doubleBookingRule) Evaluate(_ context.Context, in Input) ([]Finding, []Skip) {
	var (
		findings []Finding
		skips    []Skip
	)
	for _, r := range in.Snapshot.Resources() {
		linked := in.Snapshot.LinkedMissions(r)
		for i := 0; i < len(linked); i++ {
			for j := i + 1; j < len(linked); j++ {
				a, b := linked[i], linked[j]
				overlap, ok := a.Window().Overlaps(b.Window())
				if !ok {
					skips = append(skips, Skip{
						Kind:       KindDoubleBooking,
						ResourceID: r.ResourceID(),
						MissionID:  a.ID,
						Reason:     fmt.Sprintf("window of %s or %s has an unknown or missing date", a.ID, b.ID),
					})
					continue
				}
				if !overlap {
					continue
				}
				shared := a.Window().Intersect(b.Window())
				findings = append(findings, Finding{
					Kind:             KindDoubleBooking,
					Severity:         SeverityHigh,
					ResourceIDs:      []string{r.ResourceID()},
					MissionID:        a.ID,
					RelatedMissionID: b.ID,
					Overlap:          &shared,
					Detail: fmt.Sprintf("%s %s is booked on %s and %s, overlapping %s to %s",
						r.ResourceKind(), r.ResourceID(), a.ID, b.ID, shared.Start, shared.EffectiveEnd()),
				})
			}
		}
	}
	return findings, skips
}

