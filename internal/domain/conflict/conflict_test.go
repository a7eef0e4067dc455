package conflict_test

import (
	"context"
	"testing"

	"github.com/okian/flightdesk/internal/domain/conflict"
	"github.com/okian/flightdesk/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func mission(id, start, end string) model.Mission {
	return model.Mission{ID: id, Start: model.ParseDate(start), End: model.ParseDate(end)}
}

func kinds(fs []conflict.Finding) []conflict.Kind {
	out := make([]conflict.Kind, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Kind)
	}
	return out
}

func TestDoubleBooking(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pilot booked on two overlapping missions", t, func() {
		m1 := mission("M1", "2024-01-10", "2024-01-12")
		m2 := mission("M2", "2024-01-11", "2024-01-15")
		m2.AssignedPilot = "P1"
		pilots := []model.Pilot{{ID: "P1", Status: model.PilotAssigned, CurrentAssignment: "M1"}}
		snap := model.NewSnapshot(pilots, nil, []model.Mission{m1, m2})

		findings := conflict.NewDetector().Detect(ctx, snap)

		Convey("Then exactly one double booking is reported", func() {
			So(findings, ShouldHaveLength, 1)
			f := findings[0]
			So(f.Kind, ShouldEqual, conflict.KindDoubleBooking)
			So(f.Severity, ShouldEqual, conflict.SeverityHigh)
			So(f.ResourceIDs, ShouldResemble, []string{"P1"})
			So(f.MissionID, ShouldEqual, "M1")
			So(f.RelatedMissionID, ShouldEqual, "M2")
			So(f.Overlap.Start.String(), ShouldEqual, "2024-01-11")
			So(f.Overlap.End.String(), ShouldEqual, "2024-01-12")
		})
	})

	Convey("Given a drone booked on adjacent missions", t, func() {
		m1 := mission("M1", "2024-01-10", "2024-01-12")
		m2 := mission("M2", "2024-01-13", "2024-01-15")
		m2.AssignedDrone = "D1"
		drones := []model.Drone{{ID: "D1", Status: model.DroneDeployed, CurrentAssignment: "M1"}}
		snap := model.NewSnapshot(nil, drones, []model.Mission{m1, m2})

		Convey("Then nothing is reported", func() {
			So(conflict.NewDetector().Detect(ctx, snap), ShouldBeEmpty)
		})
	})

	Convey("Given a pilot booked on a mission with an unknown start", t, func() {
		m1 := mission("M1", "2024-01-10", "2024-01-12")
		m2 := mission("M2", "TBD", "2024-01-15")
		m2.AssignedPilot = "P1"
		pilots := []model.Pilot{{ID: "P1", CurrentAssignment: "M1"}}
		snap := model.NewSnapshot(pilots, nil, []model.Mission{m1, m2})

		rep := conflict.NewDetector().Run(ctx, snap)

		Convey("Then the pair is skipped, not reported", func() {
			So(conflict.Filter(rep.Findings, conflict.KindDoubleBooking), ShouldBeEmpty)
			So(rep.Skips, ShouldNotBeEmpty)
			So(rep.Skips[0].Kind, ShouldEqual, conflict.KindDoubleBooking)
		})
	})
}

func TestSkillCertMismatch(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pilot missing a required skill and cert", t, func() {
		m := mission("M1", "2024-01-10", "2024-01-12")
		m.RequiredSkills = model.ParseSet("Night Ops, Thermal")
		m.RequiredCerts = model.ParseSet("DGCA")
		m.AssignedPilot = "P1"
		pilots := []model.Pilot{{ID: "P1", Skills: model.ParseSet("thermal")}}
		snap := model.NewSnapshot(pilots, nil, []model.Mission{m})

		findings := conflict.Filter(conflict.NewDetector().Detect(ctx, snap), conflict.KindSkillCertMismatch)

		Convey("Then the gaps are listed", func() {
			So(findings, ShouldHaveLength, 1)
			So(findings[0].MissingSkills, ShouldResemble, []string{"Night Ops"})
			So(findings[0].MissingCerts, ShouldResemble, []string{"DGCA"})
			So(findings[0].Detail, ShouldContainSubstring, "Night Ops")
		})
	})

	Convey("Given a mission naming a pilot absent from the roster", t, func() {
		m := mission("M1", "2024-01-10", "2024-01-12")
		m.RequiredSkills = model.ParseSet("Mapping")
		m.AssignedPilot = "P9"
		snap := model.NewSnapshot(nil, nil, []model.Mission{m})

		rep := conflict.NewDetector().Run(ctx, snap)

		Convey("Then the check is skipped", func() {
			So(rep.Findings, ShouldBeEmpty)
			So(rep.Skips, ShouldHaveLength, 1)
			So(rep.Skips[0].ResourceID, ShouldEqual, "P9")
		})
	})
}

func TestUnavailableAssignment(t *testing.T) {
	ctx := context.Background()

	Convey("Given resources whose status contradicts their assignment", t, func() {
		m := mission("M1", "2024-01-10", "2024-01-12")
		pilots := []model.Pilot{
			{ID: "P1", Status: model.PilotOnLeave, StatusRaw: "On Leave", CurrentAssignment: "M1"},
			{ID: "P2", Status: model.PilotAssigned, CurrentAssignment: "M1"},
			{ID: "P3", CurrentAssignment: "M9"},
		}
		drones := []model.Drone{{ID: "D1", Status: model.DroneMaintenance, CurrentAssignment: "M1"}}
		snap := model.NewSnapshot(pilots, drones, []model.Mission{m})

		rep := conflict.NewDetector().Run(ctx, snap)
		findings := conflict.Filter(rep.Findings, conflict.KindUnavailableAssignment)

		Convey("Then blocked resources are reported", func() {
			So(findings, ShouldHaveLength, 2)
			So(findings[0].ResourceIDs, ShouldResemble, []string{"D1"})
			So(findings[0].Status, ShouldEqual, "Maintenance")
			So(findings[1].ResourceIDs, ShouldResemble, []string{"P1"})
			So(findings[1].Detail, ShouldEqual, "pilot P1 is On Leave but assigned to M1")
		})

		Convey("Then unknown assignments are skipped", func() {
			var ids []string
			for _, s := range rep.Skips {
				if s.Kind == conflict.KindUnavailableAssignment {
					ids = append(ids, s.ResourceID)
				}
			}
			So(ids, ShouldResemble, []string{"P3"})
		})
	})
}

func TestUnavailableMissionSideLink(t *testing.T) {
	ctx := context.Background()

	Convey("Given blocked resources named only by the mission's assigned columns", t, func() {
		m := mission("M1", "2024-01-10", "2024-01-12")
		m.AssignedPilot = "P1"
		m.AssignedDrone = "D1"
		pilots := []model.Pilot{{ID: "P1", Status: model.PilotOnLeave, StatusRaw: "On Leave"}}
		drones := []model.Drone{{ID: "D1", Status: model.DroneMaintenance, StatusRaw: "Maintenance"}}
		snap := model.NewSnapshot(pilots, drones, []model.Mission{m})

		findings := conflict.Filter(conflict.NewDetector().Detect(ctx, snap), conflict.KindUnavailableAssignment)

		Convey("Then both are reported against the mission", func() {
			So(findings, ShouldHaveLength, 2)
			So(findings[0].ResourceIDs, ShouldResemble, []string{"D1"})
			So(findings[0].MissionID, ShouldEqual, "M1")
			So(findings[1].ResourceIDs, ShouldResemble, []string{"P1"})
			So(findings[1].Detail, ShouldEqual, "pilot P1 is On Leave but assigned to M1")
		})
	})

	Convey("Given a pilot named on a mission that starts before the pilot is available", t, func() {
		m := mission("M1", "2024-01-10", "2024-01-12")
		m.AssignedPilot = "P1"
		pilots := []model.Pilot{{ID: "P1", Status: model.PilotAvailable, Available: model.MustDate("2024-01-20")}}
		snap := model.NewSnapshot(pilots, nil, []model.Mission{m})

		findings := conflict.Filter(conflict.NewDetector().Detect(ctx, snap), conflict.KindUnavailableAssignment)

		Convey("Then the available-from date is reported", func() {
			So(findings, ShouldHaveLength, 1)
			So(findings[0].Detail, ShouldEqual, "pilot P1 is available from 2024-01-20 but assigned to M1")
		})
	})

	Convey("Given a pilot linked to two overlapping missions", t, func() {
		m1 := mission("M1", "2024-01-10", "2024-01-12")
		m2 := mission("M2", "2024-01-11", "2024-01-15")
		m2.AssignedPilot = "P1"
		pilots := []model.Pilot{{ID: "P1", Status: model.PilotAssigned, CurrentAssignment: "M1"}}
		snap := model.NewSnapshot(pilots, nil, []model.Mission{m1, m2})

		Convey("Then the overlap is left to the double-booking check", func() {
			findings := conflict.NewDetector().Detect(ctx, snap)
			So(kinds(findings), ShouldResemble, []conflict.Kind{conflict.KindDoubleBooking})
		})
	})
}

func TestLocationMismatch(t *testing.T) {
	ctx := context.Background()

	Convey("Given assigned pilots in different places", t, func() {
		m1 := mission("M1", "2024-01-10", "2024-01-10")
		m1.Location = "Mumbai"
		m2 := mission("M2", "2024-02-10", "2024-02-10")
		m2.Location = "bangalore"
		pilots := []model.Pilot{
			{ID: "P1", Location: "Bangalore", CurrentAssignment: "M1"},
			{ID: "P2", Location: " Bangalore ", CurrentAssignment: "M2"},
		}
		snap := model.NewSnapshot(pilots, nil, []model.Mission{m1, m2})

		findings := conflict.Filter(conflict.NewDetector().Detect(ctx, snap), conflict.KindLocationMismatch)

		Convey("Then only the real mismatch is reported at medium severity", func() {
			So(findings, ShouldHaveLength, 1)
			So(findings[0].Severity, ShouldEqual, conflict.SeverityMedium)
			So(findings[0].ResourceLocation, ShouldEqual, "Bangalore")
			So(findings[0].MissionLocation, ShouldEqual, "Mumbai")
		})
	})
}

func TestMaintenanceRequired(t *testing.T) {
	ctx := context.Background()

	build := func(due, start string) *model.Snapshot {
		m := mission("M1", start, start)
		drones := []model.Drone{{
			ID: "D1", Status: model.DroneDeployed, CurrentAssignment: "M1",
			MaintenanceDue: model.ParseDate(due),
		}}
		return model.NewSnapshot(nil, drones, []model.Mission{m})
	}

	Convey("Given a drone due for maintenance on the mission start", t, func() {
		findings := conflict.NewDetector().Detect(ctx, build("2024-02-01", "2024-02-01"))

		Convey("Then maintenance is required", func() {
			So(kinds(findings), ShouldResemble, []conflict.Kind{conflict.KindMaintenanceRequired})
			So(findings[0].MaintenanceDue.String(), ShouldEqual, "2024-02-01")
			So(findings[0].MissionStart.String(), ShouldEqual, "2024-02-01")
		})
	})

	Convey("Given a drone due after the mission start", t, func() {
		snap := build("2024-02-01", "2024-01-30")

		Convey("Then nothing is reported without lookahead", func() {
			So(conflict.NewDetector().Detect(ctx, snap), ShouldBeEmpty)
		})

		Convey("Then a lookahead covering the gap reports it", func() {
			d := conflict.NewDetector(conflict.WithMaintenanceLookahead(2))
			So(kinds(d.Detect(ctx, snap)), ShouldResemble, []conflict.Kind{conflict.KindMaintenanceRequired})
		})
	})

	Convey("Given an unknown maintenance date", t, func() {
		rep := conflict.NewDetector().Run(ctx, build("soon", "2024-01-30"))

		Convey("Then the drone is skipped", func() {
			So(rep.Findings, ShouldBeEmpty)
			So(rep.Skips, ShouldHaveLength, 1)
			So(rep.Skips[0].Kind, ShouldEqual, conflict.KindMaintenanceRequired)
		})
	})

	Convey("Given no maintenance date", t, func() {
		rep := conflict.NewDetector().Run(ctx, build("", "2024-01-30"))

		Convey("Then nothing is reported or skipped", func() {
			So(rep.Findings, ShouldBeEmpty)
			So(rep.Skips, ShouldBeEmpty)
		})
	})
}

func TestDetectorOrderingAndIdempotence(t *testing.T) {
	ctx := context.Background()

	Convey("Given a snapshot with several conflicts", t, func() {
		m1 := mission("M1", "2024-01-10", "2024-01-12")
		m1.Location = "Pune"
		m1.RequiredSkills = model.ParseSet("Mapping")
		m1.AssignedDrone = "D1"
		m2 := mission("M2", "2024-01-11", "2024-01-11")
		m2.AssignedPilot = "P1"
		pilots := []model.Pilot{{ID: "P1", Location: "Delhi", CurrentAssignment: "M1"}}
		drones := []model.Drone{{ID: "D1", Status: model.DroneMaintenance, MaintenanceDue: model.MustDate("2024-01-01")}}
		snap := model.NewSnapshot(pilots, drones, []model.Mission{m2, m1})

		d := conflict.NewDetector()
		first := d.Detect(ctx, snap)
		second := d.Detect(ctx, snap)

		Convey("Then findings follow the reporting order of kinds", func() {
			So(kinds(first), ShouldResemble, []conflict.Kind{
				conflict.KindDoubleBooking,
				conflict.KindSkillCertMismatch,
				conflict.KindLocationMismatch,
				conflict.KindMaintenanceRequired,
			})
		})

		Convey("Then repeated detection yields identical output", func() {
			So(second, ShouldResemble, first)
		})
	})

	Convey("Given an empty snapshot", t, func() {
		findings := conflict.NewDetector().Detect(ctx, model.NewSnapshot(nil, nil, nil))

		Convey("Then an empty non-nil list is returned", func() {
			So(findings, ShouldNotBeNil)
			So(findings, ShouldBeEmpty)
		})
	})
}

type staticRule struct{ kind conflict.Kind }

func (r staticRule) Kind() conflict.Kind { return r.kind }

func (r staticRule) Evaluate(context.Context, conflict.Input) ([]conflict.Finding, []conflict.Skip) {
	return []conflict.Finding{{Kind: r.kind, Severity: conflict.SeverityMedium, MissionID: "M0"}}, nil
}

func TestRegister(t *testing.T) {
	Convey("Given a detector with a custom rule", t, func() {
		d := conflict.NewDetector()
		d.Register(staticRule{kind: "Custom"})

		m := mission("M1", "2024-01-10", "2024-01-12")
		m.AssignedDrone = "D1"
		drones := []model.Drone{{ID: "D1", MaintenanceDue: model.MustDate("2024-01-01")}}
		findings := d.Detect(context.Background(), model.NewSnapshot(nil, drones, []model.Mission{m}))

		Convey("Then custom kinds sort after the built-in ones", func() {
			So(kinds(findings), ShouldResemble, []conflict.Kind{conflict.KindMaintenanceRequired, "Custom"})
		})
	})
}
