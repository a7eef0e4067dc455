// Package normalize turns raw tabular rows into typed, immutable snapshots.
//
// Normalization never fails: malformed values are degraded (unknown dates,
// the Other status/priority bucket) and reported as warnings.
package normalize

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/flightdesk/internal/domain/dedupe"
	"github.com/okian/flightdesk/internal/domain/model"
)

// Entity names used in warnings.
const (
	EntityPilot   = "pilot"
	EntityDrone   = "drone"
	EntityMission = "mission"
)

// Warning describes a recoverable data-quality problem in one row.
type Warning struct {
	Entity   string `json:"entity"`
	Row      int    `json:"row"` // 1-based, header excluded
	RecordID string `json:"record_id,omitempty"`
	Field    string `json:"field,omitempty"`
	Value    string `json:"value,omitempty"`
	Message  string `json:"message"`
}

func (w Warning) String() string {
	id := w.RecordID
	if id == "" {
		id = "?"
	}
	if w.Field == "" {
		return fmt.Sprintf("%s row %d (%s): %s", w.Entity, w.Row, id, w.Message)
	}
	return fmt.Sprintf("%s row %d (%s) %s=%q: %s", w.Entity, w.Row, id, w.Field, w.Value, w.Message)
}

// Result is the output of Normalize.
type Result struct {
	Snapshot *model.Snapshot
	Warnings []Warning
}

// placeholders mark an empty assignment cell in the source sheets.
var placeholders = map[string]struct{}{
	"": {}, "-": {}, "–": {}, "—": {}, "none": {}, "n/a": {}, "na": {}, "null": {},
}

func assignment(v string) string {
	if _, ok := placeholders[strings.ToLower(strings.TrimSpace(v))]; ok {
		return ""
	}
	return strings.TrimSpace(v)
}

type collector struct {
	warnings []Warning
}

func (c *collector) add(w Warning) { c.warnings = append(c.warnings, w) }

func (c *collector) date(entity string, row int, id string, r model.Row, field string) model.Date {
	d := model.ParseDate(r.Get(field))
	if d.IsUnknown() {
		c.add(Warning{Entity: entity, Row: row, RecordID: id, Field: field, Value: d.Raw(),
			Message: "unparsable date, expected YYYY-MM-DD; treated as unknown"})
	}
	return d
}

func (c *collector) unrecognized(entity string, row int, id, field, value string) {
	c.add(Warning{Entity: entity, Row: row, RecordID: id, Field: field, Value: value,
		Message: "unrecognized value; kept in the other bucket"})
}

// Normalize converts raw rows into a Snapshot. Rows without an identifier and
// rows repeating an earlier identifier are dropped with a warning.
func Normalize(ctx context.Context, raw model.RawSnapshot) Result {
	c := &collector{}
	pilots := normalizePilots(ctx, c, raw.Pilots)
	drones := normalizeDrones(ctx, c, raw.Drones)
	missions := normalizeMissions(ctx, c, raw.Missions)
	return Result{
		Snapshot: model.NewSnapshot(pilots, drones, missions),
		Warnings: c.warnings,
	}
}

// admit checks the identifier of a row and records it.
func (c *collector) admit(ctx context.Context, seen dedupe.Deduper, entity string, row int, field, id string) bool {
	if id == "" {
		c.add(Warning{Entity: entity, Row: row, Field: field, Message: "missing identifier; row skipped"})
		return false
	}
	if seen.SeenAndRecord(ctx, id) {
		c.add(Warning{Entity: entity, Row: row, RecordID: id, Field: field, Value: id,
			Message: "duplicate identifier; row skipped"})
		return false
	}
	return true
}

func normalizePilots(ctx context.Context, c *collector, rows []model.Row) []model.Pilot {
	seen := dedupe.NewInMemoryDeduper()
	out := make([]model.Pilot, 0, len(rows))
	for i, r := range rows {
		n, id := i+1, r.Get(ColPilotID)
		if !c.admit(ctx, seen, EntityPilot, n, ColPilotID, id) {
			continue
		}
		p := model.Pilot{
			ID:                id,
			Name:              r.Get(ColName),
			Skills:            model.ParseSet(r[ColSkills]),
			Certifications:    model.ParseSet(r[ColCertifications]),
			Location:          r.Get(ColLocation),
			StatusRaw:         r.Get(ColStatus),
			CurrentAssignment: assignment(r[ColCurrentAssignment]),
			Available:         c.date(EntityPilot, n, id, r, ColAvailableFrom),
		}
		var ok bool
		if p.Status, ok = model.ParsePilotStatus(p.StatusRaw); !ok && p.StatusRaw != "" {
			c.unrecognized(EntityPilot, n, id, ColStatus, p.StatusRaw)
		}
		out = append(out, p)
	}
	return out
}

func normalizeDrones(ctx context.Context, c *collector, rows []model.Row) []model.Drone {
	seen := dedupe.NewInMemoryDeduper()
	out := make([]model.Drone, 0, len(rows))
	for i, r := range rows {
		n, id := i+1, r.Get(ColDroneID)
		if !c.admit(ctx, seen, EntityDrone, n, ColDroneID, id) {
			continue
		}
		d := model.Drone{
			ID:                id,
			Model:             r.Get(ColModel),
			Capabilities:      model.ParseSet(r[ColCapabilities]),
			Location:          r.Get(ColLocation),
			StatusRaw:         r.Get(ColStatus),
			MaintenanceDue:    c.date(EntityDrone, n, id, r, ColMaintenanceDue),
			CurrentAssignment: assignment(r[ColCurrentAssignment]),
		}
		var ok bool
		if d.Status, ok = model.ParseDroneStatus(d.StatusRaw); !ok && d.StatusRaw != "" {
			c.unrecognized(EntityDrone, n, id, ColStatus, d.StatusRaw)
		}
		out = append(out, d)
	}
	return out
}

func normalizeMissions(ctx context.Context, c *collector, rows []model.Row) []model.Mission {
	seen := dedupe.NewInMemoryDeduper()
	out := make([]model.Mission, 0, len(rows))
	for i, r := range rows {
		n := i + 1
		project := r.Get(ColProjectID)
		id, field := r.Get(ColMissionID), ColMissionID
		if id == "" {
			id, field = project, ColProjectID
		}
		if !c.admit(ctx, seen, EntityMission, n, field, id) {
			continue
		}
		m := model.Mission{
			ID:             id,
			ProjectID:      project,
			Client:         r.Get(ColClient),
			RequiredSkills: model.ParseSet(r[ColRequiredSkills]),
			RequiredCerts:  model.ParseSet(r[ColRequiredCerts]),
			Location:       r.Get(ColLocation),
			Start:          c.date(EntityMission, n, id, r, ColStartDate),
			End:            c.date(EntityMission, n, id, r, ColEndDate),
			PriorityRaw:    r.Get(ColPriority),
			AssignedPilot:  assignment(r[ColAssignedPilot]),
			AssignedDrone:  assignment(r[ColAssignedDrone]),
		}
		if m.PriorityRaw == "" {
			m.Priority = model.PriorityNormal
		} else {
			var ok bool
			if m.Priority, ok = model.ParsePriority(m.PriorityRaw); !ok {
				c.unrecognized(EntityMission, n, id, ColPriority, m.PriorityRaw)
			}
		}
		if m.Start.IsKnown() && m.End.IsKnown() && m.End.Compare(m.Start) < 0 {
			c.add(Warning{Entity: EntityMission, Row: n, RecordID: id, Field: ColEndDate, Value: m.End.String(),
				Message: "end_date before start_date"})
		}
		out = append(out, m)
	}
	return out
}
