// Package summary aggregates roster, fleet and mission counts for a reference day.
package summary

import (
	"github.com/okian/flightdesk/internal/domain/model"
)

// Phase is where a mission sits relative to a reference day.
type Phase string

// Mission phases.
const (
	PhaseActive    Phase = "Active"
	PhaseUpcoming  Phase = "Upcoming"
	PhaseCompleted Phase = "Completed"
	PhaseUnknown   Phase = "Unknown"
)

// MissionPhase classifies m against day. Missions with an unknown or missing
// start, or an unknown end, are PhaseUnknown; a missing end means a single-day mission.
func MissionPhase(m model.Mission, day model.Date) Phase {
	w := m.Window()
	if !w.Determinate() || !day.IsKnown() {
		return PhaseUnknown
	}
	switch {
	case day.Compare(w.Start) < 0:
		return PhaseUpcoming
	case day.Compare(w.EffectiveEnd()) > 0:
		return PhaseCompleted
	default:
		return PhaseActive
	}
}

// Pilots counts the roster.
type Pilots struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Assigned  int `json:"assigned"`
	OnLeave   int `json:"on_leave"`
}

// Drones counts the fleet.
type Drones struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Deployed    int `json:"deployed"`
	Maintenance int `json:"maintenance"`
}

// Missions counts missions by phase and priority.
type Missions struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Upcoming int `json:"upcoming"`
	Urgent   int `json:"urgent"`
	Unknown  int `json:"unknown_dates"`
}

// Summary is the overview of one snapshot.
type Summary struct {
	Day      model.Date `json:"day"`
	Pilots   Pilots     `json:"pilots"`
	Drones   Drones     `json:"drones"`
	Missions Missions   `json:"missions"`
}

// Build summarizes snap as of day. Pilots count as assigned when they hold a
// current assignment, whatever their status.
func Build(snap *model.Snapshot, day model.Date) Summary {
	s := Summary{Day: day}
	for _, p := range snap.Pilots() {
		s.Pilots.Total++
		switch p.Status {
		case model.PilotAvailable:
			s.Pilots.Available++
		case model.PilotOnLeave:
			s.Pilots.OnLeave++
		}
		if p.CurrentAssignment != "" {
			s.Pilots.Assigned++
		}
	}
	for _, d := range snap.Drones() {
		s.Drones.Total++
		switch d.Status {
		case model.DroneAvailable:
			s.Drones.Available++
		case model.DroneDeployed:
			s.Drones.Deployed++
		case model.DroneMaintenance:
			s.Drones.Maintenance++
		}
	}
	for _, m := range snap.Missions() {
		s.Missions.Total++
		if m.Urgent() {
			s.Missions.Urgent++
		}
		switch MissionPhase(m, day) {
		case PhaseActive:
			s.Missions.Active++
		case PhaseUpcoming:
			s.Missions.Upcoming++
		case PhaseUnknown:
			s.Missions.Unknown++
		}
	}
	return s
}
