// Package types contains response shapes shared by the service and HTTP layers.
package types

import (
	"time"

	"github.com/okian/flightdesk/internal/domain/availability"
	"github.com/okian/flightdesk/internal/domain/conflict"
	"github.com/okian/flightdesk/internal/domain/model"
	"github.com/okian/flightdesk/internal/domain/normalize"
	"github.com/okian/flightdesk/internal/domain/scoring"
	"github.com/okian/flightdesk/internal/domain/summary"
)

// Counts are the record counts of a normalized snapshot.
type Counts struct {
	Pilots   int `json:"pilots"`
	Drones   int `json:"drones"`
	Missions int `json:"missions"`
}

// RevisionInfo describes a loaded snapshot revision.
type RevisionInfo struct {
	Revision string              `json:"revision"`
	LoadedAt time.Time           `json:"loaded_at"`
	Counts   Counts              `json:"counts"`
	Warnings []normalize.Warning `json:"warnings"`
}

// ConflictReport is the detection output for one revision.
type ConflictReport struct {
	Revision string             `json:"revision"`
	Findings []conflict.Finding `json:"findings"`
	Skipped  int                `json:"skipped"`
}

// CandidateList is the ranking output for one mission.
type CandidateList struct {
	Revision    string               `json:"revision"`
	MissionID   string               `json:"mission_id"`
	Suggestions []scoring.Suggestion `json:"suggestions"`
}

// UrgentMission pairs an urgent mission with its best candidates.
type UrgentMission struct {
	MissionID   string               `json:"mission_id"`
	Client      string               `json:"client,omitempty"`
	Location    string               `json:"location"`
	Start       model.Date           `json:"start_date"`
	End         model.Date           `json:"end_date"`
	Suggestions []scoring.Suggestion `json:"suggestions"`
}

// LinkedResource is a pilot or drone tied to a mission, with its
// availability for the mission window.
type LinkedResource struct {
	Kind         model.ResourceKind  `json:"kind"`
	ID           string              `json:"id"`
	Location     string              `json:"location"`
	Status       string              `json:"status"`
	Availability availability.Result `json:"availability"`
}

// MissionDetail is a mission, its phase on Day and the resources linked to it.
type MissionDetail struct {
	Revision string           `json:"revision"`
	Day      model.Date       `json:"day"`
	Phase    summary.Phase    `json:"phase"`
	Mission  model.Mission    `json:"mission"`
	Pilots   []LinkedResource `json:"pilots"`
	Drones   []LinkedResource `json:"drones"`
}

// DroneQuery selects drones for an availability listing. Empty fields match
// every drone. Without a mission, drones are checked against Day.
type DroneQuery struct {
	Capability    string
	Location      string
	MissionID     string
	Day           model.Date
	AvailableOnly bool
}

// DroneAvailability is one row of a drone listing.
type DroneAvailability struct {
	Drone        model.Drone         `json:"drone"`
	Availability availability.Result `json:"availability"`
}

// DroneList is the drone listing for one revision.
type DroneList struct {
	Revision string              `json:"revision"`
	Window   model.Window        `json:"window"`
	Drones   []DroneAvailability `json:"drones"`
}
