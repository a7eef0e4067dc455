package model

import "strings"

// PilotStatus is the roster state of a pilot.
type PilotStatus uint8

// Pilot statuses. PilotStatusOther holds any unrecognized source value.
const (
	PilotStatusOther PilotStatus = iota
	PilotAvailable
	PilotAssigned
	PilotOnLeave
)

func (s PilotStatus) String() string {
	switch s {
	case PilotAvailable:
		return "Available"
	case PilotAssigned:
		return "Assigned"
	case PilotOnLeave:
		return "On Leave"
	default:
		return "Other"
	}
}

// DroneStatus is the fleet state of a drone.
type DroneStatus uint8

// Drone statuses. DroneStatusOther holds any unrecognized source value.
const (
	DroneStatusOther DroneStatus = iota
	DroneAvailable
	DroneDeployed
	DroneMaintenance
)

func (s DroneStatus) String() string {
	switch s {
	case DroneAvailable:
		return "Available"
	case DroneDeployed:
		return "Deployed"
	case DroneMaintenance:
		return "Maintenance"
	default:
		return "Other"
	}
}

// Priority is a mission's urgency.
type Priority uint8

// Priorities. PriorityOther preserves unrecognized values (the raw text is kept on the mission).
const (
	PriorityOther Priority = iota
	PriorityNormal
	PriorityUrgent
)

func (p Priority) String() string {
	switch p {
	case PriorityNormal:
		return "Normal"
	case PriorityUrgent:
		return "Urgent"
	default:
		return "Other"
	}
}

// enumKey folds case, spaces, dashes and underscores so "On Leave",
// "on_leave" and "ONLEAVE" compare equal.
func enumKey(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

// ParsePilotStatus maps a source value to a status; ok is false for the Other bucket.
func ParsePilotStatus(s string) (PilotStatus, bool) {
	switch enumKey(s) {
	case "available":
		return PilotAvailable, true
	case "assigned":
		return PilotAssigned, true
	case "onleave", "leave":
		return PilotOnLeave, true
	}
	return PilotStatusOther, false
}

// ParseDroneStatus maps a source value to a status; ok is false for the Other bucket.
func ParseDroneStatus(s string) (DroneStatus, bool) {
	switch enumKey(s) {
	case "available":
		return DroneAvailable, true
	case "deployed":
		return DroneDeployed, true
	case "maintenance", "inmaintenance":
		return DroneMaintenance, true
	}
	return DroneStatusOther, false
}

// ParsePriority maps a source value to a priority; ok is false for the Other bucket.
func ParsePriority(s string) (Priority, bool) {
	switch enumKey(s) {
	case "normal", "standard":
		return PriorityNormal, true
	case "urgent":
		return PriorityUrgent, true
	}
	return PriorityOther, false
}
