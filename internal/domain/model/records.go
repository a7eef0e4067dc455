// Package model contains the typed records the scheduling engine operates on.
package model

// ResourceKind names the type of a schedulable resource.
type ResourceKind string

// Resource kinds.
const (
	KindPilot ResourceKind = "pilot"
	KindDrone ResourceKind = "drone"
)

// Resource is a pilot or drone as seen by the availability evaluator.
type Resource interface {
	ResourceID() string
	ResourceKind() ResourceKind
	// Assignment returns the current mission id, or "" when unassigned.
	Assignment() string
	// Blocked reports a status that rules out any assignment (on leave, maintenance).
	Blocked() bool
	// StatusLabel is the display form of the status, preserving unrecognized source values.
	StatusLabel() string
	// AvailableFrom is the first day the resource can start new work, if tracked.
	AvailableFrom() Date
}

// Pilot is a normalized roster entry.
type Pilot struct {
	ID                string      `json:"pilot_id"`
	Name              string      `json:"name"`
	Skills            Set         `json:"skills"`
	Certifications    Set         `json:"certifications"`
	Location          string      `json:"location"`
	Status            PilotStatus `json:"-"`
	StatusRaw         string      `json:"status"`
	CurrentAssignment string      `json:"current_assignment,omitempty"`
	Available         Date        `json:"available_from"`
}

func (p Pilot) ResourceID() string         { return p.ID }
func (p Pilot) ResourceKind() ResourceKind { return KindPilot }
func (p Pilot) Assignment() string         { return p.CurrentAssignment }
func (p Pilot) Blocked() bool              { return p.Status == PilotOnLeave }
func (p Pilot) AvailableFrom() Date        { return p.Available }

func (p Pilot) StatusLabel() string {
	if p.Status == PilotStatusOther && p.StatusRaw != "" {
		return p.StatusRaw
	}
	return p.Status.String()
}

// Drone is a normalized fleet entry.
type Drone struct {
	ID                string      `json:"drone_id"`
	Model             string      `json:"model"`
	Capabilities      Set         `json:"capabilities"`
	Location          string      `json:"location"`
	Status            DroneStatus `json:"-"`
	StatusRaw         string      `json:"status"`
	MaintenanceDue    Date        `json:"maintenance_due"`
	CurrentAssignment string      `json:"current_assignment,omitempty"`
}

func (d Drone) ResourceID() string         { return d.ID }
func (d Drone) ResourceKind() ResourceKind { return KindDrone }
func (d Drone) Assignment() string         { return d.CurrentAssignment }
func (d Drone) Blocked() bool              { return d.Status == DroneMaintenance }
func (d Drone) AvailableFrom() Date        { return Date{} }

func (d Drone) StatusLabel() string {
	if d.Status == DroneStatusOther && d.StatusRaw != "" {
		return d.StatusRaw
	}
	return d.Status.String()
}

// Mission is a normalized mission (project) entry.
type Mission struct {
	ID             string   `json:"mission_id"`
	ProjectID      string   `json:"project_id"`
	Client         string   `json:"client,omitempty"`
	RequiredSkills Set      `json:"required_skills"`
	RequiredCerts  Set      `json:"required_certs"`
	Location       string   `json:"location"`
	Start          Date     `json:"start_date"`
	End            Date     `json:"end_date"`
	Priority       Priority `json:"-"`
	PriorityRaw    string   `json:"priority"`
	AssignedPilot  string   `json:"assigned_pilot,omitempty"`
	AssignedDrone  string   `json:"assigned_drone,omitempty"`
}

// Window returns the mission's day range.
func (m Mission) Window() Window {
	return Window{MissionID: m.ID, Start: m.Start, End: m.End}
}

func (m Mission) Urgent() bool { return m.Priority == PriorityUrgent }

// LinkedTo reports whether the resource is tied to m from either side:
// its current assignment or the mission's assigned pilot/drone column.
func (m Mission) LinkedTo(r Resource) bool {
	if r.Assignment() == m.ID {
		return true
	}
	switch r.ResourceKind() {
	case KindPilot:
		return m.AssignedPilot != "" && m.AssignedPilot == r.ResourceID()
	case KindDrone:
		return m.AssignedDrone != "" && m.AssignedDrone == r.ResourceID()
	}
	return false
}
