package normalize

// Header names of the tabular contract.
const (
	ColPilotID           = "pilot_id"
	ColDroneID           = "drone_id"
	ColMissionID         = "mission_id"
	ColProjectID         = "project_id"
	ColName              = "name"
	ColModel             = "model"
	ColClient            = "client"
	ColSkills            = "skills"
	ColCertifications    = "certifications"
	ColCapabilities      = "capabilities"
	ColRequiredSkills    = "required_skills"
	ColRequiredCerts     = "required_certs"
	ColLocation          = "location"
	ColStatus            = "status"
	ColPriority          = "priority"
	ColCurrentAssignment = "current_assignment"
	ColAvailableFrom     = "available_from"
	ColMaintenanceDue    = "maintenance_due"
	ColStartDate         = "start_date"
	ColEndDate           = "end_date"
	ColAssignedPilot     = "assigned_pilot"
	ColAssignedDrone     = "assigned_drone"
)
