package dto

type HOSCheckRequest struct {
	DrivingHours float64 `json:"driving_hours"`
	WindowHours  float64 `json:"window_hours"`
	CycleUsed    float64 `json:"cycle_used"`
}

type RestRequirementResponse struct {
	DutyStatus    string  `json:"duty_status"`
	DurationHours float64 `json:"duration_hours"`
	Reason        string  `json:"reason"`
}

type HOSCheckResponse struct {
	Compliant             bool                     `json:"compliant"`
	Violations            []string                 `json:"violations"`
	RemainingDrivingHours float64                  `json:"remaining_driving_hours"`
	RemainingWindowHours  float64                  `json:"remaining_window_hours"`
	RemainingCycleHours   float64                  `json:"remaining_cycle_hours"`
	RequiredRest          *RestRequirementResponse `json:"required_rest"`
}
