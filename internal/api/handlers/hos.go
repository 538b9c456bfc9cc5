package handlers

import (
	"eld-log-service/internal/api/dto"
	"eld-log-service/internal/services"
	"net/http"
)

// CheckHOS evaluates a driver's current hours against the HOS limits.
func CheckHOS(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.HOSCheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.DrivingHours < 0 || req.WindowHours < 0 || req.CycleUsed < 0 {
		writeError(w, r, http.StatusBadRequest, "hours must not be negative")
		return
	}

	report := services.CheckCompliance(req.DrivingHours, req.WindowHours, req.CycleUsed)
	res := dto.HOSCheckResponse{
		Compliant:             report.Compliant,
		Violations:            report.Violations,
		RemainingDrivingHours: report.RemainingDriving,
		RemainingWindowHours:  report.RemainingWindow,
		RemainingCycleHours:   report.RemainingCycle,
	}

	if rest := services.RequiredRest(req.DrivingHours, req.WindowHours); rest != nil {
		res.RequiredRest = &dto.RestRequirementResponse{
			DutyStatus:    string(rest.DutyStatus),
			DurationHours: rest.DurationHours,
			Reason:        rest.Reason,
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
