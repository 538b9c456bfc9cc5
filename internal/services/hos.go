package services

import (
	"eld-log-service/internal/domain"
	"math"
)

type ComplianceReport struct {
	Compliant        bool
	Violations       []string
	RemainingDriving float64
	RemainingWindow  float64
	RemainingCycle   float64
}

// CheckCompliance reports which HOS limits the given hours exceed and how
// much room is left under each. Reaching a limit exactly is compliant.
func CheckCompliance(drivingHours, windowHours, cycleUsed float64) ComplianceReport {
	violations := []string{}
	if drivingHours > domain.MaxDrivingHours {
		violations = append(violations, "Exceeds 11-hour driving limit")
	}
	if windowHours > domain.MaxDutyWindowHours {
		violations = append(violations, "Exceeds 14-hour driving window")
	}
	if cycleUsed > domain.MaxCycleHours {
		violations = append(violations, "Exceeds 70-hour/8-day cycle limit")
	}

	return ComplianceReport{
		Compliant:        len(violations) == 0,
		Violations:       violations,
		RemainingDriving: math.Max(0, domain.MaxDrivingHours-drivingHours),
		RemainingWindow:  math.Max(0, domain.MaxDutyWindowHours-windowHours),
		RemainingCycle:   math.Max(0, domain.MaxCycleHours-cycleUsed),
	}
}

type RestRequirement struct {
	DutyStatus    domain.DutyStatus
	DurationHours float64
	Reason        string
}

// RequiredRest returns the rest the driver must take before driving again,
// or nil when none is due.
func RequiredRest(drivingHours, windowHours float64) *RestRequirement {
	switch {
	case drivingHours >= domain.MaxDrivingHours || windowHours >= domain.MaxDutyWindowHours:
		return &RestRequirement{
			DutyStatus:    domain.StatusOffDuty,
			DurationHours: domain.MinOffDutyHours,
			Reason:        "Required 10-hour rest period",
		}
	case drivingHours >= domain.BreakRequiredAfterHours:
		return &RestRequirement{
			DutyStatus:    domain.StatusOffDuty,
			DurationHours: domain.BreakDurationHours,
			Reason:        "Required 30-minute break",
		}
	}
	return nil
}
