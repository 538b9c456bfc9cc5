package domain

// Property-carrying driver limits (hours unless noted).
const (
	MaxDrivingHours          = 11.0
	MaxDutyWindowHours       = 14.0
	MinOffDutyHours          = 10.0
	MaxCycleHours            = 70.0
	AltCycleHours            = 60.0
	BreakRequiredAfterHours  = 8.0
	BreakDurationHours       = 0.5
	FuelStopDurationHours    = 0.5
	PickupDropoffHours       = 1.0
	DefaultFuelIntervalMiles = 1000.0
	DefaultAverageSpeedMPH   = 60.0
)

const (
	ReasonCycleLimit  = "70-hour cycle limit reached - cannot continue"
	ReasonWindowLimit = "14-hour window exceeded"
	ReasonDriveLimit  = "11-hour driving limit reached"
	ReasonBreak       = "30-minute break required"
	ReasonFueling     = "Fueling"
	ReasonPickup      = "Pickup"
	ReasonDropoff     = "Dropoff"
)
