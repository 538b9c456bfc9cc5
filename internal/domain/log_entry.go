package domain

import "time"

// DutyStatus is one of the four ELD duty statuses.
type DutyStatus string

const (
	StatusDriving          DutyStatus = "driving"
	StatusOnDutyNotDriving DutyStatus = "on_duty_not_driving"
	StatusOffDuty          DutyStatus = "off_duty"
	// Defined for log-sheet completeness; the simulation never emits it.
	StatusSleeperBerth DutyStatus = "sleeper_berth"
)

// OnDuty reports whether time in this status counts against cycle limits.
func (s DutyStatus) OnDuty() bool {
	return s == StatusDriving || s == StatusOnDutyNotDriving
}

// Represents one atomic record on the driver's timeline.
// Entries are appended in chronological, non-overlapping order and End is
// never before Start. Miles is non-zero only for driving entries.
//
// FuelStopIndex points back into Route.FuelStops for fueling entries so
// callers never need to match fuel entries by their location text.
type LogEntry struct {
	StartTime     time.Time    `json:"start_time"`
	EndTime       time.Time    `json:"end_time"`
	DutyStatus    DutyStatus   `json:"duty_status"`
	Location      string       `json:"location"`
	Miles         float64      `json:"miles"`
	Reason        string       `json:"reason,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	FuelStopIndex *int         `json:"fuel_stop_index,omitempty"`
}

// Hours returns the entry duration in fractional hours.
func (e LogEntry) Hours() float64 {
	return e.EndTime.Sub(e.StartTime).Hours()
}
