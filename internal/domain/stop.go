package domain

import "time"

type StopType string

const (
	StopRest  StopType = "rest"
	StopFuel  StopType = "fuel"
	StopOther StopType = "other"
)

// Represents a point on the map where the truck stands still.
type Stop struct {
	Type          StopType    `json:"type"`
	Location      Coordinates `json:"location"`
	Time          time.Time   `json:"time"`
	DurationHours float64     `json:"duration"`
	DutyStatus    DutyStatus  `json:"duty_status"`
	Reason        string      `json:"reason"`
}

// A labelled map pin.
type Marker struct {
	Type     string       `json:"type"`
	Location *Coordinates `json:"location"`
	Label    string       `json:"label"`
}
