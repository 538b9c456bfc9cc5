package domain

// Polyline geometry in GeoJSON LineString order ([lon, lat] vertices).
type Geometry struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// Represents a single leg of a trip as produced by the route provider.
// Segments are immutable once built; the simulation trusts the distance
// and driving time as given.
type RouteSegment struct {
	From             string      `json:"from"`
	To               string      `json:"to"`
	DistanceMiles    float64     `json:"distance_miles"`
	DrivingTimeHours float64     `json:"driving_time_hours"`
	Coordinates      [][]float64 `json:"coordinates"`
	Geometry         *Geometry   `json:"geometry,omitempty"`
}

// Endpoints returns the two-point fallback coordinates of the segment.
func (s RouteSegment) Endpoints() (Coordinates, Coordinates, bool) {
	if len(s.Coordinates) != 2 {
		return Coordinates{}, Coordinates{}, false
	}
	a, okA := CoordsFromList(s.Coordinates[0])
	b, okB := CoordsFromList(s.Coordinates[1])
	return a, b, okA && okB
}

// A point on the route that requires refueling.
// MileMarker is measured along the cumulative route and is ascending
// across the list the provider returns.
type FuelStop struct {
	Index        int         `json:"index"`
	MileMarker   float64     `json:"mile_marker"`
	Location     Coordinates `json:"location"`
	SegmentIndex int         `json:"segment_index"`
}

// Represents the resolved trip route: the immutable input snapshot of a
// simulation run.
type Route struct {
	Segments           []RouteSegment `json:"segments"`
	TotalDistanceMiles float64        `json:"total_distance_miles"`
	TotalDrivingHours  float64        `json:"total_driving_time_hours"`
	Waypoints          []Coordinates  `json:"waypoints"`
	Polylines          []*Geometry    `json:"polylines"`
	FuelStops          []FuelStop     `json:"fuel_stops"`
}
