package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Build Coordinates from a [lon, lat] pair. ok is false for anything else.
func CoordsFromList(p []float64) (Coordinates, bool) {
	if len(p) < 2 {
		return Coordinates{}, false
	}
	return Coordinates{Lon: p[0], Lat: p[1]}, true
}
