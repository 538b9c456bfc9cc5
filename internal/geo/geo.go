// Package geo samples positions along route geometry.
//
// All functions are pure. Coordinates use GeoJSON order ([lon, lat]).
package geo

import (
	"eld-log-service/internal/domain"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used for great-circle distances.
const EarthRadiusMiles = 3959.0

// MetersToMiles converts routing-provider meters to statute miles.
const MetersToMiles = 0.000621371

// HaversineMiles returns the great-circle distance between two points.
func HaversineMiles(a, b domain.Coordinates) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusMiles * math.Asin(math.Sqrt(h))
}

// Lerp interpolates linearly between a and b. ratio is not clamped.
func Lerp(a, b domain.Coordinates, ratio float64) domain.Coordinates {
	return domain.Coordinates{
		Lon: a.Lon + ratio*(b.Lon-a.Lon),
		Lat: a.Lat + ratio*(b.Lat-a.Lat),
	}
}

// PointAlong returns the coordinate at the given fraction (0..1) of the
// polyline's cumulative great-circle length.
//
// ok is false when the polyline has fewer than two vertices or zero length.
// A ratio beyond the end yields the last vertex.
func PointAlong(coords [][]float64, ratio float64) (domain.Coordinates, bool) {
	if len(coords) < 2 {
		return domain.Coordinates{}, false
	}

	pts := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		p, ok := domain.CoordsFromList(c)
		if !ok {
			return domain.Coordinates{}, false
		}
		pts = append(pts, p)
	}

	lengths := make([]float64, len(pts)-1)
	total := 0.0
	for i := 0; i < len(pts)-1; i++ {
		lengths[i] = HaversineMiles(pts[i], pts[i+1])
		total += lengths[i]
	}
	if total == 0 {
		return domain.Coordinates{}, false
	}

	target := total * ratio
	walked := 0.0
	for i, l := range lengths {
		if walked+l >= target {
			sub := 0.0
			if l > 0 {
				sub = (target - walked) / l
			}
			return Lerp(pts[i], pts[i+1], sub), true
		}
		walked += l
	}

	return pts[len(pts)-1], true
}

// OnSegment locates the point at ratio along a route segment, preferring its
// polyline geometry and falling back to its two endpoint coordinates.
func OnSegment(seg domain.RouteSegment, ratio float64) (domain.Coordinates, bool) {
	if seg.Geometry != nil {
		if p, ok := PointAlong(seg.Geometry.Coordinates, ratio); ok {
			return p, true
		}
	}

	a, b, ok := seg.Endpoints()
	if !ok {
		return domain.Coordinates{}, false
	}
	return Lerp(a, b, ratio), true
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
