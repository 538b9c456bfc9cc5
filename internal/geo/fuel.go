package geo

import (
	"eld-log-service/internal/domain"
	"math"
)

// PlaceFuelStops returns a refueling point at every multiple of intervalMiles
// along the cumulative route, ascending by mile marker.
//
// A stop sitting exactly on a segment boundary belongs to the segment that
// ends there. Stops whose segment has no usable coordinates are dropped.
func PlaceFuelStops(segments []domain.RouteSegment, intervalMiles float64) []domain.FuelStop {
	stops := []domain.FuelStop{}
	if intervalMiles <= 0 {
		return stops
	}

	cumulative := 0.0
	for i, seg := range segments {
		segStart := cumulative
		cumulative += seg.DistanceMiles

		first := math.Floor(segStart/intervalMiles) + 1
		last := math.Floor(cumulative / intervalMiles)

		for k := first; k <= last; k++ {
			mile := k * intervalMiles
			into := mile - segStart
			if into <= 0 || into > seg.DistanceMiles {
				continue
			}

			p, ok := OnSegment(seg, into/seg.DistanceMiles)
			if !ok {
				continue
			}

			stops = append(stops, domain.FuelStop{
				Index:        len(stops),
				MileMarker:   mile,
				Location:     p,
				SegmentIndex: i,
			})
		}
	}

	return stops
}
