package geo

import (
	"eld-log-service/internal/domain"
	"math"
	"regexp"
	"strconv"
)

var coordPattern = regexp.MustCompile(`(-?\d+\.?\d*),\s*(-?\d+\.?\d*)`)

// ParseCoordinates extracts a literal coordinate pair from an address string.
//
// "lat, lon" is assumed when the first number is a valid latitude and the
// second a valid longitude; otherwise "lon, lat" is tried. ok is false when
// no pair is present or the pair is out of range.
func ParseCoordinates(address string) (domain.Coordinates, bool) {
	m := coordPattern.FindStringSubmatch(address)
	if m == nil {
		return domain.Coordinates{}, false
	}

	a, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return domain.Coordinates{}, false
	}
	b, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return domain.Coordinates{}, false
	}

	switch {
	case validLat(a) && validLon(b):
		return domain.Coordinates{Lon: b, Lat: a}, true
	case validLon(a) && validLat(b):
		return domain.Coordinates{Lon: a, Lat: b}, true
	}
	return domain.Coordinates{}, false
}

func validLat(v float64) bool { return math.Abs(v) <= 90 }
func validLon(v float64) bool { return math.Abs(v) <= 180 }
