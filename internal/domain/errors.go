package domain

import (
	"errors"
	"strings"
)

// ErrInvalidTrip marks a trip request rejected before any routing happens.
var ErrInvalidTrip = errors.New("invalid trip request")

// GeocodeError lists every trip address that could not be resolved.
type GeocodeError struct {
	Failed []string
}

func (e *GeocodeError) Error() string {
	var b strings.Builder
	b.WriteString("Unable to geocode the following addresses:\n")
	b.WriteString(strings.Join(e.Failed, "\n"))
	b.WriteString("\n\nPlease try:\n")
	b.WriteString("- Using more specific addresses (include city and state)\n")
	b.WriteString("- Using coordinates in format 'longitude, latitude'\n")
	b.WriteString("- Checking spelling")
	return b.String()
}
