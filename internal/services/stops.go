package services

import (
	"eld-log-service/internal/domain"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FuelStopLabel is the location text of a fueling entry.
func FuelStopLabel(mile float64) string {
	return fmt.Sprintf("Fuel Stop at %.0f miles", mile)
}

// BuildStops derives map stops from the simulated timeline.
//
// Rest stops are entries with a reason that are off duty or mention a rest
// or break; they are kept only when the entry carries a coordinate. Fuel
// stops are resolved through the entry's FuelStopIndex.
func BuildStops(entries []domain.LogEntry, fuelStops []domain.FuelStop) []domain.Stop {
	stops := []domain.Stop{}

	for _, e := range entries {
		if e.Reason == "" || e.FuelStopIndex != nil {
			continue
		}

		reason := strings.ToLower(e.Reason)
		typ := domain.StopOther
		if strings.Contains(reason, "rest") || strings.Contains(reason, "break") {
			typ = domain.StopRest
		}
		if typ != domain.StopRest && e.DutyStatus != domain.StatusOffDuty {
			continue
		}
		if e.Coordinates == nil {
			continue
		}

		stops = append(stops, domain.Stop{
			Type:          typ,
			Location:      *e.Coordinates,
			Time:          e.StartTime,
			DurationHours: e.Hours(),
			DutyStatus:    e.DutyStatus,
			Reason:        e.Reason,
		})
	}

	for _, e := range entries {
		if e.FuelStopIndex == nil {
			continue
		}
		i := *e.FuelStopIndex
		if i < 0 || i >= len(fuelStops) {
			continue
		}

		stops = append(stops, domain.Stop{
			Type:          domain.StopFuel,
			Location:      fuelStops[i].Location,
			Time:          e.StartTime,
			DurationHours: e.Hours(),
			DutyStatus:    domain.StatusOnDutyNotDriving,
			Reason:        domain.ReasonFueling,
		})
	}

	return stops
}

// BuildMarkers returns the start, pickup and dropoff pins followed by one pin
// per stop.
func BuildMarkers(waypoints []domain.Coordinates, stops []domain.Stop) []domain.Marker {
	at := func(i int) *domain.Coordinates {
		if i < 0 || i >= len(waypoints) {
			return nil
		}
		c := waypoints[i]
		return &c
	}

	markers := make([]domain.Marker, 0, 3+len(stops))
	markers = append(markers,
		domain.Marker{Type: "start", Location: at(0), Label: "Current Location"},
		domain.Marker{Type: "pickup", Location: at(1), Label: "Pickup"},
		domain.Marker{Type: "dropoff", Location: at(len(waypoints) - 1), Label: "Dropoff"},
	)

	title := cases.Title(language.English)
	for _, s := range stops {
		loc := s.Location
		label := s.Reason
		if label == "" {
			label = string(s.Type)
		}
		markers = append(markers, domain.Marker{
			Type:     string(s.Type),
			Location: &loc,
			Label:    title.String(label),
		})
	}

	return markers
}
