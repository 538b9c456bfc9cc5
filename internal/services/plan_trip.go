package services

import (
	"context"
	"eld-log-service/internal/domain"
	"eld-log-service/internal/platform/obs"
	"eld-log-service/internal/ports"
	"eld-log-service/internal/timefmt"
	"fmt"
	"strings"
	"time"
)

const maxLocationLength = 500

type TripRequest struct {
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
	// Optional ISO-8601 start; empty or unparseable means now.
	StartTime string
}

// Validate checks the request fields and returns an error wrapping
// domain.ErrInvalidTrip listing every problem.
func (r TripRequest) Validate() error {
	var problems []string

	for _, f := range []struct{ name, val string }{
		{"current_location", r.CurrentLocation},
		{"pickup_location", r.PickupLocation},
		{"dropoff_location", r.DropoffLocation},
	} {
		switch v := strings.TrimSpace(f.val); {
		case v == "":
			problems = append(problems, f.name+" is required")
		case len([]rune(f.val)) > maxLocationLength:
			problems = append(problems, fmt.Sprintf("%s must be at most %d characters", f.name, maxLocationLength))
		}
	}

	if r.CurrentCycleUsed < 0 || r.CurrentCycleUsed > domain.MaxCycleHours {
		problems = append(problems, fmt.Sprintf("current_cycle_used must be between 0 and %.0f", domain.MaxCycleHours))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidTrip, strings.Join(problems, "; "))
	}
	return nil
}

// Rounded view of the route for display.
type RouteSummary struct {
	TotalDistanceMiles float64
	TotalDrivingHours  float64
	Segments           []domain.RouteSegment
}

type TripPlan struct {
	StartTime  time.Time
	Route      RouteSummary
	Stops      []domain.Stop
	LogEntries []domain.LogEntry
	DailyLogs  []domain.DailyLog
	Waypoints  []domain.Coordinates
	Polylines  []*domain.Geometry
	Markers    []domain.Marker
	FuelStops  []domain.FuelStop
}

// PlanTrip routes the trip, simulates the driver's timeline over it and
// assembles the log sheets and map data.
func PlanTrip(
	ctx context.Context,
	req TripRequest,
	provider ports.RouteProvider,
	now func() time.Time,
) (_ *TripPlan, err error) {
	defer obs.Time(ctx, "trip.PlanTrip")(&err)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := timefmt.Parse(req.StartTime, now)

	route, err := provider.PlanRoute(ctx, req.CurrentLocation, req.PickupLocation, req.DropoffLocation)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	entries := Simulate(route.Segments, route.FuelStops, req.CurrentCycleUsed, start)
	dailyLogs := BuildDailyLogs(entries, req.CurrentLocation, req.PickupLocation, req.DropoffLocation)
	stops := BuildStops(entries, route.FuelStops)

	return &TripPlan{
		StartTime:  start,
		Route:      summarize(route),
		Stops:      stops,
		LogEntries: entries,
		DailyLogs:  dailyLogs,
		Waypoints:  route.Waypoints,
		Polylines:  route.Polylines,
		Markers:    BuildMarkers(route.Waypoints, stops),
		FuelStops:  route.FuelStops,
	}, nil
}

func summarize(route *domain.Route) RouteSummary {
	segs := make([]domain.RouteSegment, 0, len(route.Segments))
	for _, s := range route.Segments {
		segs = append(segs, domain.RouteSegment{
			From:             s.From,
			To:               s.To,
			DistanceMiles:    round(s.DistanceMiles, 2),
			DrivingTimeHours: round(s.DrivingTimeHours, 2),
			Coordinates:      s.Coordinates,
		})
	}

	return RouteSummary{
		TotalDistanceMiles: round(route.TotalDistanceMiles, 2),
		TotalDrivingHours:  round(route.TotalDrivingHours, 2),
		Segments:           segs,
	}
}
