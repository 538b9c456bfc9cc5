package ports

import (
	"context"
	"eld-log-service/internal/domain"
)

// Contract for resolving a trip into route segments and fuel stops.
// A provider is invoked once per trip; the returned Route is treated as an
// immutable snapshot for the whole simulation run.
type RouteProvider interface {
	// Resolve the current -> pickup -> dropoff trip.
	PlanRoute(ctx context.Context, current, pickup, dropoff string) (*domain.Route, error)
}
