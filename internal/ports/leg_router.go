package ports

import (
	"context"
	"eld-log-service/internal/domain"
)

// Road distance and geometry between two points.
type Leg struct {
	DistanceMeters float64          `json:"distance_meters"`
	Geometry       *domain.Geometry `json:"geometry,omitempty"`
}

// Contract for routing a single leg between two coordinates.
type LegRouter interface {
	Route(ctx context.Context, from, to domain.Coordinates) (Leg, error)
}

// Optional cache of routed legs. ok is false on a miss.
type LegCache interface {
	Get(ctx context.Context, from, to domain.Coordinates) (leg Leg, ok bool, err error)
	Put(ctx context.Context, from, to domain.Coordinates, leg Leg) error
}
