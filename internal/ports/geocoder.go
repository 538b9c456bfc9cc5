package ports

import (
	"context"
	"eld-log-service/internal/domain"
)

// Contract for turning a free-form address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Optional persistent cache in front of a Geocoder.
// Keys are normalized addresses.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
