package routing

import (
	"context"
	"eld-log-service/internal/domain"
	"fmt"
)

// MockRouteProvider returns a fixed route (or error) regardless of input.
// It records the addresses of the last call.
type MockRouteProvider struct {
	Route *domain.Route
	Err   error

	Calls      int
	LastCalled [3]string
}

func NewMockRouteProvider(route *domain.Route) *MockRouteProvider {
	return &MockRouteProvider{Route: route}
}

func (m *MockRouteProvider) PlanRoute(ctx context.Context, current, pickup, dropoff string) (*domain.Route, error) {
	m.Calls++
	m.LastCalled = [3]string{current, pickup, dropoff}

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Route == nil {
		return nil, fmt.Errorf("mock route provider: no route for %q -> %q -> %q", current, pickup, dropoff)
	}
	return m.Route, nil
}

// MockGeocoder resolves addresses from a fixed table.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(m map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok := g.m[normalize(address)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocode %q: %w", address, ErrNoGeocodeResult)
	}
	return c, nil
}
