package routing

import (
	"context"
	"eld-log-service/internal/domain"
	"eld-log-service/internal/ports"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRouter struct {
	mu     sync.Mutex
	meters map[domain.Coordinates]float64
	calls  int
	err    error
}

func (f *fakeRouter) Route(ctx context.Context, from, to domain.Coordinates) (ports.Leg, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return ports.Leg{}, f.err
	}
	return ports.Leg{
		DistanceMeters: f.meters[from],
		Geometry:       &domain.Geometry{Coordinates: [][]float64{from.CoordsToList(), to.CoordsToList()}},
	}, nil
}

type memLegCache struct {
	mu   sync.Mutex
	legs map[[2]domain.Coordinates]ports.Leg
}

func (c *memLegCache) Get(ctx context.Context, from, to domain.Coordinates) (ports.Leg, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.legs[[2]domain.Coordinates{from, to}]
	return l, ok, nil
}

func (c *memLegCache) Put(ctx context.Context, from, to domain.Coordinates, leg ports.Leg) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.legs[[2]domain.Coordinates{from, to}] = leg
	return nil
}

var (
	phoenix = domain.Coordinates{Lon: -112.07, Lat: 33.45}
	dallas  = domain.Coordinates{Lon: -96.80, Lat: 32.78}
	atlanta = domain.Coordinates{Lon: -84.39, Lat: 33.75}
)

func TestTripRouteProviderPlanRoute(t *testing.T) {
	geocoder := NewMockGeocoder(map[string]domain.Coordinates{
		"Phoenix, AZ": phoenix,
		"Dallas, TX":  dallas,
		"Atlanta, GA": atlanta,
	})
	router := &fakeRouter{meters: map[domain.Coordinates]float64{
		phoenix: 900 / 0.000621371,
		dallas:  900 / 0.000621371,
	}}

	p := NewTripRouteProvider(geocoder, router, ProviderOptions{})
	route, err := p.PlanRoute(context.Background(), "Phoenix,  AZ", "Dallas, TX", "Atlanta, GA")
	require.NoError(t, err)

	require.Len(t, route.Segments, 2)
	assert.Equal(t, "Phoenix,  AZ", route.Segments[0].From)
	assert.Equal(t, "Dallas, TX", route.Segments[0].To)
	assert.InDelta(t, 900, route.Segments[0].DistanceMiles, 1e-6)
	assert.InDelta(t, 15, route.Segments[0].DrivingTimeHours, 1e-6)
	assert.InDelta(t, 900, route.Segments[1].DistanceMiles, 1e-6)
	assert.InDelta(t, 1800, route.TotalDistanceMiles, 1e-6)
	assert.InDelta(t, 30, route.TotalDrivingHours, 1e-6)
	assert.Equal(t, []domain.Coordinates{phoenix, dallas, atlanta}, route.Waypoints)
	assert.Len(t, route.Polylines, 2)

	require.Len(t, route.FuelStops, 1)
	assert.InDelta(t, 1000, route.FuelStops[0].MileMarker, 1e-6)
	assert.Equal(t, 1, route.FuelStops[0].SegmentIndex)
}

func TestTripRouteProviderReportsEveryFailedAddress(t *testing.T) {
	geocoder := NewMockGeocoder(map[string]domain.Coordinates{"Dallas, TX": dallas})
	p := NewTripRouteProvider(geocoder, nil, ProviderOptions{})

	_, err := p.PlanRoute(context.Background(), "Nowhere", "Dallas, TX", "Atlantis")
	require.Error(t, err)

	var ge *domain.GeocodeError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, []string{
		"Current location: 'Nowhere'",
		"Dropoff location: 'Atlantis'",
	}, ge.Failed)
	assert.True(t, strings.HasPrefix(err.Error(), "Unable to geocode the following addresses:"))
}

func TestTripRouteProviderCoordinateLiteralsAndFallback(t *testing.T) {
	router := &fakeRouter{err: errors.New("upstream down")}
	p := NewTripRouteProvider(nil, router, ProviderOptions{AverageSpeedMPH: 50})

	route, err := p.PlanRoute(context.Background(), "33.45, -112.07", "32.78, -96.80", "33.75, -84.39")
	require.NoError(t, err)

	require.Len(t, route.Segments, 2)
	assert.Nil(t, route.Segments[0].Geometry)
	assert.Empty(t, route.Polylines)
	assert.Greater(t, route.Segments[0].DistanceMiles, 800.0)
	assert.InDelta(t, route.Segments[0].DistanceMiles/50, route.Segments[0].DrivingTimeHours, 1e-9)
	assert.Equal(t, 2, router.calls)
}

func TestTripRouteProviderUsesLegCache(t *testing.T) {
	router := &fakeRouter{meters: map[domain.Coordinates]float64{phoenix: 1609.344, dallas: 1609.344}}
	cache := &memLegCache{legs: map[[2]domain.Coordinates]ports.Leg{}}
	p := NewTripRouteProvider(nil, router, ProviderOptions{LegCache: cache})

	for i := 0; i < 2; i++ {
		_, err := p.PlanRoute(context.Background(), "33.45, -112.07", "32.78, -96.80", "33.75, -84.39")
		require.NoError(t, err)
	}

	assert.Equal(t, 2, router.calls, "second plan should be served from the leg cache")
	assert.Len(t, cache.legs, 2)
}
