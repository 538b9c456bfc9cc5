package routing

import (
	"context"
	"eld-log-service/internal/domain"
	"eld-log-service/internal/geo"
	"eld-log-service/internal/platform/obs"
	"eld-log-service/internal/ports"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

// TripRouteProvider implements RouteProvider on top of a Geocoder and a
// LegRouter.
//
// Addresses holding a literal coordinate pair skip the geocoder. Legs that
// cannot be routed fall back to the great-circle distance with no geometry.
// Either collaborator may be nil.
type TripRouteProvider struct {
	geocoder          ports.Geocoder
	router            ports.LegRouter
	legCache          ports.LegCache
	averageSpeedMPH   float64
	fuelIntervalMiles float64
}

type ProviderOptions struct {
	LegCache          ports.LegCache
	AverageSpeedMPH   float64
	FuelIntervalMiles float64
}

func NewTripRouteProvider(
	geocoder ports.Geocoder,
	router ports.LegRouter,
	opts ProviderOptions,
) *TripRouteProvider {
	if opts.AverageSpeedMPH <= 0 {
		opts.AverageSpeedMPH = domain.DefaultAverageSpeedMPH
	}
	if opts.FuelIntervalMiles <= 0 {
		opts.FuelIntervalMiles = domain.DefaultFuelIntervalMiles
	}

	return &TripRouteProvider{
		geocoder:          geocoder,
		router:            router,
		legCache:          opts.LegCache,
		averageSpeedMPH:   opts.AverageSpeedMPH,
		fuelIntervalMiles: opts.FuelIntervalMiles,
	}
}

// PlanRoute geocodes the three trip addresses concurrently, routes the two
// legs and places fuel stops along the result.
func (p *TripRouteProvider) PlanRoute(
	ctx context.Context,
	current, pickup, dropoff string,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "route.PlanRoute")(&err)

	addresses := []string{current, pickup, dropoff}
	labels := []string{"Current location", "Pickup location", "Dropoff location"}

	coords := make([]domain.Coordinates, len(addresses))
	failed := make([]bool, len(addresses))

	// Each lookup records its own failure so every bad address is reported.
	var g errgroup.Group
	for i, addr := range addresses {
		i, addr := i, addr
		g.Go(func() error {
			c, err := p.resolve(ctx, addr)
			if err != nil {
				log.Printf("geocode failed: address=%q err=%v", addr, err)
				failed[i] = true
				return nil
			}
			coords[i] = c
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	var failedLabels []string
	for i := range addresses {
		if failed[i] {
			failedLabels = append(failedLabels, fmt.Sprintf("%s: '%s'", labels[i], addresses[i]))
		}
	}
	if len(failedLabels) > 0 {
		return nil, &domain.GeocodeError{Failed: failedLabels}
	}

	legs := make([]ports.Leg, len(addresses)-1)
	lg, lctx := errgroup.WithContext(ctx)
	for i := range legs {
		i := i
		lg.Go(func() error {
			legs[i] = p.routeLeg(lctx, coords[i], coords[i+1])
			return lctx.Err()
		})
	}
	if err := lg.Wait(); err != nil {
		return nil, fmt.Errorf("plan route: route legs: %w", err)
	}

	route := &domain.Route{
		Segments:  make([]domain.RouteSegment, 0, len(legs)),
		Waypoints: coords,
		Polylines: []*domain.Geometry{},
	}

	for i, leg := range legs {
		miles := leg.DistanceMeters * geo.MetersToMiles
		route.Segments = append(route.Segments, domain.RouteSegment{
			From:             addresses[i],
			To:               addresses[i+1],
			DistanceMiles:    miles,
			DrivingTimeHours: miles / p.averageSpeedMPH,
			Coordinates:      [][]float64{coords[i].CoordsToList(), coords[i+1].CoordsToList()},
			Geometry:         leg.Geometry,
		})
		if leg.Geometry != nil {
			route.Polylines = append(route.Polylines, leg.Geometry)
		}
		route.TotalDistanceMiles += miles
	}

	route.TotalDrivingHours = route.TotalDistanceMiles / p.averageSpeedMPH
	route.FuelStops = geo.PlaceFuelStops(route.Segments, p.fuelIntervalMiles)

	return route, nil
}

func (p *TripRouteProvider) resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, fmt.Errorf("address is empty")
	}

	if c, ok := geo.ParseCoordinates(address); ok {
		return c, nil
	}

	if p.geocoder == nil {
		return domain.Coordinates{}, fmt.Errorf("no geocoder configured for %q", address)
	}

	return p.geocoder.Geocode(ctx, address)
}

// routeLeg never fails: a leg the router cannot produce is approximated by
// the great-circle distance between its endpoints.
func (p *TripRouteProvider) routeLeg(ctx context.Context, from, to domain.Coordinates) ports.Leg {
	if p.legCache != nil {
		leg, ok, err := p.legCache.Get(ctx, from, to)
		if err != nil {
			log.Printf("leg cache read failed: %v", err)
		} else if ok {
			return leg
		}
	}

	if p.router != nil {
		leg, err := p.router.Route(ctx, from, to)
		if err == nil {
			if p.legCache != nil {
				if err := p.legCache.Put(ctx, from, to, leg); err != nil {
					log.Printf("leg cache write failed: %v", err)
				}
			}
			return leg
		}
		log.Printf("leg routing failed, using great-circle distance: err=%v", err)
	}

	return ports.Leg{DistanceMeters: geo.HaversineMiles(from, to) / geo.MetersToMiles}
}
