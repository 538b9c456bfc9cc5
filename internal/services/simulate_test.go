package services

import (
	"eld-log-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tripStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(h float64) time.Time {
	return tripStart.Add(time.Duration(h * float64(time.Hour)))
}

func twoLegs(secondMiles, secondHours float64) []domain.RouteSegment {
	return []domain.RouteSegment{
		{
			From: "Phoenix, AZ", To: "Dallas, TX",
			DistanceMiles: 5, DrivingTimeHours: 0.5,
			Coordinates: [][]float64{{-112.07, 33.45}, {-112.0, 33.45}},
		},
		{
			From: "Dallas, TX", To: "Atlanta, GA",
			DistanceMiles: secondMiles, DrivingTimeHours: secondHours,
			Coordinates: [][]float64{{-96.8, 32.78}, {-84.39, 33.75}},
		},
	}
}

type want struct {
	status domain.DutyStatus
	start  float64
	end    float64
	miles  float64
	reason string
}

func assertTimeline(t *testing.T, got []domain.LogEntry, wants []want) {
	t.Helper()

	require.Len(t, got, len(wants))
	for i, w := range wants {
		e := got[i]
		assert.Equal(t, w.status, e.DutyStatus, "entry %d status", i)
		assert.True(t, e.StartTime.Equal(at(w.start)), "entry %d start = %s, want %s", i, e.StartTime, at(w.start))
		assert.True(t, e.EndTime.Equal(at(w.end)), "entry %d end = %s, want %s", i, e.EndTime, at(w.end))
		assert.InDelta(t, w.miles, e.Miles, 1e-6, "entry %d miles", i)
		assert.Equal(t, w.reason, e.Reason, "entry %d reason", i)
	}
}

func TestSimulate_BreakAfterEightHours(t *testing.T) {
	got := Simulate(twoLegs(600, 10), nil, 0, tripStart)

	assertTimeline(t, got, []want{
		{domain.StatusDriving, 0, 0.5, 5, ""},
		{domain.StatusOnDutyNotDriving, 0.5, 1.5, 0, domain.ReasonPickup},
		{domain.StatusDriving, 1.5, 9, 450, ""},
		{domain.StatusOffDuty, 9, 9.5, 0, domain.ReasonBreak},
		{domain.StatusDriving, 9.5, 12, 150, ""},
		{domain.StatusOnDutyNotDriving, 12, 13, 0, domain.ReasonDropoff},
	})

	assert.Equal(t, "Dallas, TX", got[0].Location)
	assert.Equal(t, "Dallas, TX", got[1].Location)
	assert.Equal(t, "Dallas, TX → Atlanta, GA", got[2].Location)
	assert.Equal(t, "Dallas, TX → Atlanta, GA", got[3].Location)
	assert.Equal(t, "Atlanta, GA", got[4].Location)
	assert.Equal(t, "Atlanta, GA", got[5].Location)

	require.NotNil(t, got[3].Coordinates)
	require.NotNil(t, got[5].Coordinates)
	assert.InDelta(t, -84.39, got[5].Coordinates.Lon, 1e-9)
	assert.InDelta(t, 33.75, got[5].Coordinates.Lat, 1e-9)
}

func TestSimulate_TenHourRestAfterElevenDriving(t *testing.T) {
	got := Simulate(twoLegs(660, 11), nil, 0, tripStart)

	assertTimeline(t, got, []want{
		{domain.StatusDriving, 0, 0.5, 5, ""},
		{domain.StatusOnDutyNotDriving, 0.5, 1.5, 0, domain.ReasonPickup},
		{domain.StatusDriving, 1.5, 9, 450, ""},
		{domain.StatusOffDuty, 9, 9.5, 0, domain.ReasonBreak},
		{domain.StatusDriving, 9.5, 12.5, 180, ""},
		{domain.StatusOffDuty, 12.5, 22.5, 0, domain.ReasonDriveLimit},
		{domain.StatusDriving, 22.5, 23, 30, ""},
		{domain.StatusOnDutyNotDriving, 23, 24, 0, domain.ReasonDropoff},
	})
}

func TestSimulate_FourteenHourWindow(t *testing.T) {
	fuel := []domain.FuelStop{
		{Index: 0, MileMarker: 55, SegmentIndex: 1},
		{Index: 1, MileMarker: 105, SegmentIndex: 1},
		{Index: 2, MileMarker: 155, SegmentIndex: 1},
		{Index: 3, MileMarker: 205, SegmentIndex: 1},
	}

	got := Simulate(twoLegs(600, 12), fuel, 0, tripStart)

	assertTimeline(t, got, []want{
		{domain.StatusDriving, 0, 0.5, 5, ""},
		{domain.StatusOnDutyNotDriving, 0.5, 1.5, 0, domain.ReasonPickup},
		{domain.StatusDriving, 1.5, 2.5, 50, ""},
		{domain.StatusOnDutyNotDriving, 2.5, 3, 0, domain.ReasonFueling},
		{domain.StatusDriving, 3, 4, 50, ""},
		{domain.StatusOnDutyNotDriving, 4, 4.5, 0, domain.ReasonFueling},
		{domain.StatusDriving, 4.5, 5.5, 50, ""},
		{domain.StatusOnDutyNotDriving, 5.5, 6, 0, domain.ReasonFueling},
		{domain.StatusDriving, 6, 7, 50, ""},
		{domain.StatusOnDutyNotDriving, 7, 7.5, 0, domain.ReasonFueling},
		{domain.StatusDriving, 7.5, 11, 175, ""},
		{domain.StatusOffDuty, 11, 11.5, 0, domain.ReasonBreak},
		{domain.StatusDriving, 11.5, 14, 125, ""},
		{domain.StatusOffDuty, 14, 24, 0, domain.ReasonWindowLimit},
		{domain.StatusDriving, 24, 26, 100, ""},
		{domain.StatusOnDutyNotDriving, 26, 27, 0, domain.ReasonDropoff},
	})

	fuelIdx := 0
	for _, e := range got {
		if e.Reason != domain.ReasonFueling {
			continue
		}
		require.NotNil(t, e.FuelStopIndex)
		assert.Equal(t, fuelIdx, *e.FuelStopIndex)
		assert.Equal(t, FuelStopLabel(fuel[fuelIdx].MileMarker), e.Location)
		fuelIdx++
	}
	assert.Equal(t, 4, fuelIdx)
}

func TestSimulate_CycleExhaustedMidRoute(t *testing.T) {
	got := Simulate(twoLegs(600, 10), nil, 65, tripStart)

	assertTimeline(t, got, []want{
		{domain.StatusDriving, 0, 0.5, 5, ""},
		{domain.StatusOnDutyNotDriving, 0.5, 1.5, 0, domain.ReasonPickup},
		{domain.StatusDriving, 1.5, 5, 210, ""},
		{domain.StatusOnDutyNotDriving, 5, 5, 0, domain.ReasonCycleLimit},
	})
	assert.Equal(t, "Atlanta, GA", got[3].Location)
}

func TestSimulate_CycleAlreadyExhausted(t *testing.T) {
	got := Simulate(twoLegs(600, 10), nil, 70, tripStart)

	require.Len(t, got, 1)
	assert.Equal(t, domain.ReasonCycleLimit, got[0].Reason)
	assert.Equal(t, "Phoenix, AZ", got[0].Location)
	assert.True(t, got[0].StartTime.Equal(got[0].EndTime))
}

func TestSimulate_FuelStopOnLongSingleLeg(t *testing.T) {
	segs := []domain.RouteSegment{{
		From: "Los Angeles, CA", To: "Denver, CO",
		DistanceMiles: 1200, DrivingTimeHours: 20,
	}}
	fuel := []domain.FuelStop{{Index: 0, MileMarker: 1000}}

	got := Simulate(segs, fuel, 0, tripStart)

	milesBefore := 0.0
	fuelAt := -1
	for i, e := range got {
		if e.Reason == domain.ReasonFueling {
			fuelAt = i
			break
		}
		milesBefore += e.Miles
	}
	require.GreaterOrEqual(t, fuelAt, 0, "no fueling entry")
	assert.InDelta(t, 1000, milesBefore, 1e-6)
	require.NotNil(t, got[fuelAt].FuelStopIndex)
	assert.Equal(t, 0, *got[fuelAt].FuelStopIndex)
	assert.Equal(t, "Fuel Stop at 1000 miles", got[fuelAt].Location)
	require.Greater(t, len(got), fuelAt+1)
	assert.Equal(t, domain.StatusDriving, got[fuelAt+1].DutyStatus)

	// Single-leg trips have no pickup, only the final dropoff.
	for _, e := range got {
		assert.NotEqual(t, domain.ReasonPickup, e.Reason)
	}
	assert.Equal(t, domain.ReasonDropoff, got[len(got)-1].Reason)

	total := 0.0
	for _, e := range got {
		total += e.Miles
	}
	assert.InDelta(t, 1200, total, 1e-6)
}

func TestSimulate_StaleFuelStopSkipped(t *testing.T) {
	// The first leg has distance but no driving time, so the odometer jumps
	// past the stop without any driving entry reaching it.
	segs := twoLegs(60, 1)
	segs[0].DrivingTimeHours = 0
	fuel := []domain.FuelStop{{Index: 0, MileMarker: 2}}

	got := Simulate(segs, fuel, 0, tripStart)

	require.NotEmpty(t, got)
	for _, e := range got {
		assert.NotEqual(t, domain.ReasonFueling, e.Reason)
	}
	assert.Equal(t, domain.ReasonPickup, got[0].Reason)
	assert.Equal(t, domain.ReasonDropoff, got[len(got)-1].Reason)
}

func TestSimulate_TimelineRespectsLimits(t *testing.T) {
	routes := map[string][]domain.RouteSegment{
		"short":      twoLegs(300, 5),
		"long":       twoLegs(2400, 40),
		"very long":  twoLegs(3000, 55),
		"zero first": {{From: "A", To: "A"}, {From: "A", To: "B", DistanceMiles: 900, DrivingTimeHours: 15}},
	}

	for name, segs := range routes {
		t.Run(name, func(t *testing.T) {
			fuel := []domain.FuelStop{{MileMarker: 1000}, {Index: 1, MileMarker: 2000}}
			got := Simulate(segs, fuel, 10, tripStart)
			require.NotEmpty(t, got)

			assert.True(t, got[0].StartTime.Equal(tripStart))

			sum := 0.0
			for _, e := range got {
				sum += e.Hours()
			}
			assert.InDelta(t, got[len(got)-1].EndTime.Sub(tripStart).Hours(), sum, 1e-6)

			var driving, window float64
			windowStart := tripStart
			for i, e := range got {
				assert.False(t, e.EndTime.Before(e.StartTime), "entry %d ends before start", i)
				if i > 0 {
					assert.True(t, e.StartTime.Equal(got[i-1].EndTime), "gap before entry %d", i)
				}
				if e.DutyStatus == domain.StatusDriving {
					assert.Greater(t, e.Miles, 0.0)
				} else {
					assert.Zero(t, e.Miles)
				}

				if e.DutyStatus == domain.StatusOffDuty && e.Hours() >= domain.MinOffDutyHours-epsilon {
					driving = 0
					windowStart = e.EndTime
					continue
				}
				if e.DutyStatus == domain.StatusDriving {
					driving += e.Hours()
					window = e.EndTime.Sub(windowStart).Hours()
					assert.LessOrEqual(t, driving, domain.MaxDrivingHours+1e-6, "entry %d", i)
					assert.LessOrEqual(t, window, domain.MaxDutyWindowHours+1e-6, "entry %d", i)
				}
			}
		})
	}
}

func TestSimulate_NormalizesStartToUTC(t *testing.T) {
	loc := time.FixedZone("MST", -7*60*60)
	start := time.Date(2024, 1, 1, 17, 0, 0, 0, loc)

	got := Simulate(twoLegs(60, 1), nil, 0, start)

	require.NotEmpty(t, got)
	assert.Equal(t, time.UTC, got[0].StartTime.Location())
	assert.True(t, got[0].StartTime.Equal(start))
}
