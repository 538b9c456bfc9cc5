package services

import (
	"eld-log-service/internal/domain"
	"eld-log-service/internal/geo"
	"eld-log-service/internal/timefmt"
	"math"
	"time"
)

// epsilon absorbs float drift and nanosecond truncation when comparing hours.
const epsilon = 1e-9

// SimulationState is the mutable state of a single simulation run.
//
// DrivingHours, WindowStart and LastBreak all reset together when a
// 10-hour rest is taken.
type SimulationState struct {
	Now              time.Time
	DrivingHours     float64
	WindowStart      time.Time
	LastBreak        *time.Time
	CycleUsed        float64
	DistanceTraveled float64
	NextFuelStop     int
}

// WindowHours returns the hours elapsed since the current duty window opened.
func (s *SimulationState) WindowHours() float64 {
	return s.Now.Sub(s.WindowStart).Hours()
}

type stepResult int

const (
	stepContinue stepResult = iota
	stepSegmentDone
	stepHalt
)

// segmentCursor tracks progress through the segment being driven.
type segmentCursor struct {
	index          int
	last           bool
	seg            domain.RouteSegment
	remainingMiles float64
	remainingHours float64
}

func newSegmentCursor(i, total int, seg domain.RouteSegment) *segmentCursor {
	return &segmentCursor{
		index:          i,
		last:           i == total-1,
		seg:            seg,
		remainingMiles: seg.DistanceMiles,
		remainingHours: seg.DrivingTimeHours,
	}
}

// traveledRatio is the fraction of the segment already covered.
// Zero-distance segments always report 0.
func (c *segmentCursor) traveledRatio() float64 {
	if c.seg.DistanceMiles <= 0 {
		return 0
	}
	return 1 - c.remainingMiles/c.seg.DistanceMiles
}

// positionLabel names the current position within the segment.
func (c *segmentCursor) positionLabel() string {
	if c.remainingMiles == c.seg.DistanceMiles {
		return c.seg.From
	}
	return c.seg.From + " → " + c.seg.To
}

// hoursFor converts miles on the rest of the segment to driving hours,
// assuming constant speed over the remainder.
func (c *segmentCursor) hoursFor(miles float64) float64 {
	if miles <= 0 {
		return 0
	}
	if c.remainingMiles <= 0 || miles >= c.remainingMiles {
		return c.remainingHours
	}
	return miles * c.remainingHours / c.remainingMiles
}

type simulation struct {
	state     SimulationState
	fuelStops []domain.FuelStop
	entries   []domain.LogEntry
}

// Simulate walks the route segments in order and produces the driver's
// duty-status timeline under Hours-of-Service rules.
//
// At every decision point the rules are evaluated in fixed priority:
// cycle exhaustion (terminal), 10-hour rest (14-hour window or 11 driving
// hours), 30-minute break after 8 driving hours, then driving toward the
// next fuel stop or the end of the segment. Driving is cut at whichever
// limit is reached first so that the next evaluation can insert the
// required rest.
//
// A zero start time means now. The returned entries are contiguous.
func Simulate(
	segments []domain.RouteSegment,
	fuelStops []domain.FuelStop,
	initialCycleUsed float64,
	start time.Time,
) []domain.LogEntry {
	if start.IsZero() {
		start = time.Now()
	}
	start = start.UTC()

	sim := &simulation{
		state: SimulationState{
			Now:         start,
			WindowStart: start,
			CycleUsed:   initialCycleUsed,
		},
		fuelStops: fuelStops,
		entries:   make([]domain.LogEntry, 0, 4*len(segments)+2*len(fuelStops)),
	}

	for i, seg := range segments {
		cur := newSegmentCursor(i, len(segments), seg)

		for cur.remainingHours > epsilon {
			res := sim.step(cur)
			if res == stepHalt {
				return sim.entries
			}
			if res == stepSegmentDone {
				break
			}
		}

		// Zero-time segments still move the odometer.
		sim.state.DistanceTraveled += cur.remainingMiles
		sim.finishSegment(cur)
	}

	return sim.entries
}

// step applies the first matching rule and reports how the segment loop
// should proceed.
func (s *simulation) step(cur *segmentCursor) stepResult {
	st := &s.state

	switch {
	case st.CycleUsed >= domain.MaxCycleHours-epsilon:
		s.haltOnCycleLimit(cur)
		return stepHalt
	case st.WindowHours() >= domain.MaxDutyWindowHours-epsilon:
		s.rest(cur, domain.ReasonWindowLimit)
	case st.DrivingHours >= domain.MaxDrivingHours-epsilon:
		s.rest(cur, domain.ReasonDriveLimit)
	case st.DrivingHours >= domain.BreakRequiredAfterHours-epsilon && st.LastBreak == nil:
		s.takeBreak(cur)
	default:
		return s.drive(cur)
	}

	return stepContinue
}

func (s *simulation) haltOnCycleLimit(cur *segmentCursor) {
	loc := cur.seg.From
	if cur.last {
		loc = cur.seg.To
	}

	s.emit(domain.LogEntry{
		DutyStatus:  domain.StatusOnDutyNotDriving,
		Location:    loc,
		Reason:      domain.ReasonCycleLimit,
		Coordinates: s.positionOn(cur),
	}, 0)
}

func (s *simulation) rest(cur *segmentCursor, reason string) {
	s.emit(domain.LogEntry{
		DutyStatus:  domain.StatusOffDuty,
		Location:    cur.positionLabel(),
		Reason:      reason,
		Coordinates: s.positionOn(cur),
	}, domain.MinOffDutyHours)

	s.state.DrivingHours = 0
	s.state.WindowStart = s.state.Now
	s.state.LastBreak = nil
}

func (s *simulation) takeBreak(cur *segmentCursor) {
	s.emit(domain.LogEntry{
		DutyStatus:  domain.StatusOffDuty,
		Location:    cur.positionLabel(),
		Reason:      domain.ReasonBreak,
		Coordinates: s.positionOn(cur),
	}, domain.BreakDurationHours)

	at := s.state.Now
	s.state.LastBreak = &at
}

// drive covers the distance to the next fuel stop inside the segment, or the
// rest of the segment, stopping early if a driving limit is reached first.
func (s *simulation) drive(cur *segmentCursor) stepResult {
	st := &s.state

	miles, hours := cur.remainingMiles, cur.remainingHours
	var stop *domain.FuelStop

	if st.NextFuelStop < len(s.fuelStops) {
		fs := s.fuelStops[st.NextFuelStop]
		if fs.MileMarker <= st.DistanceTraveled+cur.remainingMiles+epsilon {
			toStop := fs.MileMarker - st.DistanceTraveled
			if toStop < -epsilon {
				// Already behind the truck.
				st.NextFuelStop++
				return stepContinue
			}
			miles = math.Max(toStop, 0)
			hours = cur.hoursFor(miles)
			stop = &fs
		}
	}

	if avail := s.hoursUntilLimit(); hours > avail+epsilon {
		s.driveLeg(cur, cur.remainingMiles*avail/cur.remainingHours, avail)
		return stepContinue
	}

	if miles > epsilon || (stop == nil && hours > epsilon) {
		s.driveLeg(cur, miles, hours)
	}

	if stop != nil {
		s.refuel(*stop, st.NextFuelStop)
		st.NextFuelStop++
		if cur.remainingHours <= epsilon {
			return stepSegmentDone
		}
		return stepContinue
	}

	cur.remainingMiles = 0
	cur.remainingHours = 0
	return stepSegmentDone
}

// hoursUntilLimit is the driving time left before any HOS rule would fire.
func (s *simulation) hoursUntilLimit() float64 {
	st := &s.state

	avail := math.Min(domain.MaxDrivingHours-st.DrivingHours, domain.MaxDutyWindowHours-st.WindowHours())
	avail = math.Min(avail, domain.MaxCycleHours-st.CycleUsed)
	if st.LastBreak == nil {
		avail = math.Min(avail, domain.BreakRequiredAfterHours-st.DrivingHours)
	}
	return avail
}

func (s *simulation) driveLeg(cur *segmentCursor, miles, hours float64) {
	cur.remainingMiles -= miles
	cur.remainingHours -= hours
	if cur.remainingMiles < 0 {
		cur.remainingMiles = 0
	}

	loc := cur.seg.To
	if cur.remainingHours > epsilon {
		loc = cur.seg.From + " → " + cur.seg.To
	}

	s.emit(domain.LogEntry{
		DutyStatus: domain.StatusDriving,
		Location:   loc,
		Miles:      miles,
	}, hours)

	s.state.DrivingHours += hours
	s.state.CycleUsed += hours
	s.state.DistanceTraveled += miles
}

func (s *simulation) refuel(stop domain.FuelStop, idx int) {
	loc := stop.Location

	s.emit(domain.LogEntry{
		DutyStatus:    domain.StatusOnDutyNotDriving,
		Location:      FuelStopLabel(stop.MileMarker),
		Reason:        domain.ReasonFueling,
		Coordinates:   &loc,
		FuelStopIndex: &idx,
	}, domain.FuelStopDurationHours)

	s.state.CycleUsed += domain.FuelStopDurationHours
}

// finishSegment inserts the pickup after the first leg of a multi-leg trip
// and the dropoff after the last leg.
func (s *simulation) finishSegment(cur *segmentCursor) {
	var reason string
	switch {
	case cur.last:
		reason = domain.ReasonDropoff
	case cur.index == 0:
		reason = domain.ReasonPickup
	default:
		return
	}

	entry := domain.LogEntry{
		DutyStatus: domain.StatusOnDutyNotDriving,
		Location:   cur.seg.To,
		Reason:     reason,
	}
	if p, ok := geo.OnSegment(cur.seg, 1); ok {
		entry.Coordinates = &p
	}

	s.emit(entry, domain.PickupDropoffHours)
	s.state.CycleUsed += domain.PickupDropoffHours
}

func (s *simulation) positionOn(cur *segmentCursor) *domain.Coordinates {
	p, ok := geo.OnSegment(cur.seg, cur.traveledRatio())
	if !ok {
		return nil
	}
	return &p
}

// emit stamps e with the current clock, advances the clock by hours and
// appends it.
func (s *simulation) emit(e domain.LogEntry, hours float64) {
	e.StartTime = s.state.Now
	s.state.Now = s.state.Now.Add(timefmt.FromHours(hours))
	e.EndTime = s.state.Now
	s.entries = append(s.entries, e)
}
