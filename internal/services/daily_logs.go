package services

import (
	"eld-log-service/internal/domain"
	"eld-log-service/internal/timefmt"
	"math"
	"slices"
	"time"
)

const day = 24 * time.Hour

// GroupByDay partitions entries by UTC calendar date of their start.
//
// An entry that runs past midnight is cut at midnight: the first fragment
// ends at midnight and the remainder starts there on the following day.
// Miles are split in proportion to time so day totals add up to the trip.
func GroupByDay(entries []domain.LogEntry) map[string][]domain.LogEntry {
	return groupByStartDate(SplitAtMidnight(entries))
}

func groupByStartDate(fragments []domain.LogEntry) map[string][]domain.LogEntry {
	out := make(map[string][]domain.LogEntry)
	for _, e := range fragments {
		key := timefmt.DateKey(e.StartTime)
		out[key] = append(out[key], e)
	}
	return out
}

// SplitAtMidnight returns entries with every midnight-crossing entry cut
// into per-day fragments. Order is preserved.
func SplitAtMidnight(entries []domain.LogEntry) []domain.LogEntry {
	out := make([]domain.LogEntry, 0, len(entries))

	for _, e := range entries {
		cur := e
		for {
			midnight := timefmt.StartOfDay(cur.StartTime).Add(day)
			if !cur.EndTime.After(midnight) {
				out = append(out, cur)
				break
			}

			head := cur
			head.EndTime = midnight
			head.Miles = cur.Miles * midnight.Sub(cur.StartTime).Hours() / cur.Hours()

			tail := cur
			tail.StartTime = midnight
			tail.Miles = cur.Miles - head.Miles

			out = append(out, head)
			cur = tail
		}
	}

	return out
}

// DailyTotals sums entry durations (hours) per duty status.
// Gaps between entries are not counted.
func DailyTotals(entries []domain.LogEntry) domain.DailyTotals {
	var t domain.DailyTotals

	for _, e := range entries {
		h := e.Hours()
		switch e.DutyStatus {
		case domain.StatusOffDuty:
			t.OffDuty += h
		case domain.StatusSleeperBerth:
			t.SleeperBerth += h
		case domain.StatusDriving:
			t.Driving += h
			t.TotalMiles += e.Miles
		case domain.StatusOnDutyNotDriving:
			t.OnDutyNotDriving += h
		}
	}

	t.TotalOnDuty = t.Driving + t.OnDutyNotDriving
	t.TotalHours = t.OffDuty + t.SleeperBerth + t.Driving + t.OnDutyNotDriving
	return t
}

// Recap sums on-duty hours for entries starting within the 7 days before
// asOf and the 4 days before asOf (both inclusive of asOf's own date), and
// projects the hours left under the 70-hour and 60-hour ceilings.
func Recap(entries []domain.LogEntry, asOf time.Time) domain.Recap {
	today := timefmt.StartOfDay(asOf)
	from7 := today.AddDate(0, 0, -7)
	from5 := today.AddDate(0, 0, -4)

	var last7, last5 float64
	for _, e := range entries {
		if !e.DutyStatus.OnDuty() {
			continue
		}

		d := timefmt.StartOfDay(e.StartTime)
		if d.After(today) {
			continue
		}

		h := e.Hours()
		if !d.Before(from7) {
			last7 += h
		}
		if !d.Before(from5) {
			last5 += h
		}
	}

	return domain.Recap{
		OnDutyLast7Days:       round(last7, 2),
		OnDutyLast5Days:       round(last5, 2),
		AvailableTomorrow70Hr: round(math.Max(0, domain.MaxCycleHours-last7), 2),
		AvailableTomorrow60Hr: round(math.Max(0, domain.AltCycleHours-last7), 2),
	}
}

// BuildDailyLogs assembles one log sheet per calendar day, in date order.
//
// From/To come from the day's first and last entry locations. The trip's
// current location and dropoff fill in when those are empty; days after the
// first fall back to the pickup location for From.
func BuildDailyLogs(
	entries []domain.LogEntry,
	currentLocation string,
	pickupLocation string,
	dropoffLocation string,
) []domain.DailyLog {
	if len(entries) == 0 {
		return []domain.DailyLog{}
	}

	fragments := SplitAtMidnight(entries)
	byDay := groupByStartDate(fragments)

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	slices.Sort(days)

	logs := make([]domain.DailyLog, 0, len(days))
	for i, key := range days {
		dayEntries := byDay[key]
		slices.SortStableFunc(dayEntries, func(a, b domain.LogEntry) int {
			return a.StartTime.Compare(b.StartTime)
		})

		fallbackFrom := currentLocation
		if i > 0 && pickupLocation != "" {
			fallbackFrom = pickupLocation
		}

		from := firstNonEmpty(dayEntries[0].Location, fallbackFrom)
		to := firstNonEmpty(dayEntries[len(dayEntries)-1].Location, dropoffLocation)

		totals := DailyTotals(dayEntries)
		asOf, _ := time.Parse(time.DateOnly, key)
		miles := round(totals.TotalMiles, 1)

		logs = append(logs, domain.DailyLog{
			Date:              key,
			From:              from,
			To:                to,
			TotalMilesDriving: miles,
			TotalMileage:      miles,
			Entries:           dayEntries,
			Totals: domain.DailyTotals{
				OffDuty:          round(totals.OffDuty, 2),
				SleeperBerth:     round(totals.SleeperBerth, 2),
				Driving:          round(totals.Driving, 2),
				OnDutyNotDriving: round(totals.OnDutyNotDriving, 2),
				TotalMiles:       miles,
				TotalOnDuty:      round(totals.TotalOnDuty, 2),
				TotalHours:       round(totals.TotalHours, 2),
			},
			Recap: Recap(fragments, asOf),
		})
	}

	return logs
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
