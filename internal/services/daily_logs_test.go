package services

import (
	"eld-log-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func entry(status domain.DutyStatus, start, end string, miles float64) domain.LogEntry {
	return domain.LogEntry{
		StartTime:  ts(start),
		EndTime:    ts(end),
		DutyStatus: status,
		Miles:      miles,
	}
}

func TestSplitAtMidnight(t *testing.T) {
	entries := []domain.LogEntry{
		entry(domain.StatusDriving, "2024-01-01T22:00:00Z", "2024-01-02T02:00:00Z", 240),
		entry(domain.StatusOnDutyNotDriving, "2024-01-02T02:00:00Z", "2024-01-02T03:00:00Z", 0),
	}

	got := SplitAtMidnight(entries)

	require.Len(t, got, 3)
	assert.Equal(t, ts("2024-01-02T00:00:00Z"), got[0].EndTime)
	assert.Equal(t, ts("2024-01-02T00:00:00Z"), got[1].StartTime)
	assert.InDelta(t, 120, got[0].Miles, 1e-9)
	assert.InDelta(t, 120, got[1].Miles, 1e-9)
	assert.Equal(t, entries[1], got[2])
}

func TestSplitAtMidnight_MultiDay(t *testing.T) {
	entries := []domain.LogEntry{
		entry(domain.StatusOffDuty, "2024-01-01T20:00:00Z", "2024-01-03T04:00:00Z", 0),
	}

	got := SplitAtMidnight(entries)

	require.Len(t, got, 3)
	assert.Equal(t, 4.0, got[0].Hours())
	assert.Equal(t, 24.0, got[1].Hours())
	assert.Equal(t, 4.0, got[2].Hours())
}

func TestSplitAtMidnight_EndingAtMidnightIsNotSplit(t *testing.T) {
	entries := []domain.LogEntry{
		entry(domain.StatusOnDutyNotDriving, "2024-01-01T23:00:00Z", "2024-01-02T00:00:00Z", 0),
	}

	assert.Equal(t, entries, SplitAtMidnight(entries))
}

func TestGroupByDay(t *testing.T) {
	entries := []domain.LogEntry{
		entry(domain.StatusDriving, "2024-01-01T20:00:00Z", "2024-01-01T23:00:00Z", 180),
		entry(domain.StatusOffDuty, "2024-01-01T23:00:00Z", "2024-01-02T09:00:00Z", 0),
		entry(domain.StatusOnDutyNotDriving, "2024-01-02T09:00:00Z", "2024-01-02T10:00:00Z", 0),
	}

	got := GroupByDay(entries)

	require.Len(t, got, 2)
	assert.Len(t, got["2024-01-01"], 2)
	assert.Len(t, got["2024-01-02"], 2)
	assert.Equal(t, 9.0, got["2024-01-02"][0].Hours())
}

func TestDailyTotals(t *testing.T) {
	entries := []domain.LogEntry{
		entry(domain.StatusDriving, "2024-01-01T06:00:00Z", "2024-01-01T10:00:00Z", 240),
		entry(domain.StatusOnDutyNotDriving, "2024-01-01T10:00:00Z", "2024-01-01T11:00:00Z", 0),
		entry(domain.StatusOffDuty, "2024-01-01T11:00:00Z", "2024-01-01T11:30:00Z", 0),
		entry(domain.StatusSleeperBerth, "2024-01-01T12:00:00Z", "2024-01-01T14:00:00Z", 0),
	}

	got := DailyTotals(entries)

	assert.Equal(t, domain.DailyTotals{
		OffDuty:          0.5,
		SleeperBerth:     2,
		Driving:          4,
		OnDutyNotDriving: 1,
		TotalMiles:       240,
		TotalOnDuty:      5,
		TotalHours:       7.5,
	}, got)
}

func TestRecap(t *testing.T) {
	entries := []domain.LogEntry{
		entry(domain.StatusDriving, "2024-01-02T08:00:00Z", "2024-01-02T18:00:00Z", 600),
		entry(domain.StatusOnDutyNotDriving, "2024-01-03T08:00:00Z", "2024-01-03T13:00:00Z", 0),
		entry(domain.StatusDriving, "2024-01-06T08:00:00Z", "2024-01-06T14:00:00Z", 360),
		entry(domain.StatusOnDutyNotDriving, "2024-01-10T08:00:00Z", "2024-01-10T11:00:00Z", 0),
		entry(domain.StatusOffDuty, "2024-01-10T11:00:00Z", "2024-01-10T16:00:00Z", 0),
		entry(domain.StatusDriving, "2024-01-11T08:00:00Z", "2024-01-11T12:00:00Z", 240),
	}

	got := Recap(entries, ts("2024-01-10T00:00:00Z"))

	assert.Equal(t, domain.Recap{
		OnDutyLast7Days:       14,
		OnDutyLast5Days:       9,
		AvailableTomorrow70Hr: 56,
		AvailableTomorrow60Hr: 46,
	}, got)
}

func TestRecap_ClampsAtZero(t *testing.T) {
	var entries []domain.LogEntry
	day := ts("2024-01-01T00:00:00Z")
	for i := 0; i < 6; i++ {
		start := day.AddDate(0, 0, i)
		entries = append(entries, domain.LogEntry{
			StartTime:  start,
			EndTime:    start.Add(12 * time.Hour),
			DutyStatus: domain.StatusDriving,
			Miles:      600,
		})
	}

	got := Recap(entries, day.AddDate(0, 0, 5))

	assert.Equal(t, 72.0, got.OnDutyLast7Days)
	assert.Equal(t, 0.0, got.AvailableTomorrow70Hr)
	assert.Equal(t, 0.0, got.AvailableTomorrow60Hr)
}

func TestRecap_NoEntries(t *testing.T) {
	got := Recap(nil, ts("2024-01-10T00:00:00Z"))

	assert.Equal(t, domain.Recap{
		AvailableTomorrow70Hr: 70,
		AvailableTomorrow60Hr: 60,
	}, got)
}

func TestBuildDailyLogs_Empty(t *testing.T) {
	got := BuildDailyLogs(nil, "A", "B", "C")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuildDailyLogs_FallbackLocations(t *testing.T) {
	entries := []domain.LogEntry{
		entry(domain.StatusDriving, "2024-01-01T20:00:00Z", "2024-01-01T23:00:00Z", 180),
		entry(domain.StatusOffDuty, "2024-01-01T23:00:00Z", "2024-01-02T09:00:00Z", 0),
		entry(domain.StatusOnDutyNotDriving, "2024-01-02T09:00:00Z", "2024-01-02T10:00:00Z", 0),
	}

	got := BuildDailyLogs(entries, "Phoenix, AZ", "Dallas, TX", "Atlanta, GA")

	require.Len(t, got, 2)

	d1 := got[0]
	assert.Equal(t, "2024-01-01", d1.Date)
	assert.Equal(t, "Phoenix, AZ", d1.From)
	assert.Equal(t, "Atlanta, GA", d1.To)
	assert.Equal(t, 180.0, d1.TotalMilesDriving)
	assert.Equal(t, 180.0, d1.TotalMileage)
	assert.Equal(t, 3.0, d1.Totals.Driving)
	assert.Equal(t, 1.0, d1.Totals.OffDuty)
	assert.Equal(t, 4.0, d1.Totals.TotalHours)
	assert.Equal(t, domain.Recap{
		OnDutyLast7Days:       3,
		OnDutyLast5Days:       3,
		AvailableTomorrow70Hr: 67,
		AvailableTomorrow60Hr: 57,
	}, d1.Recap)

	d2 := got[1]
	assert.Equal(t, "2024-01-02", d2.Date)
	assert.Equal(t, "Dallas, TX", d2.From)
	assert.Equal(t, "Atlanta, GA", d2.To)
	assert.Equal(t, 0.0, d2.TotalMilesDriving)
	assert.Equal(t, 9.0, d2.Totals.OffDuty)
	assert.Equal(t, 1.0, d2.Totals.OnDutyNotDriving)
	assert.Equal(t, 4.0, d2.Recap.OnDutyLast7Days)
	assert.Equal(t, 66.0, d2.Recap.AvailableTomorrow70Hr)
}

func TestBuildDailyLogs_FromSimulation(t *testing.T) {
	entries := Simulate(twoLegs(660, 11), nil, 0, tripStart.Add(12*time.Hour))

	logs := BuildDailyLogs(entries, "Phoenix, AZ", "Dallas, TX", "Atlanta, GA")
	require.Len(t, logs, 2)

	// The first entry already has a location, so no fallback applies.
	assert.Equal(t, "Dallas, TX", logs[0].From)
	assert.InDelta(t, 5+450+150, logs[0].TotalMilesDriving, 0.05)

	var miles, hours float64
	for _, l := range logs {
		miles += l.TotalMilesDriving
		hours += l.Totals.TotalHours
		for i := 1; i < len(l.Entries); i++ {
			assert.True(t, l.Entries[i].StartTime.Equal(l.Entries[i-1].EndTime))
		}
	}
	assert.InDelta(t, 665, miles, 0.1)
	assert.InDelta(t, 24, hours, 0.01)
	assert.Equal(t, "Atlanta, GA", logs[1].To)
}
