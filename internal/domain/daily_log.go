package domain

// Per-status duration sums (hours) for a single day.
type DailyTotals struct {
	OffDuty          float64 `json:"off_duty"`
	SleeperBerth     float64 `json:"sleeper_berth"`
	Driving          float64 `json:"driving"`
	OnDutyNotDriving float64 `json:"on_duty_not_driving"`
	TotalMiles       float64 `json:"total_miles"`
	TotalOnDuty      float64 `json:"total_on_duty"`
	TotalHours       float64 `json:"total_hours"`
}

// Rolling-window on-duty summary projected for the following day.
type Recap struct {
	OnDutyLast7Days       float64 `json:"total_on_duty_last_7_days"`
	OnDutyLast5Days       float64 `json:"total_on_duty_last_5_days"`
	AvailableTomorrow70Hr float64 `json:"hours_available_tomorrow_70hr"`
	AvailableTomorrow60Hr float64 `json:"hours_available_tomorrow_60hr"`
}

// One calendar day's log sheet.
// Date is a UTC calendar date formatted as YYYY-MM-DD.
type DailyLog struct {
	Date              string      `json:"date"`
	From              string      `json:"from"`
	To                string      `json:"to"`
	TotalMilesDriving float64     `json:"total_miles_driving"`
	TotalMileage      float64     `json:"total_mileage"`
	Entries           []LogEntry  `json:"entries"`
	Totals            DailyTotals `json:"totals"`
	Recap             Recap       `json:"recap"`
}
