package statistics

import (
	"time"
)

// The chart endpoints report fixed-size series: the last 7 days, the last 4
// weeks, or the last 6 months. Each window carries the inclusive time range
// the per-bucket aggregates are computed over.

const (
	RangeDaily   = "daily"
	RangeWeekly  = "weekly"
	RangeMonthly = "monthly"

	DailyBucketCount   = 7
	WeeklyBucketCount  = 4
	MonthlyBucketCount = 6
)

// Window is one bucket of a time-bucketed series.
type Window struct {
	Start time.Time
	End   time.Time
}

// PeriodBounds returns the overall range covered by a series for the KPI block.
func PeriodBounds(timeRange string, now time.Time) (time.Time, time.Time) {
	switch timeRange {
	case RangeDaily:
		return dayStart(now.AddDate(0, 0, -(DailyBucketCount - 1))), now
	case RangeWeekly:
		return now.AddDate(0, 0, -7*(WeeklyBucketCount-1)), now
	default:
		return now.AddDate(0, 0, -180), now
	}
}

// DailyWindows returns one window per calendar day for the last 7 days,
// oldest first, the final window being today.
func DailyWindows(now time.Time) []Window {
	windows := make([]Window, 0, DailyBucketCount)
	first := dayStart(now.AddDate(0, 0, -(DailyBucketCount - 1)))

	for i := 0; i < DailyBucketCount; i++ {
		start := first.AddDate(0, 0, i)
		windows = append(windows, Window{
			Start: start,
			End:   start.AddDate(0, 0, 1).Add(-time.Second),
		})
	}

	return windows
}

// WeeklyWindows returns four 7-day windows covering the last 4 weeks,
// oldest first. The final window is clamped to now.
func WeeklyWindows(now time.Time) []Window {
	windows := make([]Window, 0, WeeklyBucketCount)
	first := now.AddDate(0, 0, -7*(WeeklyBucketCount-1))

	for i := 0; i < WeeklyBucketCount; i++ {
		start := first.AddDate(0, 0, 7*i)
		end := start.AddDate(0, 0, 6)
		if end.After(now) {
			end = now
		}
		windows = append(windows, Window{Start: start, End: end})
	}

	return windows
}

// MonthlyWindows returns one window per calendar month for the last 6
// months, oldest first, starting at the first day of the month 180 days
// back. The final window is clamped to now.
func MonthlyWindows(now time.Time) []Window {
	windows := make([]Window, 0, MonthlyBucketCount)

	approx := now.AddDate(0, 0, -180)
	current := time.Date(approx.Year(), approx.Month(), 1, 0, 0, 0, 0, approx.Location())

	for i := 0; i < MonthlyBucketCount; i++ {
		end := current.AddDate(0, 1, 0).Add(-time.Second)
		if end.After(now) {
			end = now
		}
		windows = append(windows, Window{Start: current, End: end})
		current = current.AddDate(0, 1, 0)
	}

	return windows
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
