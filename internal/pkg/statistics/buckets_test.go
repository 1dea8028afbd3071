package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyWindows(t *testing.T) {
	now := time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC)
	windows := DailyWindows(now)
	require.Len(t, windows, 7)

	// oldest first, last window is today
	assert.Equal(t, time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC), windows[0].Start)
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), windows[6].Start)

	for _, w := range windows {
		assert.Equal(t, w.Start.AddDate(0, 0, 1).Add(-time.Second), w.End)
	}
}

func TestWeeklyWindows(t *testing.T) {
	now := time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC)
	windows := WeeklyWindows(now)
	require.Len(t, windows, 4)

	assert.Equal(t, now.AddDate(0, 0, -21), windows[0].Start)
	// final window is clamped to now
	assert.Equal(t, now, windows[3].End)

	for i := 1; i < len(windows); i++ {
		assert.Equal(t, windows[i-1].Start.AddDate(0, 0, 7), windows[i].Start)
	}
}

func TestMonthlyWindows(t *testing.T) {
	now := time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC)
	windows := MonthlyWindows(now)
	require.Len(t, windows, 6)

	// starts at the first of the month 180 days back
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), windows[0].Start)
	assert.Equal(t, time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC), windows[0].End)

	// consecutive calendar months
	assert.Equal(t, time.Month(3), windows[1].Start.Month())
	assert.Equal(t, time.Month(7), windows[5].Start.Month())
	assert.Equal(t, time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC), windows[5].End)
}

func TestMonthlyWindowsClampsToNow(t *testing.T) {
	// 180 days back from late March is the first of October, so the
	// sixth month is March and still in progress.
	now := time.Date(2026, 3, 30, 12, 0, 0, 0, time.UTC)
	windows := MonthlyWindows(now)
	require.Len(t, windows, 6)

	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), windows[0].Start)
	assert.Equal(t, now, windows[5].End)
}

func TestPeriodBounds(t *testing.T) {
	now := time.Date(2026, 8, 27, 15, 30, 0, 0, time.UTC)

	start, end := PeriodBounds(RangeDaily, now)
	assert.Equal(t, time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, now, end)

	start, _ = PeriodBounds(RangeWeekly, now)
	assert.Equal(t, now.AddDate(0, 0, -21), start)

	start, _ = PeriodBounds(RangeMonthly, now)
	assert.Equal(t, now.AddDate(0, 0, -180), start)
}
