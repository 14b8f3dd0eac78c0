package util

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// DefaultLookbackDays is the span of history scanned when no start date is given
const DefaultLookbackDays = 5 * 365

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

// Today truncates now to a UTC calendar date
func Today(now time.Time) time.Time {
	now = now.UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDateRange parses optional YYYY-MM-DD bounds. A missing end defaults to
// today and a missing start to DefaultLookbackDays before the end.
func ParseDateRange(start, end string, now time.Time) (time.Time, time.Time, error) {
	endDate := Today(now)
	if end != "" {
		d, err := time.Parse(layout, end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("failed to parse end date %q: %w", end, err)
		}
		endDate = d
	}

	startDate := endDate.AddDate(0, 0, -DefaultLookbackDays)
	if start != "" {
		d, err := time.Parse(layout, start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("failed to parse start date %q: %w", start, err)
		}
		startDate = d
	}

	if !DateLte(startDate, endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s cannot be before start date %s", endDate.Format(layout), startDate.Format(layout))
	}

	return startDate, endDate, nil
}
