// Package timeutil holds the date arithmetic used when computing issue
// lifetimes and activity windows.
package timeutil

import "time"

// Unit selects the granularity returned by DeltaTime.
type Unit string

const (
	UnitMinutes Unit = "m"
	UnitHours   Unit = "h"
	UnitDays    Unit = "d"
	// UnitSeconds is the fallback; any unrecognised unit behaves the same way.
	UnitSeconds Unit = "s"
)

const secondsPerDay = 24 * 60 * 60

// DeltaTime returns the span between start and end expressed in unit.
// Minutes, hours and days are floored totals. Seconds is the remainder of the
// span within its last whole day, so it always lies in [0, 86399].
func DeltaTime(start, end time.Time, unit Unit) int64 {
	total := floorDiv(end.Sub(start).Nanoseconds(), int64(time.Second))
	days := floorDiv(total, secondsPerDay)

	switch unit {
	case UnitMinutes:
		return floorDiv(total, 60)
	case UnitHours:
		return floorDiv(total, 60*60)
	case UnitDays:
		return days
	default:
		return total - days*secondsPerDay
	}
}

// DaysAgo returns the current UTC time minus the given number of days.
func DaysAgo(days int) time.Time {
	return DaysAgoFrom(time.Now(), days)
}

// DaysAgoFrom is DaysAgo with an explicit reference time.
func DaysAgoFrom(now time.Time, days int) time.Time {
	return now.UTC().Add(-time.Duration(days) * 24 * time.Hour)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
