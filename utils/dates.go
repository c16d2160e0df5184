// utils/dates.go
package utils

import "time"

// All period math happens in the shop's configured timezone, never in the
// timezone of the stored UTC instants. Ranges are half-open: [start, end).

func BeginningOfDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// StartOfWeek returns the Monday 00:00 of t's week.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := BeginningOfDay(t, loc)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	year, month, _ := t.In(loc).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}

func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := BeginningOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

func WeekRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfWeek(t, loc)
	return start, start.AddDate(0, 0, 7)
}

func MonthRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfMonth(t, loc)
	return start, start.AddDate(0, 1, 0)
}

func DaysBetween(start, end time.Time, loc *time.Location) int {
	start = BeginningOfDay(start, loc)
	end = BeginningOfDay(end, loc)
	return int(end.Sub(start).Hours() / 24)
}
