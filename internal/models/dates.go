package models

import "time"

// DaysBetween counts calendar days from start to end, each read in its
// own location; negative when end is before start.
func DaysBetween(start, end time.Time) int {
	return int(civilDay(end).Sub(civilDay(start)).Hours() / 24)
}

func civilDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
