package utils

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// ParseYmd parses a YYYY-MM-DD string as midnight UTC.
func ParseYmd(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// ToYmd formats a time as YYYY-MM-DD in UTC.
func ToYmd(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WeekStart returns the Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday rolls back to the previous Monday
	}
	return day.AddDate(0, 0, -offset)
}
