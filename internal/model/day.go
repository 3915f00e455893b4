package model

import (
	"errors"
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

var ErrInvalidDay = errors.New("model: invalid day key")

// DayKey returns the calendar date of t in t's location. Each day key is a
// fresh namespace for quest state, custom quests and the daily streak flag.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a day key as local midnight.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	return t, nil
}

// PreviousDay returns the calendar day before day, crossing month and year
// boundaries through time.Date normalisation.
func PreviousDay(day string) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	y, m, d := t.Date()
	return DayKey(time.Date(y, m, d-1, 0, 0, 0, 0, t.Location())), nil
}
