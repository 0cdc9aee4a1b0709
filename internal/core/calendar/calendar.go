// Package calendar provides day-key arithmetic for streak evaluation.
//
// All calendar decisions in the engine go through this package so that
// timezone math lives in exactly one place. A DayKey is the canonical
// YYYY-MM-DD rendering of a calendar day in the user's local timezone;
// because the format is fixed-width ISO, lexical comparison of DayKeys
// is chronological comparison.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the canonical DayKey format.
const Layout = "2006-01-02"

// DayKey identifies one calendar day in a specific timezone, e.g. "2025-10-20".
type DayKey string

// HolidayMap maps a DayKey to the holiday name observed on that day.
// A nil map means "no holidays".
type HolidayMap map[DayKey]string

// Compute projects an instant onto its calendar day in the given location.
// This is the only sanctioned way to derive a DayKey from a timestamp.
func Compute(t time.Time, loc *time.Location) DayKey {
	return DayKey(t.In(loc).Format(Layout))
}

// Parse validates a raw day-key string.
func Parse(s string) (DayKey, error) {
	if _, err := time.ParseInLocation(Layout, s, time.UTC); err != nil {
		return "", fmt.Errorf("invalid day key %q: %w", s, err)
	}
	return DayKey(s), nil
}

// IsZero reports whether the key is unset.
func (k DayKey) IsZero() bool {
	return k == ""
}

// String returns the canonical YYYY-MM-DD form.
func (k DayKey) String() string {
	return string(k)
}

// Before reports whether k is an earlier calendar day than other.
func (k DayKey) Before(other DayKey) bool {
	return k < other
}

// After reports whether k is a later calendar day than other.
func (k DayKey) After(other DayKey) bool {
	return k > other
}

// StartOfDay returns midnight of the day in loc.
func (k DayKey) StartOfDay(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, string(k), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", k, err)
	}
	return t, nil
}

// EndOfDay returns the last representable instant of the day in loc.
// Virtual closure events are stamped with this instant so they always sort
// after any real activity recorded on the same day.
func (k DayKey) EndOfDay(loc *time.Location) (time.Time, error) {
	start, err := k.StartOfDay(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// AddDays returns the key delta calendar days away, in loc.
// Using AddDate keeps the arithmetic correct across DST transitions.
func (k DayKey) AddDays(delta int, loc *time.Location) (DayKey, error) {
	start, err := k.StartOfDay(loc)
	if err != nil {
		return "", err
	}
	return Compute(start.AddDate(0, 0, delta), loc), nil
}

// Weekday returns the day of week for the key in loc.
func (k DayKey) Weekday(loc *time.Location) (time.Weekday, error) {
	start, err := k.StartOfDay(loc)
	if err != nil {
		return time.Sunday, err
	}
	return start.Weekday(), nil
}

// IsWeekend reports whether the key falls on Saturday or Sunday in loc.
func (k DayKey) IsWeekend(loc *time.Location) (bool, error) {
	wd, err := k.Weekday(loc)
	if err != nil {
		return false, err
	}
	return wd == time.Saturday || wd == time.Sunday, nil
}

// IsWorkingDay reports whether the key is a weekday that is not a holiday.
func IsWorkingDay(k DayKey, loc *time.Location, holidays HolidayMap) (bool, error) {
	weekend, err := k.IsWeekend(loc)
	if err != nil {
		return false, err
	}
	if weekend {
		return false, nil
	}
	if _, holiday := holidays[k]; holiday {
		return false, nil
	}
	return true, nil
}

// NextWorkingDay returns the first working day strictly after k.
func NextWorkingDay(k DayKey, loc *time.Location, holidays HolidayMap) (DayKey, error) {
	day := k
	for {
		next, err := day.AddDays(1, loc)
		if err != nil {
			return "", err
		}
		working, err := IsWorkingDay(next, loc, holidays)
		if err != nil {
			return "", err
		}
		if working {
			return next, nil
		}
		day = next
	}
}

// MaxKey returns the later of two keys.
func MaxKey(a, b DayKey) DayKey {
	if a.After(b) {
		return a
	}
	return b
}
