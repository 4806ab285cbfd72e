package models

import (
	"errors"
	"fmt"
)

const (
	// MinutesPerDay is the number of per-minute buckets in a day.
	MinutesPerDay = 1440

	// AnyTimeSentinel is the slider value clients send for "no filter".
	AnyTimeSentinel = -1
)

var ErrMinuteOutOfRange = errors.New("minute out of range")

// TimeFilter selects which trips are visible: either every trip (NoFilter)
// or those around a minute of the day (AtMinute). The zero value is NoFilter.
type TimeFilter struct {
	minute int
	set    bool
}

// NoFilter returns the filter that keeps every trip.
func NoFilter() TimeFilter {
	return TimeFilter{}
}

// AtMinute returns a filter centered on the given minute of the day.
// The minute must be in [0, MinutesPerDay).
func AtMinute(minute int) (TimeFilter, error) {
	if minute < 0 || minute >= MinutesPerDay {
		return TimeFilter{}, fmt.Errorf("%w: %d", ErrMinuteOutOfRange, minute)
	}
	return TimeFilter{minute: minute, set: true}, nil
}

// ParseTimeFilter converts a raw slider value into a TimeFilter,
// mapping AnyTimeSentinel to NoFilter.
func ParseTimeFilter(value int) (TimeFilter, error) {
	if value == AnyTimeSentinel {
		return NoFilter(), nil
	}
	return AtMinute(value)
}

// Minute returns the selected minute and true, or (0, false) for NoFilter.
func (f TimeFilter) Minute() (int, bool) {
	return f.minute, f.set
}

// IsFiltered reports whether the filter restricts trips to a window.
func (f TimeFilter) IsFiltered() bool {
	return f.set
}

// Value returns the slider representation: the minute, or AnyTimeSentinel.
func (f TimeFilter) Value() int {
	if !f.set {
		return AnyTimeSentinel
	}
	return f.minute
}

func (f TimeFilter) String() string {
	if !f.set {
		return "any"
	}
	return fmt.Sprintf("%d", f.minute)
}
