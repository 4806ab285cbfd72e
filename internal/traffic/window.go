package traffic

import "bikeflow.org/internal/models"

// WindowRadius is how many minutes on each side of the selected minute a
// filtered window reaches.
const WindowRadius = 60

// WindowBounds returns the half-open bucket range [min, max) selected around
// minute. When min > max the window wraps past midnight and covers
// [min, 1440) followed by [0, max).
func WindowBounds(minute int) (minMinute, maxMinute int) {
	minMinute = (minute - WindowRadius + models.MinutesPerDay) % models.MinutesPerDay
	maxMinute = (minute + WindowRadius) % models.MinutesPerDay
	return minMinute, maxMinute
}

// FilterByMinute flattens the buckets selected by f into one list.
//
// NoFilter returns every bucket in order. AtMinute(m) returns the buckets in
// the circular window around m, oldest minute first.
func FilterByMinute(buckets *Buckets, f models.TimeFilter) []*models.Trip {
	minute, ok := f.Minute()
	if !ok {
		return flatten(buckets[:])
	}

	minMinute, maxMinute := WindowBounds(minute)
	if minMinute > maxMinute {
		beforeMidnight := buckets[minMinute:]
		afterMidnight := buckets[:maxMinute]
		out := make([]*models.Trip, 0, countTrips(beforeMidnight)+countTrips(afterMidnight))
		out = appendBuckets(out, beforeMidnight)
		return appendBuckets(out, afterMidnight)
	}
	return flatten(buckets[minMinute:maxMinute])
}

func flatten(slots [][]*models.Trip) []*models.Trip {
	return appendBuckets(make([]*models.Trip, 0, countTrips(slots)), slots)
}

func appendBuckets(out []*models.Trip, slots [][]*models.Trip) []*models.Trip {
	for _, bucket := range slots {
		out = append(out, bucket...)
	}
	return out
}

func countTrips(slots [][]*models.Trip) int {
	n := 0
	for _, bucket := range slots {
		n += len(bucket)
	}
	return n
}
