package traffic

import (
	"time"

	"bikeflow.org/internal/models"
)

// Buckets holds one slot per minute of the day. Slot i holds the trips whose
// event happened at wall-clock minute i (hour*60+minute).
type Buckets [models.MinutesPerDay][]*models.Trip

// MinuteIndex owns the trips of one dataset load and the two bucket tables
// built from them. It is immutable after NewMinuteIndex returns.
type MinuteIndex struct {
	trips      []models.Trip
	departures Buckets
	arrivals   Buckets
}

// MinuteOfDay returns hour*60+minute of t in t's own location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// NewMinuteIndex copies the trips and places each one in the departure bucket
// of its start minute and the arrival bucket of its end minute. Trips sharing a
// minute keep their input order.
func NewMinuteIndex(trips []models.Trip) *MinuteIndex {
	idx := &MinuteIndex{
		trips: append([]models.Trip(nil), trips...),
	}
	for i := range idx.trips {
		trip := &idx.trips[i]
		start := MinuteOfDay(trip.StartedAt)
		end := MinuteOfDay(trip.EndedAt)
		idx.departures[start] = append(idx.departures[start], trip)
		idx.arrivals[end] = append(idx.arrivals[end], trip)
	}
	return idx
}

// Departures returns the departure bucket table. Callers must not modify it.
func (idx *MinuteIndex) Departures() *Buckets {
	return &idx.departures
}

// Arrivals returns the arrival bucket table. Callers must not modify it.
func (idx *MinuteIndex) Arrivals() *Buckets {
	return &idx.arrivals
}

// Len returns the number of indexed trips.
func (idx *MinuteIndex) Len() int {
	return len(idx.trips)
}

// BusiestDepartureMinute returns the minute with the most departures and its
// count. Ties resolve to the earliest minute; an empty index returns (0, 0).
func (idx *MinuteIndex) BusiestDepartureMinute() (minute, count int) {
	for m, bucket := range idx.departures {
		if len(bucket) > count {
			minute, count = m, len(bucket)
		}
	}
	return minute, count
}
