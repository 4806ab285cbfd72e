package traffic

import (
	"strconv"
	"testing"
	"time"

	"bikeflow.org/internal/models"
)

// boston is a fixed-offset zone so tests do not depend on the machine's local time.
var boston = time.FixedZone("EST", -5*60*60)

// atMinute returns a March 2024 instant at the given minute of the day in boston.
func atMinute(minute int) time.Time {
	return time.Date(2024, time.March, 12, minute/60, minute%60, 30, 0, boston)
}

// newTrip builds a trip between two stations starting and ending at the given minutes.
func newTrip(from, to string, startMinute, endMinute int) models.Trip {
	return models.Trip{
		StartStationID: from,
		EndStationID:   to,
		StartedAt:      atMinute(startMinute),
		EndedAt:        atMinute(endMinute),
	}
}

// mustAtMinute wraps models.AtMinute for minutes known to be valid.
func mustAtMinute(t *testing.T, minute int) models.TimeFilter {
	t.Helper()
	f, err := models.AtMinute(minute)
	if err != nil {
		t.Fatalf("AtMinute(%d) failed: %v", minute, err)
	}
	return f
}

// markedBuckets returns buckets where slot i holds one trip whose start
// station id is the slot number, so filtered output can be checked by order.
func markedBuckets() *Buckets {
	var b Buckets
	for i := range b {
		trip := newTrip(itoa(i), itoa(i), i, i)
		b[i] = []*models.Trip{&trip}
	}
	return &b
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
