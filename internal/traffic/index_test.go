package traffic

import (
	"testing"
	"time"

	"bikeflow.org/internal/models"
)

func TestMinuteOfDay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{"midnight", time.Date(2024, 3, 1, 0, 0, 0, 0, boston), 0},
		{"last minute", time.Date(2024, 3, 1, 23, 59, 59, 0, boston), 1439},
		{"afternoon", time.Date(2024, 3, 1, 15, 45, 10, 0, boston), 945},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinuteOfDay(tt.in); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}

	t.Run("uses the instant's own location", func(t *testing.T) {
		utc := time.Date(2024, 3, 1, 4, 30, 0, 0, time.UTC)
		if got := MinuteOfDay(utc.In(boston)); got != 23*60+30 {
			t.Errorf("expected local minute %d, got %d", 23*60+30, got)
		}
	})
}

func TestNewMinuteIndex(t *testing.T) {
	trips := []models.Trip{
		newTrip("A", "B", 700, 715),
		newTrip("B", "C", 1439, 5),
		newTrip("C", "A", 0, 0),
		newTrip("A", "A", 700, 730),
	}
	idx := NewMinuteIndex(trips)

	if idx.Len() != len(trips) {
		t.Fatalf("expected %d trips, got %d", len(trips), idx.Len())
	}

	t.Run("each trip in exactly one bucket per table", func(t *testing.T) {
		for _, table := range []struct {
			name    string
			buckets *Buckets
			minute  func(models.Trip) int
		}{
			{"departures", idx.Departures(), func(tr models.Trip) int { return MinuteOfDay(tr.StartedAt) }},
			{"arrivals", idx.Arrivals(), func(tr models.Trip) int { return MinuteOfDay(tr.EndedAt) }},
		} {
			seen := make(map[*models.Trip]int)
			for m, bucket := range table.buckets {
				for _, trip := range bucket {
					seen[trip]++
					if want := table.minute(*trip); m != want {
						t.Errorf("%s: trip %+v in bucket %d, want %d", table.name, *trip, m, want)
					}
				}
			}
			if len(seen) != len(trips) {
				t.Errorf("%s: expected %d distinct trips, got %d", table.name, len(trips), len(seen))
			}
			for trip, n := range seen {
				if n != 1 {
					t.Errorf("%s: trip %+v appears %d times", table.name, *trip, n)
				}
			}
		}
	})

	t.Run("stable order within a bucket", func(t *testing.T) {
		bucket := idx.Departures()[700]
		if len(bucket) != 2 {
			t.Fatalf("expected 2 departures at 700, got %d", len(bucket))
		}
		if bucket[0].EndStationID != "B" || bucket[1].EndStationID != "A" {
			t.Errorf("bucket order not preserved: %+v, %+v", *bucket[0], *bucket[1])
		}
	})

	t.Run("input slice is not aliased", func(t *testing.T) {
		trips[0].StartStationID = "mutated"
		if idx.Departures()[700][0].StartStationID != "A" {
			t.Error("index should own a copy of the trips")
		}
	})
}

func TestBusiestDepartureMinute(t *testing.T) {
	idx := NewMinuteIndex([]models.Trip{
		newTrip("A", "B", 10, 20),
		newTrip("A", "B", 480, 490),
		newTrip("A", "B", 480, 495),
		newTrip("A", "B", 1000, 1010),
	})
	minute, count := idx.BusiestDepartureMinute()
	if minute != 480 || count != 2 {
		t.Errorf("expected (480, 2), got (%d, %d)", minute, count)
	}

	minute, count = NewMinuteIndex(nil).BusiestDepartureMinute()
	if minute != 0 || count != 0 {
		t.Errorf("expected (0, 0) for an empty index, got (%d, %d)", minute, count)
	}
}
