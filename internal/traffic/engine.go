package traffic

import (
	"io"
	"log/slog"
	"time"

	"bikeflow.org/internal/metrics"
	"bikeflow.org/internal/models"
	"github.com/bluele/gcache"
)

// DefaultCacheSize fits every possible filter: NoFilter plus one entry per minute.
const DefaultCacheSize = models.MinutesPerDay + 1

// Options configures an Engine.
type Options struct {
	// CacheSize bounds the number of memoized filter results. Zero means
	// DefaultCacheSize; a negative value disables memoization.
	CacheSize int
	Logger    *slog.Logger
}

// Summary describes the dataset an Engine was built from.
type Summary struct {
	Stations                int `json:"stations"`
	Trips                   int `json:"trips"`
	UnmatchedTrips          int `json:"unmatched_trips"`
	BusiestMinute           int `json:"busiest_minute"`
	BusiestMinuteDepartures int `json:"busiest_minute_departures"`
}

// Engine owns the bucket tables and station list of one dataset load and
// answers station traffic queries for a TimeFilter. It is safe for concurrent
// use because nothing it owns changes after NewEngine returns.
type Engine struct {
	stations []models.Station
	index    *MinuteIndex
	cache    gcache.Cache
	logger   *slog.Logger
	summary  Summary
}

// NewEngine indexes trips and prepares the result cache.
func NewEngine(stations []models.Station, trips []models.Trip, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		stations: append([]models.Station(nil), stations...),
		index:    NewMinuteIndex(trips),
		logger:   logger,
	}

	size := opts.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	if size > 0 {
		e.cache = gcache.New(size).
			LRU().
			LoaderFunc(func(key interface{}) (interface{}, error) {
				f, err := models.ParseTimeFilter(key.(int))
				if err != nil {
					return nil, err
				}
				return e.compute(f), nil
			}).
			Build()
	}

	e.summary = e.summarize()
	return e
}

// StationTraffic returns one record per station with the departures and
// arrivals inside the window selected by f. The returned slice belongs to the
// caller.
func (e *Engine) StationTraffic(f models.TimeFilter) []models.StationTraffic {
	metrics.TrafficRequests.WithLabelValues(boolLabel(f.IsFiltered())).Inc()

	if e.cache == nil {
		return e.compute(f)
	}

	value, err := e.cache.Get(f.Value())
	if err != nil {
		e.logger.Warn("Traffic cache lookup failed, recomputing", "filter", f.String(), "error", err)
		return e.compute(f)
	}
	cached := value.([]models.StationTraffic)
	return append([]models.StationTraffic(nil), cached...)
}

// compute runs the full filter and aggregate pipeline for f.
func (e *Engine) compute(f models.TimeFilter) []models.StationTraffic {
	start := time.Now()
	departures := FilterByMinute(e.index.Departures(), f)
	arrivals := FilterByMinute(e.index.Arrivals(), f)
	out := Aggregate(departures, arrivals, e.stations)

	metrics.TrafficComputations.Inc()
	metrics.TrafficComputeDuration.Observe(time.Since(start).Seconds())
	e.logger.Debug("Computed station traffic",
		"filter", f.String(),
		"departures", len(departures),
		"arrivals", len(arrivals),
		"duration", time.Since(start))
	return out
}

// Stations returns a copy of the static station list.
func (e *Engine) Stations() []models.Station {
	return append([]models.Station(nil), e.stations...)
}

// Summary returns dataset counts computed when the engine was built.
func (e *Engine) Summary() Summary {
	return e.summary
}

func (e *Engine) summarize() Summary {
	known := make(map[string]struct{}, len(e.stations))
	for _, s := range e.stations {
		if s.ShortName != "" {
			known[s.ShortName] = struct{}{}
		}
	}

	unmatched := 0
	for _, trip := range e.index.trips {
		_, startKnown := known[trip.StartStationID]
		_, endKnown := known[trip.EndStationID]
		if !startKnown || !endKnown {
			unmatched++
		}
	}

	minute, count := e.index.BusiestDepartureMinute()
	return Summary{
		Stations:                len(e.stations),
		Trips:                   e.index.Len(),
		UnmatchedTrips:          unmatched,
		BusiestMinute:           minute,
		BusiestMinuteDepartures: count,
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
