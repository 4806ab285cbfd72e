package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"bikeflow.org/internal/config"
	"bikeflow.org/internal/geo"
	"bikeflow.org/internal/metrics"
	"bikeflow.org/internal/models"
	"bikeflow.org/internal/report"
	"bikeflow.org/internal/traffic"
	"github.com/getsentry/sentry-go"
)

// Status is the lifecycle state of a DatasetService.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Dataset is one fully loaded, read-only snapshot.
type Dataset struct {
	Engine       *traffic.Engine
	Lanes        []*CityLanes
	StationsBBox geo.BoundingBox
	SkippedTrips int
	LoadedAt     time.Time
}

// Lane returns the lanes loaded for city.
func (d *Dataset) Lane(city string) (*CityLanes, bool) {
	for _, l := range d.Lanes {
		if l.City == city {
			return l, true
		}
	}
	return nil, false
}

// DatasetService loads the configured dataset and publishes it for readers.
type DatasetService struct {
	Config *config.Config
	Client *http.Client
	Logger *slog.Logger

	mu      sync.RWMutex
	status  Status
	dataset *Dataset
	err     error
}

func NewDatasetService(cfg *config.Config, client *http.Client, logger *slog.Logger) *DatasetService {
	return &DatasetService{
		Config: cfg,
		Client: client,
		Logger: logger,
		status: StatusLoading,
	}
}

// Current returns the published dataset, if any.
func (s *DatasetService) Current() (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.dataset != nil
}

// Status returns the lifecycle state and, when failed, the load error.
func (s *DatasetService) Status() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.err
}

// Publish makes d the current dataset and marks the service ready.
func (s *DatasetService) Publish(d *Dataset) {
	s.mu.Lock()
	s.dataset = d
	s.status = StatusReady
	s.err = nil
	s.mu.Unlock()
	metrics.DatasetReady.Set(1)
}

func (s *DatasetService) fail(err error) {
	s.mu.Lock()
	s.status = StatusFailed
	s.err = err
	s.mu.Unlock()
	metrics.DatasetReady.Set(0)
}

// Load runs the whole pipeline: stations, then trips, then indexing, then the
// lane files concurrently. On success the dataset is published. A stations or
// trips failure leaves the service failed; there is no retry.
func (s *DatasetService) Load(ctx context.Context) (*Dataset, error) {
	d, err := s.load(ctx)
	if err != nil {
		s.Logger.Error("Dataset load failed", "error", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: report.Tags("stage", "dataset_load"),
			ExtraContext: map[string]interface{}{
				"stations": s.Config.Data.Stations,
				"trips":    s.Config.Data.Trips,
			},
			Level: sentry.LevelError,
		})
		s.fail(err)
		return nil, err
	}
	s.Publish(d)
	return d, nil
}

func (s *DatasetService) load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	loc, err := s.Config.Location()
	if err != nil {
		return nil, err
	}

	stations, err := LoadStations(ctx, s.Client, s.Config.Data.Stations)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}
	metrics.StationsLoaded.Set(float64(len(stations)))
	s.Logger.Info("Loaded stations", "stations", len(stations), "source", s.Config.Data.Stations)

	tripLoad, err := LoadTrips(ctx, s.Client, s.Config.Data.Trips, loc, s.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	s.Logger.Info("Loaded trips",
		"rows", tripLoad.Rows,
		"trips", len(tripLoad.Trips),
		"skipped", tripLoad.SkippedTotal())

	engine := traffic.NewEngine(stations, tripLoad.Trips, traffic.Options{
		CacheSize: s.Config.CacheSize,
		Logger:    s.Logger,
	})
	summary := engine.Summary()
	metrics.TripsIndexed.Set(float64(summary.Trips))
	clusters := metrics.ReportStationClusters(engine.StationTraffic(models.NoFilter()))
	s.Logger.Info("Indexed trips",
		"trips", summary.Trips,
		"unmatched", summary.UnmatchedTrips,
		"busiest_minute", summary.BusiestMinute,
		"clusters", len(clusters))

	bbox, err := geo.ComputeBoundingBox(stations)
	if err != nil {
		s.Logger.Warn("Could not compute station bounding box", "error", err)
		bbox = geo.EmptyBoundingBox()
	}

	lanes := LoadLanes(ctx, s.Client, s.Config.Data.Lanes, s.Logger)

	s.Logger.Info("Dataset ready", "duration", time.Since(start), "lane_cities", len(lanes))
	return &Dataset{
		Engine:       engine,
		Lanes:        lanes,
		StationsBBox: bbox,
		SkippedTrips: tripLoad.SkippedTotal(),
		LoadedAt:     time.Now(),
	}, nil
}
