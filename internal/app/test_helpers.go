package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"bikeflow.org/internal/config"
	"bikeflow.org/internal/dataset"
	"bikeflow.org/internal/geo"
	"bikeflow.org/internal/models"
	"bikeflow.org/internal/traffic"
)

// newTestApplication returns an Application whose dataset has not loaded yet.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.NewConfig(4000, "testing", config.DataConfig{
		Stations: "stations.json",
		Trips:    "trips.csv",
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &Application{
		Config:         cfg,
		DatasetService: dataset.NewDatasetService(cfg, nil, logger),
		Logger:         logger,
		Version:        "test-version",
	}
}

// newReadyTestApplication publishes a small in-memory dataset: three trips
// leave A at 11:40 and one arrives at A at 11:40; B sees one overnight trip.
func newReadyTestApplication(t *testing.T) *Application {
	t.Helper()

	app := newTestApplication(t)

	stations := []models.Station{
		{ShortName: "A", Name: "Station A", Lon: -71.09, Lat: 42.36},
		{ShortName: "B", Name: "Station B", Lon: -71.10, Lat: 42.37},
	}
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 3, 1, hour, minute, 0, 0, time.UTC)
	}
	trips := []models.Trip{
		{StartStationID: "A", EndStationID: "B", StartedAt: at(11, 40), EndedAt: at(13, 0)},
		{StartStationID: "A", EndStationID: "B", StartedAt: at(11, 40), EndedAt: at(13, 0)},
		{StartStationID: "A", EndStationID: "B", StartedAt: at(11, 40), EndedAt: at(13, 0)},
		{StartStationID: "B", EndStationID: "A", StartedAt: at(3, 0), EndedAt: at(11, 40)},
		{StartStationID: "B", EndStationID: "Z", StartedAt: at(23, 50), EndedAt: at(23, 55)},
	}

	lanes, err := dataset.DecodeLanes("cambridge", []byte(`{"type":"FeatureCollection","features":[`+
		`{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[-71.1,42.365],[-71.09,42.365]]}}]}`))
	if err != nil {
		t.Fatalf("failed to decode test lanes: %v", err)
	}

	bbox, err := geo.ComputeBoundingBox(stations)
	if err != nil {
		t.Fatalf("failed to compute station bounding box: %v", err)
	}
	app.DatasetService.Publish(&dataset.Dataset{
		Engine:       traffic.NewEngine(stations, trips, traffic.Options{}),
		Lanes:        []*dataset.CityLanes{lanes},
		StationsBBox: bbox,
		SkippedTrips: 2,
		LoadedAt:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	return app
}
