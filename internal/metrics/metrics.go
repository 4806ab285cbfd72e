package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatasetReady Dataset status (loaded/not loaded)
	DatasetReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bikeflow_dataset_ready",
			Help: "Whether the station and trip dataset is loaded and indexed (0 = not ready, 1 = ready)",
		},
	)
)

var (
	StationsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikeflow_stations_loaded",
		Help: "Number of stations in the loaded station information feed",
	})

	TripsIndexed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikeflow_trips_indexed",
		Help: "Number of trips placed into the per-minute departure and arrival buckets",
	})

	TripsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bikeflow_trips_skipped_total",
		Help: "Number of trip rows skipped while loading, by reason",
	}, []string{"reason"})
)

var (
	LaneFeatures = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bikeflow_lane_features",
		Help: "Number of bike-lane features loaded for a city",
	}, []string{"city"})

	LaneLengthMeters = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bikeflow_lane_length_meters",
		Help: "Total length of the bike-lane network loaded for a city",
	}, []string{"city"})
)

var (
	TrafficRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bikeflow_traffic_requests_total",
		Help: "Number of station traffic lookups, by whether a time filter was applied",
	}, []string{"filtered"})

	TrafficComputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bikeflow_traffic_computations_total",
		Help: "Number of filter and aggregate recomputations (cache misses)",
	})

	TrafficComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bikeflow_traffic_compute_duration_seconds",
		Help:    "Time spent filtering and aggregating trips for one time filter",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)

var (
	ClusterTraffic = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bikeflow_cluster_traffic",
		Help: "All-day trips (departures plus arrivals) summed over the stations of an S2 cell",
	}, []string{"cluster_id"})

	ClusterStations = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bikeflow_cluster_stations",
		Help: "Number of stations that fall in an S2 cell",
	}, []string{"cluster_id"})
)

var (
	// OutgoingLatency tracks how long remote dataset downloads take.
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bikeflow_outgoing_request_duration_seconds",
		Help:    "Latency of outgoing HTTP requests made while loading datasets",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})
)

var (
	DatasetAgeSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikeflow_dataset_age_seconds",
		Help: "Seconds since the current dataset finished loading",
	})
)
