package app

import (
	"context"
	"time"

	"bikeflow.org/internal/dataset"
	"bikeflow.org/internal/metrics"
)

// StartMetricsCollection refreshes time-based gauges every interval until ctx
// is cancelled.
func (app *Application) StartMetricsCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.CollectMetrics(time.Now())
			}
		}
	}()
}

// CollectMetrics updates the dataset age and readiness gauges as of now.
func (app *Application) CollectMetrics(now time.Time) {
	status, _ := app.DatasetService.Status()
	d, ok := app.DatasetService.Current()
	if !ok || status != dataset.StatusReady {
		metrics.DatasetReady.Set(0)
		return
	}
	metrics.DatasetReady.Set(1)
	metrics.DatasetAgeSeconds.Set(now.Sub(d.LoadedAt).Seconds())
}
