package app

import (
	"context"
	"log/slog"
	"net/http"

	"bikeflow.org/internal/config"
	"bikeflow.org/internal/dataset"
)

// Application wires configuration, the dataset service and the logger
// together for the HTTP handlers.
type Application struct {
	Config         *config.Config
	DatasetService *dataset.DatasetService
	Logger         *slog.Logger
	Version        string
}

// New creates and wires all dependencies for the Application.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, version string) *Application {
	return &Application{
		Config:         cfg,
		DatasetService: dataset.NewDatasetService(cfg, client, logger),
		Logger:         logger,
		Version:        version,
	}
}

// StartDatasetLoad loads the dataset in the background. The server keeps
// answering while it runs; traffic endpoints return 503 until it publishes.
func (app *Application) StartDatasetLoad(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := app.DatasetService.Load(ctx); err != nil {
			app.Logger.Error("Dataset unavailable, traffic endpoints will return 503", "error", err)
		}
	}()
	return done
}
