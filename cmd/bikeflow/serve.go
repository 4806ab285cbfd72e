package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bikeflow.org/internal/report"
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	flags := append(configFlags(),
		&cli.IntFlag{
			Name:  "port",
			Usage: "API server port (overrides server.port)",
		},
		&cli.StringFlag{
			Name:  "env",
			Usage: "environment: development|staging|production (overrides server.env)",
		},
	)

	return &cli.Command{
		Name:   "serve",
		Usage:  "load the dataset in the background and serve the traffic API",
		Flags:  flags,
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := newApplication(c, os.Stdout)
	if err != nil {
		return err
	}
	cfg, logger := application.Config, application.Logger

	application.StartDatasetLoad(ctx)
	application.StartMetricsCollection(ctx, 30*time.Second)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Server.Env)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		report.ReportError(err, sentry.LevelFatal)
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
