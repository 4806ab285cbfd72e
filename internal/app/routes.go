package app

import (
	"context"
	"net/http"
	"time"

	"bikeflow.org/internal/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
)

// Routes registers every endpoint on an httprouter and wraps it with the
// Sentry, CORS and security header middleware.
//
// ctx bounds the lifetime of the cached metrics refresher.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/summary", app.summaryHandler)
	router.HandlerFunc(http.MethodGet, "/v1/traffic", app.trafficHandler)
	router.HandlerFunc(http.MethodGet, "/v1/markers", app.markersHandler)
	router.HandlerFunc(http.MethodGet, "/v1/lanes", app.lanesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/lanes/:city", app.laneGeoJSONHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.SentryMiddleware(router)
	handler = middleware.CORS(handler)
	return middleware.SecurityHeaders(handler)
}
