package report

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// Option adjusts the client options before sentry.Init.
type Option func(*sentry.ClientOptions)

// SetupSentry initializes the Sentry client. The SENTRY_DSN environment
// variable takes precedence over dsn. An empty DSN leaves the client as a
// no-op. It may be called again once the configuration is known.
func SetupSentry(dsn, env, version string, opts ...Option) error {
	if v := os.Getenv("SENTRY_DSN"); v != "" {
		dsn = v
	}
	clientOpts := sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          "bikeflow@" + version,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}
	return nil
}

func FlushSentry() {
	sentry.Flush(2 * time.Second)
}
