package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"bikeflow.org/internal/app"
	"bikeflow.org/internal/config"
	"bikeflow.org/internal/report"
	"github.com/urfave/cli/v2"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

const sentryOptionsKey = "sentry_options"

func main() {
	if err := newCLIApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newCLIApp builds the command tree. Sentry is started from SENTRY_DSN before
// any command runs so configuration errors are reported too; sentryOpts are
// applied on every initialization.
func newCLIApp(sentryOpts ...report.Option) *cli.App {
	return &cli.App{
		Name:     "bikeflow",
		Usage:    "Bike-share station traffic by time of day",
		Version:  version,
		Metadata: map[string]interface{}{sentryOptionsKey: sentryOpts},
		Before: func(c *cli.Context) error {
			if err := report.SetupSentry("", "", version, sentryOpts...); err != nil {
				fmt.Fprintln(os.Stderr, "Sentry disabled:", err)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			report.FlushSentry()
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			snapshotCommand(),
		},
	}
}

func sentryOptions(c *cli.Context) []report.Option {
	opts, _ := c.App.Metadata[sentryOptionsKey].([]report.Option)
	return opts
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config-file",
			Aliases: []string{"config"},
			Usage:   "path to a local YAML configuration file",
		},
		&cli.StringFlag{
			Name:  "config-url",
			Usage: "URL of a remote YAML configuration file",
		},
	}
}

// loadConfig reads the configuration named by --config-file or --config-url.
// Basic auth for the URL comes from CONFIG_AUTH_USER and CONFIG_AUTH_PASS.
func loadConfig(c *cli.Context, client *http.Client) (*config.Config, error) {
	configFile, configURL := c.String("config-file"), c.String("config-url")
	if err := config.ValidateConfigFlags(configFile, configURL); err != nil {
		return nil, err
	}

	if configFile != "" {
		return config.LoadConfigFromFile(configFile)
	}
	return config.LoadConfigFromURL(c.Context, client, configURL,
		os.Getenv("CONFIG_AUTH_USER"), os.Getenv("CONFIG_AUTH_PASS"))
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// newApplication loads the configuration, applies flag overrides and wires
// the Application. Logs go to logOut.
func newApplication(c *cli.Context, logOut io.Writer) (*app.Application, error) {
	client := app.NewPooledClient()
	cfg, err := loadConfig(c, client)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if c.IsSet("env") {
		cfg.Server.Env = c.String("env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(cfg, logOut)
	if err := report.SetupSentry(cfg.SentryDSN, cfg.Server.Env, version, sentryOptions(c)...); err != nil {
		logger.Warn("Sentry disabled", "error", err)
	}
	lanes := make([]string, 0, len(cfg.Data.Lanes))
	for _, l := range cfg.Data.Lanes {
		lanes = append(lanes, l.City)
	}
	report.ConfigureScope(report.Scope{
		Env:            cfg.Server.Env,
		Version:        version,
		Timezone:       cfg.Timezone,
		StationsSource: cfg.Data.Stations,
		TripsSource:    cfg.Data.Trips,
		LaneCities:     lanes,
	})
	return app.New(cfg, logger, client, version), nil
}
