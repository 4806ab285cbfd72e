package main

import (
	"encoding/json"
	"fmt"
	"os"

	"bikeflow.org/internal/app"
	"bikeflow.org/internal/models"
	"bikeflow.org/internal/render"
	"github.com/urfave/cli/v2"
)

func snapshotCommand() *cli.Command {
	flags := append(configFlags(),
		&cli.IntFlag{
			Name:  "minute",
			Value: models.AnyTimeSentinel,
			Usage: "minute of the day in [0, 1439], or -1 for any time",
		},
	)

	return &cli.Command{
		Name:   "snapshot",
		Usage:  "load the dataset and print station traffic for one minute as JSON",
		Flags:  flags,
		Action: snapshot,
	}
}

func snapshot(c *cli.Context) error {
	f, err := models.ParseTimeFilter(c.Int("minute"))
	if err != nil {
		return err
	}

	application, err := newApplication(c, os.Stderr)
	if err != nil {
		return err
	}

	d, err := application.DatasetService.Load(c.Context)
	if err != nil {
		return fmt.Errorf("dataset load failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(app.TrafficResponse{
		Minute:   f.Value(),
		Label:    render.FormatMinute(f),
		Stations: d.Engine.StationTraffic(f),
	})
}
