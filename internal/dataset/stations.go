package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bikeflow.org/internal/models"
)

// ErrNoStations is returned when a station feed decodes but lists no stations.
var ErrNoStations = errors.New("station feed contains no stations")

// DecodeStations decodes a station information feed. Stations without a
// short_name are kept; no trip can reference them, so they always show zero
// traffic.
func DecodeStations(r io.Reader) ([]models.Station, error) {
	var feed models.StationFeed
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode station feed: %w", err)
	}
	if len(feed.Data.Stations) == 0 {
		return nil, ErrNoStations
	}
	return feed.Data.Stations, nil
}

// LoadStations reads and decodes the station feed at source.
func LoadStations(ctx context.Context, client *http.Client, source string) ([]models.Station, error) {
	rc, err := Open(ctx, client, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	stations, err := DecodeStations(rc)
	if err != nil {
		return nil, fmt.Errorf("stations %s: %w", source, err)
	}
	return stations, nil
}
