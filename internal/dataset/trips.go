package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bikeflow.org/internal/metrics"
	"bikeflow.org/internal/models"
	"github.com/gocarina/gocsv"
)

// ErrMissingColumn is returned when the trips CSV header lacks a required column.
var ErrMissingColumn = errors.New("trips csv is missing a required column")

// Skip reasons, used as the reason label of bikeflow_trips_skipped_total.
const (
	SkipBadStartedAt   = "bad_started_at"
	SkipBadEndedAt     = "bad_ended_at"
	SkipMissingStation = "missing_station"
)

var requiredTripColumns = []string{"started_at", "ended_at", "start_station_id", "end_station_id"}

// Local date-time layouts. Fractional seconds are accepted by time.Parse
// even though the layouts do not name them.
var localTimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

type tripRecord struct {
	StartedAt      string `csv:"started_at"`
	EndedAt        string `csv:"ended_at"`
	StartStationID string `csv:"start_station_id"`
	EndStationID   string `csv:"end_station_id"`
}

// TripLoad is the outcome of decoding a trips file.
type TripLoad struct {
	Trips   []models.Trip
	Rows    int
	Skipped map[string]int
}

// SkippedTotal returns the number of rows dropped for any reason.
func (l *TripLoad) SkippedTotal() int {
	n := 0
	for _, c := range l.Skipped {
		n += c
	}
	return n
}

// ParseTimestamp parses a trip timestamp as a wall-clock time in loc. RFC 3339
// values carry their own offset and are converted into loc.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range localTimestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
	}
	return t.In(loc), nil
}

// readTripHeader reads and validates the header row. gocsv silently leaves
// unmatched fields empty, so a missing column has to be caught here.
func readTripHeader(r *csv.Reader) ([]string, error) {
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	for _, col := range requiredTripColumns {
		found := false
		for _, h := range header {
			if h == col {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return header, nil
}

// tripRowDecoder hands gocsv the already validated header, then the
// remaining rows one at a time.
type tripRowDecoder struct {
	*csv.Reader
	header []string
}

func (d *tripRowDecoder) GetCSVRow() ([]string, error) {
	if d.header != nil {
		h := d.header
		d.header = nil
		return h, nil
	}
	return d.Reader.Read()
}

func (d *tripRowDecoder) GetCSVRows() ([][]string, error) {
	rows, err := d.Reader.ReadAll()
	if d.header != nil {
		rows = append([][]string{d.header}, rows...)
		d.header = nil
	}
	return rows, err
}

// DecodeTrips decodes a trips CSV row by row. Rows with an unparseable
// timestamp or an empty station id are skipped, counted and logged at debug
// level.
func DecodeTrips(r io.Reader, loc *time.Location, logger *slog.Logger) (*TripLoad, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	header, err := readTripHeader(csvReader)
	if err != nil {
		if errors.Is(err, ErrMissingColumn) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to decode trips csv: %w", err)
	}

	records := make(chan *tripRecord, 64)
	errc := make(chan error, 1)
	go func() {
		errc <- gocsv.UnmarshalDecoderToChan(&tripRowDecoder{Reader: csvReader, header: header}, records)
	}()

	load := &TripLoad{Skipped: make(map[string]int)}
	// gocsv closes records once it stops, on success and on error alike.
	for rec := range records {
		load.Rows++
		trip, reason := rec.toTrip(loc)
		if reason != "" {
			load.Skipped[reason]++
			metrics.TripsSkipped.WithLabelValues(reason).Inc()
			logger.Debug("Skipping trip row", "row", load.Rows+1, "reason", reason)
			continue
		}
		load.Trips = append(load.Trips, trip)
	}
	if err := <-errc; err != nil {
		return nil, fmt.Errorf("failed to decode trips csv: %w", err)
	}
	return load, nil
}

func (rec *tripRecord) toTrip(loc *time.Location) (models.Trip, string) {
	start := strings.TrimSpace(rec.StartStationID)
	end := strings.TrimSpace(rec.EndStationID)
	if start == "" || end == "" {
		return models.Trip{}, SkipMissingStation
	}
	startedAt, err := ParseTimestamp(rec.StartedAt, loc)
	if err != nil {
		return models.Trip{}, SkipBadStartedAt
	}
	endedAt, err := ParseTimestamp(rec.EndedAt, loc)
	if err != nil {
		return models.Trip{}, SkipBadEndedAt
	}
	return models.Trip{
		StartStationID: start,
		EndStationID:   end,
		StartedAt:      startedAt,
		EndedAt:        endedAt,
	}, ""
}

// LoadTrips reads and decodes the trips CSV at source.
func LoadTrips(ctx context.Context, client *http.Client, source string, loc *time.Location, logger *slog.Logger) (*TripLoad, error) {
	rc, err := Open(ctx, client, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	load, err := DecodeTrips(rc, loc, logger)
	if err != nil {
		return nil, fmt.Errorf("trips %s: %w", source, err)
	}
	return load, nil
}
