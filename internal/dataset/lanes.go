package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"bikeflow.org/internal/config"
	"bikeflow.org/internal/geo"
	"bikeflow.org/internal/metrics"
	"bikeflow.org/internal/report"
	"github.com/getsentry/sentry-go"
	"github.com/sourcegraph/conc/pool"
	"github.com/tidwall/gjson"
)

// ErrInvalidGeoJSON is returned for lane files that are not a GeoJSON FeatureCollection.
var ErrInvalidGeoJSON = errors.New("lane file is not a GeoJSON FeatureCollection")

const maxConcurrentLaneLoads = 4

// CityLanes is one city's bike-lane network. The GeoJSON is kept verbatim for
// the map renderer; the other fields are derived from it.
type CityLanes struct {
	City         string
	GeoJSON      json.RawMessage
	Features     int
	LengthMeters float64
	BBox         geo.BoundingBox
}

// DecodeLanes validates a lane GeoJSON document and measures its line
// geometries. Features of other geometry types are counted but not measured.
func DecodeLanes(city string, raw []byte) (*CityLanes, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidGeoJSON)
	}
	doc := gjson.ParseBytes(raw)
	if doc.Get("type").String() != "FeatureCollection" {
		return nil, ErrInvalidGeoJSON
	}
	features := doc.Get("features")
	if !features.IsArray() {
		return nil, fmt.Errorf("%w: features is not an array", ErrInvalidGeoJSON)
	}

	lanes := &CityLanes{
		City:    city,
		GeoJSON: json.RawMessage(raw),
		BBox:    geo.EmptyBoundingBox(),
	}
	features.ForEach(func(_, feature gjson.Result) bool {
		lanes.Features++
		coords := feature.Get("geometry.coordinates")
		switch feature.Get("geometry.type").String() {
		case "LineString":
			lanes.addLine(coords)
		case "MultiLineString":
			coords.ForEach(func(_, line gjson.Result) bool {
				lanes.addLine(line)
				return true
			})
		}
		return true
	})
	return lanes, nil
}

func (l *CityLanes) addLine(coords gjson.Result) {
	var positions [][]float64
	coords.ForEach(func(_, pos gjson.Result) bool {
		values := pos.Array()
		if len(values) < 2 {
			return true
		}
		lon, lat := values[0].Float(), values[1].Float()
		positions = append(positions, []float64{lon, lat})
		l.BBox.Extend(lat, lon)
		return true
	})
	l.LengthMeters += geo.LineLength(positions)
}

// LoadLanes fetches every lane source concurrently. A source that fails to
// load is logged and reported, and its city is left out of the result. The
// result keeps the order of sources.
func LoadLanes(ctx context.Context, client *http.Client, sources []config.LaneSource, logger *slog.Logger) []*CityLanes {
	p := pool.NewWithResults[*CityLanes]().WithMaxGoroutines(maxConcurrentLaneLoads)

	for _, src := range sources {
		p.Go(func() *CityLanes {
			raw, err := ReadAll(ctx, client, src.Source)
			if err == nil {
				var lanes *CityLanes
				lanes, err = DecodeLanes(src.City, raw)
				if err == nil {
					metrics.LaneFeatures.WithLabelValues(src.City).Set(float64(lanes.Features))
					metrics.LaneLengthMeters.WithLabelValues(src.City).Set(lanes.LengthMeters)
					logger.Info("Loaded bike lanes",
						"city", src.City,
						"features", lanes.Features,
						"length_m", int(lanes.LengthMeters))
					return lanes
				}
			}

			logger.Error("Failed to load bike lanes", "city", src.City, "source", src.Source, "error", err)
			report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
				Tags:  report.Tags("city", src.City),
				Level: sentry.LevelWarning,
			})
			return nil
		})
	}

	byCity := make(map[string]*CityLanes, len(sources))
	for _, lanes := range p.Wait() {
		if lanes != nil {
			byCity[lanes.City] = lanes
		}
	}

	out := make([]*CityLanes, 0, len(byCity))
	for _, src := range sources {
		if lanes, ok := byCity[src.City]; ok {
			out = append(out, lanes)
		}
	}
	return out
}
