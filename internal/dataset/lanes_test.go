package dataset

import (
	"context"
	"errors"
	"os"
	"testing"

	"bikeflow.org/internal/config"
)

func TestDecodeLanes(t *testing.T) {
	raw, err := os.ReadFile("testdata/boston.geojson")
	if err != nil {
		t.Fatal(err)
	}

	lanes, err := DecodeLanes("boston", raw)
	if err != nil {
		t.Fatalf("DecodeLanes failed: %v", err)
	}
	if lanes.Features != 3 {
		t.Errorf("expected 3 features, got %d", lanes.Features)
	}
	if lanes.LengthMeters < 2600 || lanes.LengthMeters > 2670 {
		t.Errorf("expected about 2635 m of lanes, got %.1f", lanes.LengthMeters)
	}
	if lanes.BBox.MinLat != 42.35 || lanes.BBox.MaxLat != 42.365 {
		t.Errorf("unexpected latitude bounds %+v", lanes.BBox)
	}
	if lanes.BBox.MinLon != -71.1 || lanes.BBox.MaxLon != -71.08 {
		t.Errorf("unexpected longitude bounds %+v", lanes.BBox)
	}
	if string(lanes.GeoJSON) != string(raw) {
		t.Error("expected GeoJSON to be kept verbatim")
	}
}

func TestDecodeLanesInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed", `{"type": "FeatureCollection", "features": [`},
		{"feature", `{"type": "Feature", "geometry": null}`},
		{"features not array", `{"type": "FeatureCollection", "features": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLanes("boston", []byte(tt.raw))
			if !errors.Is(err, ErrInvalidGeoJSON) {
				t.Errorf("expected ErrInvalidGeoJSON, got %v", err)
			}
		})
	}
}

func TestLoadLanes(t *testing.T) {
	sources := []config.LaneSource{
		{City: "cambridge", Source: "testdata/cambridge.geojson"},
		{City: "somerville", Source: "testdata/missing.geojson"},
		{City: "boston", Source: "testdata/boston.geojson"},
		{City: "medford", Source: "testdata/not_a_collection.geojson"},
	}

	lanes := LoadLanes(context.Background(), nil, sources, discardLogger())
	if len(lanes) != 2 {
		t.Fatalf("expected 2 cities loaded, got %d", len(lanes))
	}
	if lanes[0].City != "cambridge" || lanes[1].City != "boston" {
		t.Errorf("expected source order to be kept, got %s, %s", lanes[0].City, lanes[1].City)
	}
}
