package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serve(t *testing.T, app *Application, target string) *httptest.ResponseRecorder {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rr := httptest.NewRecorder()
	app.Routes(ctx).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHealthcheckHandler(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		app := newTestApplication(t)

		rr := httptest.NewRecorder()
		request, err := http.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
		if err != nil {
			t.Fatal(err)
		}
		app.healthcheckHandler(rr, request)

		if status := rr.Code; status != http.StatusServiceUnavailable {
			t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusServiceUnavailable)
		}

		var resp HealthStatus
		decode(t, rr, &resp)
		if resp.Status != "available" {
			t.Errorf("expected status 'available', got %q", resp.Status)
		}
		if resp.Environment != "testing" {
			t.Errorf("expected environment 'testing', got %q", resp.Environment)
		}
		if resp.Version != "test-version" {
			t.Errorf("expected version 'test-version', got %q", resp.Version)
		}
		if resp.Dataset != "loading" || resp.Ready {
			t.Errorf("expected loading and not ready, got %q ready=%v", resp.Dataset, resp.Ready)
		}
	})

	t.Run("ready", func(t *testing.T) {
		rr := serve(t, newReadyTestApplication(t), "/v1/healthcheck")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}

		var resp HealthStatus
		decode(t, rr, &resp)
		if !resp.Ready || resp.Dataset != "ready" {
			t.Errorf("expected ready, got %+v", resp)
		}
		if resp.Stations != 2 || resp.Trips != 5 {
			t.Errorf("expected 2 stations and 5 trips, got %d and %d", resp.Stations, resp.Trips)
		}
	})
}

func TestEndpointsBeforeLoad(t *testing.T) {
	app := newTestApplication(t)

	for _, target := range []string{"/v1/traffic", "/v1/traffic?minute=700", "/v1/markers", "/v1/lanes", "/v1/lanes/boston", "/v1/summary"} {
		t.Run(target, func(t *testing.T) {
			rr := serve(t, app, target)
			if rr.Code != http.StatusServiceUnavailable {
				t.Errorf("expected 503, got %d", rr.Code)
			}
			if rr.Header().Get("Retry-After") == "" {
				t.Error("expected Retry-After header")
			}
		})
	}
}

func TestEndpointsAfterFailedLoad(t *testing.T) {
	app := newTestApplication(t)
	if _, err := app.DatasetService.Load(context.Background()); err == nil {
		t.Fatal("expected load of missing files to fail")
	}

	rr := serve(t, app, "/v1/traffic")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rr, &resp)
	if resp.Error != "the dataset failed to load" {
		t.Errorf("unexpected error message %q", resp.Error)
	}
}

func TestTrafficHandler(t *testing.T) {
	app := newReadyTestApplication(t)

	tests := []struct {
		name       string
		target     string
		wantMinute int
		wantLabel  string
		wantA      [3]int
		wantB      [3]int
	}{
		{"any time", "/v1/traffic", -1, "Any Time", [3]int{3, 1, 4}, [3]int{2, 3, 5}},
		{"sentinel", "/v1/traffic?minute=-1", -1, "Any Time", [3]int{3, 1, 4}, [3]int{2, 3, 5}},
		{"late morning", "/v1/traffic?minute=700", 700, "11:40 AM", [3]int{3, 1, 4}, [3]int{0, 0, 0}},
		{"wraps midnight", "/v1/traffic?minute=10", 10, "12:10 AM", [3]int{0, 0, 0}, [3]int{1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, app, tt.target)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp TrafficResponse
			decode(t, rr, &resp)
			if resp.Minute != tt.wantMinute || resp.Label != tt.wantLabel {
				t.Errorf("expected minute %d label %q, got %d %q", tt.wantMinute, tt.wantLabel, resp.Minute, resp.Label)
			}
			if len(resp.Stations) != 2 {
				t.Fatalf("expected 2 stations, got %d", len(resp.Stations))
			}
			for i, want := range [][3]int{tt.wantA, tt.wantB} {
				st := resp.Stations[i]
				got := [3]int{st.Departures, st.Arrivals, st.Total}
				if got != want {
					t.Errorf("station %s: expected %v, got %v", st.ShortName, want, got)
				}
			}
		})
	}
}

func TestTrafficHandlerBadMinute(t *testing.T) {
	app := newReadyTestApplication(t)

	for _, target := range []string{"/v1/traffic?minute=abc", "/v1/traffic?minute=1440", "/v1/traffic?minute=-2", "/v1/markers?minute=9.5"} {
		t.Run(target, func(t *testing.T) {
			rr := serve(t, app, target)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestMarkersHandler(t *testing.T) {
	rr := serve(t, newReadyTestApplication(t), "/v1/markers?minute=700")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp MarkersResponse
	decode(t, rr, &resp)
	if resp.Label != "11:40 AM" || len(resp.Markers) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}

	a := resp.Markers[0]
	if a.ID != "A" || a.DepartureRatio != 1 {
		t.Errorf("expected A with top flow level, got %+v", a)
	}
	if a.Radius <= 2 || a.Radius >= 3 {
		t.Errorf("expected radius just above the minimum, got %v", a.Radius)
	}
	if a.Title != "4 trips (3 departures, 1 arrivals)" {
		t.Errorf("unexpected title %q", a.Title)
	}
	if b := resp.Markers[1]; b.Radius != 2 || b.DepartureRatio != 0 {
		t.Errorf("expected idle station at minimum radius, got %+v", b)
	}
}

func TestLanesHandler(t *testing.T) {
	app := newReadyTestApplication(t)

	t.Run("layers", func(t *testing.T) {
		rr := serve(t, app, "/v1/lanes")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}

		var resp LanesResponse
		decode(t, rr, &resp)
		if len(resp.Lanes) != 1 {
			t.Fatalf("expected one lane layer, got %d", len(resp.Lanes))
		}
		lane := resp.Lanes[0]
		if lane.City != "cambridge" || lane.SourceID != "cambridge_route" || lane.Paint.LineColor != "green" {
			t.Errorf("unexpected lane layer %+v", lane)
		}
		if lane.Features != 1 || lane.LengthMeters <= 0 || lane.BBox == nil {
			t.Errorf("expected measured lane layer, got %+v", lane)
		}
		if resp.View.Zoom != 12 || resp.StationsBBox == nil {
			t.Errorf("unexpected view %+v bbox %v", resp.View, resp.StationsBBox)
		}
		// Stations span lat 42.36-42.37; the lane sits at 42.365 but reaches lon -71.1.
		if resp.Bounds == nil || resp.Bounds.MaxLat != 42.37 || resp.Bounds.MinLon != -71.1 {
			t.Errorf("unexpected bounds %+v", resp.Bounds)
		}
		if resp.FitCenter == nil || resp.FitCenter[1] < 42.36 || resp.FitCenter[1] > 42.37 {
			t.Errorf("unexpected fit center %v", resp.FitCenter)
		}
	})

	t.Run("geojson", func(t *testing.T) {
		rr := serve(t, app, "/v1/lanes/cambridge")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/geo+json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if !strings.Contains(rr.Body.String(), `"FeatureCollection"`) {
			t.Errorf("expected raw GeoJSON body, got %s", rr.Body.String())
		}
	})

	t.Run("unknown city", func(t *testing.T) {
		rr := serve(t, app, "/v1/lanes/springfield")
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rr.Code)
		}
	})
}

func TestSummaryHandler(t *testing.T) {
	rr := serve(t, newReadyTestApplication(t), "/v1/summary")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp SummaryResponse
	decode(t, rr, &resp)
	if resp.Stations != 2 || resp.Trips != 5 || resp.UnmatchedTrips != 1 {
		t.Errorf("unexpected counts %+v", resp.Summary)
	}
	if resp.BusiestMinute != 700 || resp.BusiestMinuteTime != "11:40 AM" {
		t.Errorf("unexpected busiest minute %d %q", resp.BusiestMinute, resp.BusiestMinuteTime)
	}
	if resp.SkippedTrips != 2 {
		t.Errorf("expected 2 skipped trips, got %d", resp.SkippedTrips)
	}
}

func TestRoutesUnknownPath(t *testing.T) {
	rr := serve(t, newTestApplication(t), "/v2/traffic")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on every response")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rr := serve(t, newReadyTestApplication(t), "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "bikeflow_dataset_ready") {
		t.Error("expected bikeflow metrics in exposition")
	}
}
