package app

import (
	"net/http"
	"time"

	"bikeflow.org/internal/geo"
	"bikeflow.org/internal/models"
	"bikeflow.org/internal/render"
	"bikeflow.org/internal/traffic"
	"github.com/julienschmidt/httprouter"
)

// HealthStatus is the body of /v1/healthcheck.
//
// Ready is true once stations and trips are loaded and indexed. Dataset is
// one of "loading", "ready" or "failed"; a failed load is permanent for the
// life of the process.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Dataset     string `json:"dataset"`
	Stations    int    `json:"stations"`
	Trips       int    `json:"trips"`
	Ready       bool   `json:"ready"`
}

// healthcheckHandler responds 200 when the dataset is ready and 503 otherwise,
// with the same body in both cases.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	status, _ := app.DatasetService.Status()
	health := HealthStatus{
		Status:      "available",
		Environment: app.Config.Server.Env,
		Version:     app.Version,
		Dataset:     string(status),
	}
	if d, ok := app.DatasetService.Current(); ok {
		summary := d.Engine.Summary()
		health.Stations = summary.Stations
		health.Trips = summary.Trips
		health.Ready = true
	}

	code := http.StatusOK
	if !health.Ready {
		code = http.StatusServiceUnavailable
	}
	if err := writeJSON(w, code, health, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// TrafficResponse is the body of /v1/traffic. Minute is -1 for any time.
type TrafficResponse struct {
	Minute   int                     `json:"minute"`
	Label    string                  `json:"label"`
	Stations []models.StationTraffic `json:"stations"`
}

func (app *Application) trafficHandler(w http.ResponseWriter, r *http.Request) {
	f, err := readTimeFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, ok := app.currentDataset(w, r)
	if !ok {
		return
	}

	resp := TrafficResponse{
		Minute:   f.Value(),
		Label:    render.FormatMinute(f),
		Stations: d.Engine.StationTraffic(f),
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// MarkersResponse is the body of /v1/markers.
type MarkersResponse struct {
	Minute  int             `json:"minute"`
	Label   string          `json:"label"`
	Markers []render.Marker `json:"markers"`
}

func (app *Application) markersHandler(w http.ResponseWriter, r *http.Request) {
	f, err := readTimeFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, ok := app.currentDataset(w, r)
	if !ok {
		return
	}

	resp := MarkersResponse{
		Minute:  f.Value(),
		Label:   render.FormatMinute(f),
		Markers: render.Markers(f, d.Engine.StationTraffic(f)),
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// LaneLayerResponse is one city's layer descriptor plus what was measured
// from its GeoJSON.
type LaneLayerResponse struct {
	render.LaneLayer
	Features     int              `json:"features"`
	LengthMeters float64          `json:"length_meters"`
	BBox         *geo.BoundingBox `json:"bbox,omitempty"`
}

// LanesResponse is the body of /v1/lanes. Bounds covers the stations and
// every lane network; FitCenter is its midpoint as [lon, lat].
type LanesResponse struct {
	View         render.MapView      `json:"view"`
	StationsBBox *geo.BoundingBox    `json:"stations_bbox,omitempty"`
	Bounds       *geo.BoundingBox    `json:"bounds,omitempty"`
	FitCenter    *[2]float64         `json:"fit_center,omitempty"`
	Lanes        []LaneLayerResponse `json:"lanes"`
}

func (app *Application) lanesHandler(w http.ResponseWriter, r *http.Request) {
	d, ok := app.currentDataset(w, r)
	if !ok {
		return
	}

	resp := LanesResponse{
		View:         render.DefaultMapView,
		StationsBBox: nonEmpty(d.StationsBBox),
		Lanes:        make([]LaneLayerResponse, 0, len(d.Lanes)),
	}
	bounds := d.StationsBBox
	for _, l := range d.Lanes {
		bounds = bounds.Union(l.BBox)
		resp.Lanes = append(resp.Lanes, LaneLayerResponse{
			LaneLayer:    render.NewLaneLayer(l.City),
			Features:     l.Features,
			LengthMeters: l.LengthMeters,
			BBox:         nonEmpty(l.BBox),
		})
	}
	if resp.Bounds = nonEmpty(bounds); resp.Bounds != nil {
		lon, lat := bounds.Center()
		resp.FitCenter = &[2]float64{lon, lat}
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) laneGeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	d, ok := app.currentDataset(w, r)
	if !ok {
		return
	}

	city := httprouter.ParamsFromContext(r.Context()).ByName("city")
	lanes, ok := d.Lane(city)
	if !ok {
		app.notFoundResponse(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(lanes.GeoJSON)
}

// SummaryResponse is the body of /v1/summary.
type SummaryResponse struct {
	traffic.Summary
	SkippedTrips      int       `json:"skipped_trips"`
	BusiestMinuteTime string    `json:"busiest_minute_label"`
	LoadedAt          time.Time `json:"loaded_at"`
}

func (app *Application) summaryHandler(w http.ResponseWriter, r *http.Request) {
	d, ok := app.currentDataset(w, r)
	if !ok {
		return
	}

	summary := d.Engine.Summary()
	busiest, err := models.AtMinute(summary.BusiestMinute)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	resp := SummaryResponse{
		Summary:           summary,
		SkippedTrips:      d.SkippedTrips,
		BusiestMinuteTime: render.FormatMinute(busiest),
		LoadedAt:          d.LoadedAt,
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func nonEmpty(b geo.BoundingBox) *geo.BoundingBox {
	if b.IsEmpty() {
		return nil
	}
	return &b
}
