package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"bikeflow.org/internal/dataset"
	"bikeflow.org/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// readTimeFilter reads the "minute" query parameter. A missing value or -1
// selects every trip.
func readTimeFilter(r *http.Request) (models.TimeFilter, error) {
	raw := r.URL.Query().Get("minute")
	if raw == "" {
		return models.NoFilter(), nil
	}
	minute, err := strconv.Atoi(raw)
	if err != nil {
		return models.TimeFilter{}, fmt.Errorf("minute must be an integer, got %q", raw)
	}
	return models.ParseTimeFilter(minute)
}

// currentDataset returns the published dataset, writing a 503 when there is none.
func (app *Application) currentDataset(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, bool) {
	d, ok := app.DatasetService.Current()
	if !ok {
		app.datasetUnavailableResponse(w, r)
		return nil, false
	}
	return d, true
}
