package app

import (
	"fmt"
	"net/http"

	"bikeflow.org/internal/dataset"
	"bikeflow.org/internal/report"
	"github.com/getsentry/sentry-go"
)

// envelope wraps every JSON error body as {"error": ...}.
type envelope map[string]interface{}

func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	if err := writeJSON(w, status, envelope{"error": message}, nil); err != nil {
		app.Logger.Error("Failed to write error response", "error", err, "method", r.Method, "uri", r.URL.RequestURI())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.Logger.Error("Request failed", "error", err, "method", r.Method, "uri", r.URL.RequestURI())
	report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
		Tags:  map[string]string{"uri": r.URL.Path},
		Level: sentry.LevelError,
	})
	app.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("the %s method is not supported for this resource", r.Method))
}

func (app *Application) datasetUnavailableResponse(w http.ResponseWriter, r *http.Request) {
	status, err := app.DatasetService.Status()
	message := "the dataset is still loading"
	if status == dataset.StatusFailed && err != nil {
		message = "the dataset failed to load"
	}
	w.Header().Set("Retry-After", "30")
	app.errorResponse(w, r, http.StatusServiceUnavailable, message)
}
