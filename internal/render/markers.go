package render

import (
	"bikeflow.org/internal/models"
	"bikeflow.org/internal/traffic"
)

// Marker styling shared by every station circle.
const (
	MarkerFill        = "steelblue"
	MarkerStroke      = "white"
	MarkerStrokeWidth = 1
	MarkerOpacity     = 0.6
)

// Marker is everything a map client needs to draw one station circle.
// Lon/Lat are geographic; projecting them to the screen is left to the client.
type Marker struct {
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	Lon            float64 `json:"lon"`
	Lat            float64 `json:"lat"`
	Radius         float64 `json:"radius"`
	DepartureRatio float64 `json:"departure_ratio"`
	Departures     int     `json:"departures"`
	Arrivals       int     `json:"arrivals"`
	Total          int     `json:"total_traffic"`
	Title          string  `json:"title"`
	Fill           string  `json:"fill"`
	Stroke         string  `json:"stroke"`
	StrokeWidth    float64 `json:"stroke_width"`
	Opacity        float64 `json:"opacity"`
}

// Markers turns station traffic into marker descriptors, keeping input order.
// DepartureRatio carries the quantized flow level used for the color scale.
func Markers(f models.TimeFilter, stations []models.StationTraffic) []Marker {
	scale := RadiusScale(f)
	out := make([]Marker, 0, len(stations))
	for _, st := range stations {
		out = append(out, Marker{
			ID:             st.ShortName,
			Name:           st.Name,
			Lon:            st.Lon.Float64(),
			Lat:            st.Lat.Float64(),
			Radius:         scale.Scale(float64(st.Total)),
			DepartureRatio: traffic.FlowLevel(st),
			Departures:     st.Departures,
			Arrivals:       st.Arrivals,
			Total:          st.Total,
			Title:          Title(st),
			Fill:           MarkerFill,
			Stroke:         MarkerStroke,
			StrokeWidth:    MarkerStrokeWidth,
			Opacity:        MarkerOpacity,
		})
	}
	return out
}
