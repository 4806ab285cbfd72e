package render

import "fmt"

// LinePaint is the paint block of a line layer.
type LinePaint struct {
	LineColor   string  `json:"line-color"`
	LineWidth   float64 `json:"line-width"`
	LineOpacity float64 `json:"line-opacity"`
}

// LaneLayer describes how a city's bike-lane GeoJSON source is drawn.
type LaneLayer struct {
	City     string    `json:"city"`
	SourceID string    `json:"source_id"`
	LayerID  string    `json:"layer_id"`
	Type     string    `json:"type"`
	Paint    LinePaint `json:"paint"`
}

// NewLaneLayer returns the layer descriptor for a city's bike lanes.
func NewLaneLayer(city string) LaneLayer {
	return LaneLayer{
		City:     city,
		SourceID: fmt.Sprintf("%s_route", city),
		LayerID:  fmt.Sprintf("%s-bike-lanes", city),
		Type:     "line",
		Paint: LinePaint{
			LineColor:   "green",
			LineWidth:   3,
			LineOpacity: 0.6,
		},
	}
}

// MapView is the initial camera of the map.
type MapView struct {
	Center  [2]float64 `json:"center"` // lon, lat
	Zoom    float64    `json:"zoom"`
	MinZoom float64    `json:"min_zoom"`
	MaxZoom float64    `json:"max_zoom"`
}

// DefaultMapView centers on Cambridge/Boston.
var DefaultMapView = MapView{
	Center:  [2]float64{-71.09415, 42.36027},
	Zoom:    12,
	MinZoom: 5,
	MaxZoom: 18,
}
