package geo

import (
	"fmt"
	"math"

	"bikeflow.org/internal/models"
	"github.com/golang/geo/s2"
)

// BoundingBox defines the corners of a lat/lon box
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// EmptyBoundingBox returns a box that contains nothing and grows with Extend.
func EmptyBoundingBox() BoundingBox {
	return BoundingBox{
		MinLat: math.MaxFloat64,
		MaxLat: -math.MaxFloat64,
		MinLon: math.MaxFloat64,
		MaxLon: -math.MaxFloat64,
	}
}

// IsEmpty reports whether no point has been added to the box.
func (b BoundingBox) IsEmpty() bool {
	return b.MinLat > b.MaxLat || b.MinLon > b.MaxLon
}

// Extend grows the box so that it contains the given point.
func (b *BoundingBox) Extend(lat, lon float64) {
	b.MinLat = math.Min(b.MinLat, lat)
	b.MaxLat = math.Max(b.MaxLat, lat)
	b.MinLon = math.Min(b.MinLon, lon)
	b.MaxLon = math.Max(b.MaxLon, lon)
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	b.Extend(other.MinLat, other.MinLon)
	b.Extend(other.MaxLat, other.MaxLon)
	return b
}

// Center returns the midpoint of the box as (lon, lat), the order map clients expect.
func (b BoundingBox) Center() (lon, lat float64) {
	return (b.MinLon + b.MaxLon) / 2, (b.MinLat + b.MaxLat) / 2
}

// ComputeBoundingBox computes the bounding box of all stations with valid coordinates
func ComputeBoundingBox(stations []models.Station) (BoundingBox, error) {
	if len(stations) == 0 {
		return BoundingBox{}, fmt.Errorf("no stations to compute bounding box")
	}

	bbox := EmptyBoundingBox()
	for _, station := range stations {
		lat, lon := station.Lat.Float64(), station.Lon.Float64()
		if !IsValidLatLon(lat, lon) {
			continue
		}
		bbox.Extend(lat, lon)
	}

	if bbox.IsEmpty() {
		return BoundingBox{}, fmt.Errorf("no valid latitude/longitude found in stations")
	}
	return bbox, nil
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds.
//
// Latitude must be between -90 and 90 degrees, and longitude must be
// between -180 and 180 degrees.
//
// Note: (0,0) is treated as invalid. Station feeds use it as a placeholder
// for docks that have not been surveyed yet.
func IsValidLatLon(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return true
}

// earthRadiusInMeters represents the mean radius of the Earth in meters.
//
// Reference: NASA Planetary Fact Sheet – Earth
// https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html
const earthRadiusInMeters = 6371000

// LineLength returns the length in meters of a line given as GeoJSON
// positions ([lon, lat, ...]). Positions with fewer than two values are ignored.
func LineLength(positions [][]float64) float64 {
	var points []s2.Point
	for _, p := range positions {
		if len(p) < 2 {
			continue
		}
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(p[1], p[0])))
	}
	if len(points) < 2 {
		return 0
	}
	polyline := s2.Polyline(points)
	return polyline.Length().Radians() * earthRadiusInMeters
}
