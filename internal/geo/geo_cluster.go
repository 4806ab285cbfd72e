package geo

import (
	"fmt"

	"github.com/golang/geo/s2"
)

const s2Level = 10 // S2 cell level with 7–10 km spatial resolution

// s2ClusterID generates a stable S2-based cluster ID for a lat/lon.
func s2ClusterID(lat, lon float64, level int) string {
	ll := s2.LatLngFromDegrees(lat, lon)
	cellID := s2.CellIDFromLatLng(ll).Parent(level)
	return fmt.Sprintf("s2_%d", uint64(cellID))
}

// ClusterID returns the S2 cell a station belongs to, used to group stations
// into neighbourhood-sized areas. ok is false for invalid coordinates.
func ClusterID(lat, lon float64) (clusterID string, ok bool) {
	if !IsValidLatLon(lat, lon) {
		return "", false
	}
	return s2ClusterID(lat, lon, s2Level), true
}
