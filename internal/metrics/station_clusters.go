package metrics

import (
	"bikeflow.org/internal/geo"
	"bikeflow.org/internal/models"
)

// ReportStationClusters groups stations into S2 cells and reports, per cell,
// the station count and the summed traffic of the given records.
//
// Stations with invalid coordinates are not assigned to any cell.
// It returns the per-cell traffic so callers can log or inspect it.
func ReportStationClusters(traffic []models.StationTraffic) map[string]int {
	clusterTraffic := make(map[string]int)
	clusterStations := make(map[string]int)

	for _, st := range traffic {
		clusterID, ok := geo.ClusterID(st.Lat.Float64(), st.Lon.Float64())
		if !ok {
			continue
		}
		clusterTraffic[clusterID] += st.Total
		clusterStations[clusterID]++
	}

	for id, total := range clusterTraffic {
		ClusterTraffic.WithLabelValues(id).Set(float64(total))
		ClusterStations.WithLabelValues(id).Set(float64(clusterStations[id]))
	}
	return clusterTraffic
}
