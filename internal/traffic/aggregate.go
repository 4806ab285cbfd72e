package traffic

import "bikeflow.org/internal/models"

// FlowLevels are the discrete values the departure ratio is quantized to.
// 0 means arrival-heavy, 0.5 balanced and 1 departure-heavy.
var FlowLevels = [3]float64{0, 0.5, 1}

type counts struct {
	dep int
	arr int
}

// Aggregate counts departures at each trip's start station and arrivals at
// each trip's end station, then joins the counts onto stations. The result has
// one record per station, in station order. Trips naming a station that is not
// in the list are ignored, and a station without a short name has no traffic.
func Aggregate(departures, arrivals []*models.Trip, stations []models.Station) []models.StationTraffic {
	byStation := make(map[string]*counts, len(stations))
	get := func(id string) *counts {
		c, ok := byStation[id]
		if !ok {
			c = &counts{}
			byStation[id] = c
		}
		return c
	}

	for _, trip := range departures {
		get(trip.StartStationID).dep++
	}
	for _, trip := range arrivals {
		get(trip.EndStationID).arr++
	}

	out := make([]models.StationTraffic, len(stations))
	for i, station := range stations {
		var c counts
		if found, ok := byStation[station.ShortName]; ok && station.ShortName != "" {
			c = *found
		}
		out[i] = models.NewStationTraffic(station, c.dep, c.arr)
	}
	return out
}

// DepartureRatio returns departures/total, or 0 for a station without traffic.
func DepartureRatio(st models.StationTraffic) float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(st.Departures) / float64(st.Total)
}

// FlowLevel quantizes the departure ratio over [0, 1] into equal-width
// FlowLevels. A station without traffic gets level 0.
func FlowLevel(st models.StationTraffic) float64 {
	if st.Total == 0 {
		return FlowLevels[0]
	}
	return quantize(DepartureRatio(st))
}

func quantize(ratio float64) float64 {
	i := int(ratio * float64(len(FlowLevels)))
	if i < 0 {
		i = 0
	}
	if i >= len(FlowLevels) {
		i = len(FlowLevels) - 1
	}
	return FlowLevels[i]
}
