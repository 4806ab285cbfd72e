package models

// StationTraffic joins a static Station with the departures and arrivals
// counted for it inside one time window. Total is always Departures+Arrivals.
type StationTraffic struct {
	Station
	Departures int `json:"departures"`
	Arrivals   int `json:"arrivals"`
	Total      int `json:"total_traffic"`
}

// NewStationTraffic builds a StationTraffic record, deriving Total.
func NewStationTraffic(station Station, departures, arrivals int) StationTraffic {
	return StationTraffic{
		Station:    station,
		Departures: departures,
		Arrivals:   arrivals,
		Total:      departures + arrivals,
	}
}
