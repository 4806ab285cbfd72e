package models

// Station is one docking station from the station information feed.
// ShortName is the id trips refer to (start_station_id / end_station_id).
// Stations are loaded once and never mutated.
type Station struct {
	ShortName string     `json:"short_name"`
	StationID string     `json:"station_id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Lon       Coordinate `json:"lon"`
	Lat       Coordinate `json:"lat"`
	Capacity  int        `json:"capacity,omitempty"`
}

// StationFeed mirrors the envelope of the station information JSON file:
//
//	{"data": {"stations": [...]}}
type StationFeed struct {
	Data struct {
		Stations []Station `json:"stations"`
	} `json:"data"`
}
