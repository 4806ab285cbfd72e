package models

import "time"

// Trip is a single bike-share ride between two stations.
// StartedAt and EndedAt carry the wall-clock location they were parsed in,
// which is what minute-of-day bucketing uses.
type Trip struct {
	StartStationID string    `json:"start_station_id"`
	EndStationID   string    `json:"end_station_id"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
}
