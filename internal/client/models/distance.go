package models

// Distance is the server-computed walking time between a home and a location.
type Distance struct {
	OriginHomeID           int64   `json:"origin_home_id"`
	DestinationLocationID  int64   `json:"destination_location_id"`
	WalkingDistanceMinutes float64 `json:"walking_distance_minutes"`
}
