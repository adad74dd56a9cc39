package models

// Location is a catalog entry ranked by walking distance from a home.
type Location struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Summary          string  `json:"summary"`
	Description      string  `json:"description"`
	PriceEstimateMin float64 `json:"price_estimate_min"`
	PriceEstimateMax float64 `json:"price_estimate_max"`
	Address          Address `json:"address"`
}

// LocationCreate is the payload of createLocation and updateLocation.
type LocationCreate struct {
	Name             string  `json:"name"`
	Summary          string  `json:"summary"`
	Description      string  `json:"description"`
	PriceEstimateMin float64 `json:"price_estimate_min"`
	PriceEstimateMax float64 `json:"price_estimate_max"`
	Address          Address `json:"address"`
}

// Page is the skip/limit window of list queries.
type Page struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// DefaultPage is the window the console asks for.
var DefaultPage = Page{Skip: 0, Limit: 100}
