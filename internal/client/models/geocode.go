package models

// GeocodeQuery is the free-text address sent to the geocode search.
type GeocodeQuery struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// GeocodeQueryFrom copies the textual part of an address.
func GeocodeQueryFrom(a Address) GeocodeQuery {
	return GeocodeQuery{Street: a.Street, City: a.City, PostalCode: a.PostalCode, Country: a.Country}
}

// GeocodeResult holds the coordinates found for a query; either may be nil
// when the search had no match.
type GeocodeResult struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
