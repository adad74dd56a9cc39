package models

import "fmt"

// Address is a postal address with coordinates that stay nil until geocoded.
type Address struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// HasCoordinates reports whether both latitude and longitude are known.
func (a Address) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s %s, %s", a.Street, a.PostalCode, a.City, a.Country)
}

// Coordinates formats the position, or "unmapped" when it is not known yet.
func (a Address) Coordinates() string {
	if !a.HasCoordinates() {
		return "unmapped"
	}
	return fmt.Sprintf("%.6f, %.6f", *a.Latitude, *a.Longitude)
}
