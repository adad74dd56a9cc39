package services

import (
	"slices"

	"github.com/dmitrijs2005/locator/internal/client/models"
)

// RankedLocation is a location with the walking time from the selected
// home, or nil when the server has no distance for it.
type RankedLocation struct {
	models.Location
	Minutes *float64
}

// RankByDistance pairs locations with their distances and orders them by
// walking time. Locations without a distance go last. The order among equal
// times and among unknowns is the input order.
func RankByDistance(locations []models.Location, distances []models.Distance) []RankedLocation {
	byLocation := make(map[int64]float64, len(distances))
	for _, d := range distances {
		byLocation[d.DestinationLocationID] = d.WalkingDistanceMinutes
	}

	out := make([]RankedLocation, 0, len(locations))
	for _, l := range locations {
		r := RankedLocation{Location: l}
		if m, ok := byLocation[l.ID]; ok {
			r.Minutes = &m
		}
		out = append(out, r)
	}

	slices.SortStableFunc(out, func(a, b RankedLocation) int {
		switch {
		case a.Minutes == nil && b.Minutes == nil:
			return 0
		case a.Minutes == nil:
			return 1
		case b.Minutes == nil:
			return -1
		case *a.Minutes < *b.Minutes:
			return -1
		case *a.Minutes > *b.Minutes:
			return 1
		}
		return 0
	})
	return out
}
