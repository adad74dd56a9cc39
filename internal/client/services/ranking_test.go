package services

import (
	"testing"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(rs []RankedLocation) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func locs(ids ...int64) []models.Location {
	out := make([]models.Location, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Location{ID: id})
	}
	return out
}

func dist(loc int64, minutes float64) models.Distance {
	return models.Distance{OriginHomeID: 1, DestinationLocationID: loc, WalkingDistanceMinutes: minutes}
}

func TestRankByDistance(t *testing.T) {
	tests := []struct {
		name      string
		locations []models.Location
		distances []models.Distance
		want      []int64
	}{
		{
			name:      "ascending",
			locations: locs(1, 2, 3),
			distances: []models.Distance{dist(1, 12), dist(2, 3), dist(3, 7.5)},
			want:      []int64{2, 3, 1},
		},
		{
			name:      "unknown after known",
			locations: locs(1, 2, 3, 4),
			distances: []models.Distance{dist(2, 10), dist(4, 1)},
			want:      []int64{4, 2, 1, 3},
		},
		{
			name:      "stable among equals",
			locations: locs(5, 3, 9),
			distances: []models.Distance{dist(5, 4), dist(3, 4), dist(9, 4)},
			want:      []int64{5, 3, 9},
		},
		{
			name:      "no distances keeps input order",
			locations: locs(3, 1, 2),
			want:      []int64{3, 1, 2},
		},
		{
			name:      "distances for unknown locations ignored",
			locations: locs(1),
			distances: []models.Distance{dist(99, 1)},
			want:      []int64{1},
		},
		{
			name: "empty",
			want: []int64{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankByDistance(tt.locations, tt.distances)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRankByDistance_Minutes(t *testing.T) {
	got := RankByDistance(locs(1, 2), []models.Distance{dist(1, 6.5)})
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Minutes)
	assert.Equal(t, 6.5, *got[0].Minutes)
	assert.Nil(t, got[1].Minutes)
}
