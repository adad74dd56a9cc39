package devserver

import (
	"testing"

	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestHaversineKm(t *testing.T) {
	// London to Paris is roughly 344 km.
	d := haversineKm(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 344, d, 2)
	assert.Zero(t, haversineKm(1, 1, 1, 1))
}

func TestDistances_SkipsUnmapped(t *testing.T) {
	home := models.Home{ID: 1, Address: models.Address{Latitude: f(51.5), Longitude: f(-0.12)}}
	locs := []models.Location{
		{ID: 10, Address: models.Address{Latitude: f(51.51), Longitude: f(-0.12)}},
		{ID: 11, Address: models.Address{}},
	}

	got := Distances(home, locs)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].OriginHomeID)
	assert.Equal(t, int64(10), got[0].DestinationLocationID)
	// 0.01 degrees of latitude is about 1.11 km, about 13.3 minutes at 5 km/h.
	assert.InDelta(t, 13.3, got[0].WalkingDistanceMinutes, 0.2)

	assert.Empty(t, Distances(models.Home{ID: 2}, locs), "unmapped home")
}

func TestGeocode(t *testing.T) {
	q := models.GeocodeQuery{Street: "1 Main St", City: "London", PostalCode: "N1", Country: "UK"}

	a := Geocode(q)
	b := Geocode(models.GeocodeQuery{Street: " 1 main st ", City: "LONDON", PostalCode: "n1", Country: "uk"})
	require.NotNil(t, a.Latitude)
	require.NotNil(t, a.Longitude)
	assert.Equal(t, *a.Latitude, *b.Latitude)
	assert.InDelta(t, 51.5074, *a.Latitude, 0.05)
	assert.InDelta(t, -0.1278, *a.Longitude, 0.05)

	none := Geocode(models.GeocodeQuery{City: "London"})
	assert.Nil(t, none.Latitude)
	assert.Nil(t, none.Longitude)
}
