package devserver

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/dmitrijs2005/locator/internal/client/models"
)

const (
	earthRadiusKm    = 6371.0
	walkingSpeedKmph = 5.0
)

// haversineKm is the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// walkingMinutes estimates the walk between two geocoded addresses.
func walkingMinutes(from, to models.Address) (float64, bool) {
	if !from.HasCoordinates() || !to.HasCoordinates() {
		return 0, false
	}
	km := haversineKm(*from.Latitude, *from.Longitude, *to.Latitude, *to.Longitude)
	return math.Round(km/walkingSpeedKmph*60*10) / 10, true
}

// Distances measures from home to every geocoded location. Locations
// without coordinates are left out.
func Distances(home models.Home, locations []models.Location) []models.Distance {
	out := make([]models.Distance, 0, len(locations))
	for _, l := range locations {
		m, ok := walkingMinutes(home.Address, l.Address)
		if !ok {
			continue
		}
		out = append(out, models.Distance{
			OriginHomeID:           home.ID,
			DestinationLocationID:  l.ID,
			WalkingDistanceMinutes: m,
		})
	}
	return out
}

// Geocode is a stand-in for a real geocoder: the same address always lands
// on the same point, within a few kilometres of central London. A query
// without street or city has no match.
func Geocode(q models.GeocodeQuery) models.GeocodeResult {
	street := strings.TrimSpace(q.Street)
	city := strings.TrimSpace(q.City)
	if street == "" || city == "" {
		return models.GeocodeResult{}
	}

	h := fnv.New64a()
	for _, part := range []string{street, city, q.PostalCode, q.Country} {
		_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(part))))
		_, _ = h.Write([]byte{0})
	}
	sum := h.Sum64()

	lat := 51.5074 + (float64(sum&0xffff)/0xffff-0.5)*0.1
	lon := -0.1278 + (float64((sum>>16)&0xffff)/0xffff-0.5)*0.1
	return models.GeocodeResult{Latitude: &lat, Longitude: &lon}
}
