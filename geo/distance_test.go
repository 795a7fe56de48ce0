package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gewnthar/greenskies/backend/models"
)

// reference implementation of the formula, kept independent of the library
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	phi1, phi2 := lat1*rad, lat2*rad
	dPhi, dLambda := (lat2-lat1)*rad, (lon2-lon1)*rad
	a := math.Pow(math.Sin(dPhi/2), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func TestGreatCircleKmMatchesFormula(t *testing.T) {
	cases := [][4]float64{
		{28.5562, 77.1000, 19.0896, 72.8656},   // DEL-BOM
		{51.4700, -0.4543, 40.6413, -73.7781},  // LHR-JFK
		{-33.9399, 151.1753, 1.3644, 103.9915}, // SYD-SIN
		{0, 179.5, 0, -179.5},                  // across the antimeridian
		{90, 0, -90, 0},                        // pole to pole
	}
	for _, c := range cases {
		got := GreatCircleKm(c[0], c[1], c[2], c[3])
		assert.InDelta(t, haversineKm(c[0], c[1], c[2], c[3]), got, 1e-6)
	}
}

func TestGreatCircleKmKnownDistances(t *testing.T) {
	// DEL-BOM is roughly 1,137 km
	assert.InDelta(t, 1137.05, GreatCircleKm(28.5562, 77.1000, 19.0896, 72.8656), 0.01)
	// half the circumference between the poles
	assert.InDelta(t, math.Pi*EarthRadiusKm, GreatCircleKm(90, 0, -90, 0), 1e-6)
	// one degree of longitude on the equator
	assert.InDelta(t, 2*math.Pi*EarthRadiusKm/360, GreatCircleKm(0, 0, 0, 1), 1e-6)
}

func TestGreatCircleKmSymmetric(t *testing.T) {
	points := [][2]float64{
		{28.5562, 77.1000}, {19.0896, 72.8656}, {51.47, -0.4543},
		{-33.9399, 151.1753}, {64.13, -21.94}, {-54.8, -68.3},
	}
	for _, p := range points {
		for _, q := range points {
			assert.Equal(t, GreatCircleKm(p[0], p[1], q[0], q[1]), GreatCircleKm(q[0], q[1], p[0], p[1]))
		}
	}
}

func TestGreatCircleKmIdenticalPointsIsZero(t *testing.T) {
	assert.Equal(t, 0.0, GreatCircleKm(12.97, 77.59, 12.97, 77.59))
	assert.Equal(t, 0.0, GreatCircleKm(-90, 180, -90, 180))
}

func TestAirportDistanceKm(t *testing.T) {
	del := models.AirportRecord{IATA: "DEL", Latitude: 28.5562, Longitude: 77.1000}
	bom := models.AirportRecord{IATA: "BOM", Latitude: 19.0896, Longitude: 72.8656}

	assert.Equal(t, GreatCircleKm(28.5562, 77.1000, 19.0896, 72.8656), AirportDistanceKm(del, bom))
}
