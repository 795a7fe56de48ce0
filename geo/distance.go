// backend/geo/distance.go

// Package geo computes great-circle distances between airports.
package geo

import (
	"github.com/umahmood/haversine"

	"github.com/gewnthar/greenskies/backend/models"
)

// EarthRadiusKm is the sphere radius the haversine library uses for its km result.
const EarthRadiusKm = 6371.0

// GreatCircleKm returns the haversine distance in kilometres between two
// points given in decimal degrees. Coordinates are assumed to be range-valid;
// the reference loader rejects anything else.
func GreatCircleKm(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return km
}

// AirportDistanceKm is GreatCircleKm between two airport records.
func AirportDistanceKm(a, b models.AirportRecord) float64 {
	return GreatCircleKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}
