// backend/emissions/estimator.go

// Package emissions turns a flight distance and an aircraft factor into CO2
// and the quantities derived from it. Nothing here touches storage.
package emissions

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/gewnthar/greenskies/backend/models"
)

var (
	ErrInvalidDistance = errors.New("invalid distance")
	ErrInvalidAircraft = errors.New("invalid aircraft")
	ErrInvalidSafBlend = errors.New("invalid SAF blend")
)

// Estimator applies one set of Constants. It is immutable and safe for concurrent use.
type Estimator struct {
	c Constants
}

// NewEstimator validates the constants and returns an Estimator over them.
func NewEstimator(c Constants) (*Estimator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{c: c}, nil
}

// Constants returns a copy of the constants in use.
func (e *Estimator) Constants() Constants {
	return e.c
}

// LTOSurcharge is the fixed landing/take-off emission for a route length.
// The short-haul band includes its upper bound.
func (e *Estimator) LTOSurcharge(distanceKm float64) float64 {
	if distanceKm <= e.c.ShortHaulMaxKm {
		return e.c.ShortHaulLTOKg
	}
	return e.c.LongHaulLTOKg
}

// Estimate computes the emissions of one flight.
func (e *Estimator) Estimate(distanceKm, factorKgPerKm float64, rf bool, safPercent int) (models.EmissionResult, error) {
	co2, err := e.co2(distanceKm, factorKgPerKm, rf, safPercent)
	if err != nil {
		return models.EmissionResult{}, err
	}

	return models.EmissionResult{
		DistanceKm:      distanceKm,
		CO2Kg:           co2,
		FuelLiters:      (co2 / e.c.CO2PerKgFuel) / e.c.FuelDensityKgPerLiter,
		TreesEquivalent: co2 / e.c.TreeAbsorptionKgPerYear,
		OffsetCost:      co2 * e.c.OffsetCostPerKg,
	}, nil
}

func (e *Estimator) co2(distanceKm, factorKgPerKm float64, rf bool, safPercent int) (float64, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return 0, fmt.Errorf("%w: %v km (must be a finite, non-negative number)", ErrInvalidDistance, distanceKm)
	}
	if math.IsNaN(factorKgPerKm) || math.IsInf(factorKgPerKm, 0) || factorKgPerKm <= 0 {
		return 0, fmt.Errorf("%w: emission factor %v kg/km (must be positive)", ErrInvalidAircraft, factorKgPerKm)
	}
	if safPercent < 0 || safPercent > 100 {
		return 0, fmt.Errorf("%w: %d%% (must be within 0-100)", ErrInvalidSafBlend, safPercent)
	}

	co2 := distanceKm*factorKgPerKm + e.LTOSurcharge(distanceKm)
	if rf {
		co2 *= e.c.RFMultiplier
	}
	if safPercent > 0 {
		co2 *= 1 - (float64(safPercent)/100)*e.c.SAFMaxReduction
	}
	return co2, nil
}

// CompareAircraft estimates CO2 for every aircraft over the same route and
// flags, ordered by aircraft type.
func (e *Estimator) CompareAircraft(distanceKm float64, factors map[string]float64, rf bool, safPercent int) ([]models.AircraftComparison, error) {
	out := make([]models.AircraftComparison, 0, len(factors))
	for aircraft, factor := range factors {
		co2, err := e.co2(distanceKm, factor, rf, safPercent)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", aircraft, err)
		}
		out = append(out, models.AircraftComparison{AircraftType: aircraft, CO2Kg: co2})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AircraftType < out[j].AircraftType })
	return out, nil
}
