// backend/emissions/constants.go
package emissions

import "fmt"

// Constants is the single tuning surface of the estimator. The yaml tags let
// config.Config embed it directly under the `emissions:` key.
type Constants struct {
	ShortHaulMaxKm          float64 `yaml:"short_haul_max_km"`
	ShortHaulLTOKg          float64 `yaml:"short_haul_lto_kg"`
	LongHaulLTOKg           float64 `yaml:"long_haul_lto_kg"`
	RFMultiplier            float64 `yaml:"rf_multiplier"`
	SAFMaxReduction         float64 `yaml:"saf_max_reduction"`
	CO2PerKgFuel            float64 `yaml:"co2_per_kg_fuel"`
	FuelDensityKgPerLiter   float64 `yaml:"fuel_density_kg_per_liter"`
	TreeAbsorptionKgPerYear float64 `yaml:"tree_absorption_kg_per_year"`
	OffsetCostPerKg         float64 `yaml:"offset_cost_per_kg"`

	// Route advice thresholds.
	SurfaceTransportMaxKm float64 `yaml:"surface_transport_max_km"`
	MediumHaulMaxKm       float64 `yaml:"medium_haul_max_km"`
}

// DefaultConstants returns the published GreenSkies factors.
func DefaultConstants() Constants {
	return Constants{
		ShortHaulMaxKm:          1500,
		ShortHaulLTOKg:          50.0,
		LongHaulLTOKg:           150.0,
		RFMultiplier:            1.9,
		SAFMaxReduction:         0.80,
		CO2PerKgFuel:            3.16,
		FuelDensityKgPerLiter:   0.8,
		TreeAbsorptionKgPerYear: 22.0,
		OffsetCostPerKg:         0.60,
		SurfaceTransportMaxKm:   350,
		MediumHaulMaxKm:         1500,
	}
}

// Validate rejects constant sets that would make results negative or undefined.
func (c Constants) Validate() error {
	positive := map[string]float64{
		"rf_multiplier":               c.RFMultiplier,
		"co2_per_kg_fuel":             c.CO2PerKgFuel,
		"fuel_density_kg_per_liter":   c.FuelDensityKgPerLiter,
		"tree_absorption_kg_per_year": c.TreeAbsorptionKgPerYear,
	}
	for name, v := range positive {
		if !(v > 0) {
			return fmt.Errorf("emission constant %s must be positive, got %v", name, v)
		}
	}
	nonNegative := map[string]float64{
		"short_haul_max_km":  c.ShortHaulMaxKm,
		"short_haul_lto_kg":  c.ShortHaulLTOKg,
		"long_haul_lto_kg":   c.LongHaulLTOKg,
		"offset_cost_per_kg": c.OffsetCostPerKg,
	}
	for name, v := range nonNegative {
		if !(v >= 0) {
			return fmt.Errorf("emission constant %s must not be negative, got %v", name, v)
		}
	}
	if !(c.SAFMaxReduction >= 0 && c.SAFMaxReduction <= 1) {
		return fmt.Errorf("emission constant saf_max_reduction must be within [0,1], got %v", c.SAFMaxReduction)
	}
	return nil
}
