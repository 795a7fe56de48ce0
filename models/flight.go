// backend/models/flight.go
package models

// AircraftEmissionFactor is one row of the emission-factor table.
type AircraftEmissionFactor struct {
	AircraftType     string  `json:"aircraft_type"`
	FactorKgCO2PerKm float64 `json:"factor_kg_co2_per_km"`
}

// AirportRecord is one row of the airport table. IATA is stored upper-case and trimmed.
type AirportRecord struct {
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

// FlightSpec describes one flight to estimate.
// When both Origin and Destination are set the airport pair wins and
// ManualDistanceKm is ignored.
type FlightSpec struct {
	Origin           string
	Destination      string
	ManualDistanceKm *float64
	AircraftType     string
	RadiativeForcing bool
	SAFBlendPercent  int
}

// HasAirportPair reports whether the spec names both endpoints.
func (s FlightSpec) HasAirportPair() bool {
	return s.Origin != "" && s.Destination != ""
}

// EmissionResult holds everything derived from a single estimate.
type EmissionResult struct {
	DistanceKm      float64 `json:"distance_km"`
	CO2Kg           float64 `json:"co2_kg"`
	FuelLiters      float64 `json:"fuel_liters"`
	TreesEquivalent float64 `json:"trees_equivalent"`
	OffsetCost      float64 `json:"offset_cost"`
}

// AircraftComparison is the CO2 one aircraft would emit on a given route.
type AircraftComparison struct {
	AircraftType string  `json:"aircraft_type"`
	CO2Kg        float64 `json:"co2_kg"`
}

// Calculation is what the service hands back after a successful, logged estimate.
type Calculation struct {
	Spec   FlightSpec     `json:"-"`
	Result EmissionResult `json:"result"`
	Entry  HistoryEntry   `json:"entry"`
	Advice string         `json:"advice"`
}
