// backend/models/history.go
package models

import "time"

// HistoryEntry is one immutable row of the calculation ledger.
type HistoryEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	DistanceKm       float64   `json:"distance_km"`
	AircraftType     string    `json:"aircraft"`
	RadiativeForcing bool      `json:"rf"`
	SAFBlendPercent  int       `json:"saf_pct"`
	CO2Kg            float64   `json:"co2_kg"`
	FuelLiters       float64   `json:"fuel_liters"`
	TreesEquivalent  float64   `json:"trees"`
	OffsetCost       float64   `json:"offset_inr"`
}

// Route returns the "ORIG → DEST" label used in listings. Manual-distance
// entries have no airports and yield an empty string.
func (e HistoryEntry) Route() string {
	if e.Origin == "" && e.Destination == "" {
		return ""
	}
	return e.Origin + " → " + e.Destination
}
