// backend/models/api_models.go
package models

// CalculateRequest is the JSON body for /api/calculate and /api/compare.
// Either origin+destination or distance_km must be supplied.
type CalculateRequest struct {
	Origin      string   `json:"origin"`      // e.g., "DEL" or "DEL – Indira Gandhi Intl, India"
	Destination string   `json:"destination"` // e.g., "BOM"
	DistanceKm  *float64 `json:"distance_km,omitempty"`
	Aircraft    string   `json:"aircraft"`
	RF          bool     `json:"rf"`
	SAFPercent  int      `json:"saf_pct"`
}

// AirportOption is an airport as listed by /api/airports, with a display label
// that can be sent back as origin/destination.
type AirportOption struct {
	AirportRecord
	Label string `json:"label"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
