// backend/handlers/calculation_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gewnthar/greenskies/backend/models"
)

func (h *Handler) decodeSpec(w http.ResponseWriter, r *http.Request) (models.FlightSpec, bool) {
	defer r.Body.Close()

	var req models.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return models.FlightSpec{}, false
	}

	spec := models.FlightSpec{
		Origin:           req.Origin,
		Destination:      req.Destination,
		ManualDistanceKm: req.DistanceKm,
		AircraftType:     req.Aircraft,
		RadiativeForcing: req.RF,
		SAFBlendPercent:  req.SAFPercent,
	}
	if err := h.policy.Check(spec); err != nil {
		h.respondWithDomainError(w, r, err)
		return models.FlightSpec{}, false
	}
	return spec, true
}

// Calculate handles POST /api/calculate with a models.CalculateRequest body.
// The calculation is recorded in the ledger before the response is sent.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.decodeSpec(w, r)
	if !ok {
		return
	}

	calc, err := h.calc.Calculate(spec)
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, calc)
}

// Compare handles POST /api/compare. Nothing is recorded.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.decodeSpec(w, r)
	if !ok {
		return
	}

	comparisons, err := h.calc.Compare(spec)
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, comparisons)
}
