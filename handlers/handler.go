// backend/handlers/handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gewnthar/greenskies/backend/models"
	"github.com/gewnthar/greenskies/backend/services"
	"github.com/gewnthar/greenskies/backend/utils"
)

// Handler serves the JSON API over one Calculator.
type Handler struct {
	calc   *services.Calculator
	policy services.InputPolicy
	logger *slog.Logger
}

func NewHandler(calc *services.Calculator, policy services.InputPolicy, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{calc: calc, policy: policy, logger: logger.With("component", "http")}
}

// Routes returns the API mux wrapped in the request-ID middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/aircraft", h.ListAircraft)
	mux.HandleFunc("GET /api/airports", h.ListAirports)
	mux.HandleFunc("POST /api/calculate", h.Calculate)
	mux.HandleFunc("POST /api/compare", h.Compare)
	mux.HandleFunc("GET /api/history", h.ListHistory)
	mux.HandleFunc("GET /api/history/export", h.ExportHistory)
	mux.HandleFunc("GET /api/history/export.xlsx", h.ExportHistoryExcel)
	mux.HandleFunc("GET /api/history/report", h.HistoryReport)
	return withRequestID(mux)
}

// Health reports the size of the loaded reference tables.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ref := h.calc.Reference()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"aircraft": len(ref.AircraftTypes()),
		"airports": len(ref.Airports()),
	})
}

func (h *Handler) ListAircraft(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.calc.Reference().EmissionFactors())
}

func (h *Handler) ListAirports(w http.ResponseWriter, r *http.Request) {
	airports := h.calc.Reference().Airports()
	out := make([]models.AirportOption, 0, len(airports))
	for _, a := range airports {
		out = append(out, models.AirportOption{AirportRecord: a, Label: utils.FormatAirportOption(a)})
	}
	respondWithJSON(w, http.StatusOK, out)
}
