// backend/handlers/respond.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gewnthar/greenskies/backend/database"
	"github.com/gewnthar/greenskies/backend/emissions"
	"github.com/gewnthar/greenskies/backend/models"
	"github.com/gewnthar/greenskies/backend/services"
)

const requestIDHeader = "X-Request-ID"

type ctxKey struct{}

// withRequestID echoes an incoming X-Request-ID or assigns a new one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func (h *Handler) respondWithError(w http.ResponseWriter, r *http.Request, code int, message string) {
	h.logger.Warn("API error", "status", code, "message", message, "path", r.URL.Path, "request_id", requestID(r))
	respondWithJSON(w, code, models.ErrorResponse{Error: message, RequestID: requestID(r)})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidAirportCode),
		errors.Is(err, database.ErrNoHistoryAvailable):
		return http.StatusNotFound
	case errors.Is(err, emissions.ErrInvalidDistance),
		errors.Is(err, emissions.ErrInvalidAircraft),
		errors.Is(err, emissions.ErrInvalidSafBlend):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err, "path", r.URL.Path, "request_id", requestID(r))
		respondWithJSON(w, code, models.ErrorResponse{Error: "internal error", RequestID: requestID(r)})
		return
	}
	h.respondWithError(w, r, code, err.Error())
}
