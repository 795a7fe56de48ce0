// backend/handlers/history_handler.go
package handlers

import (
	"bytes"
	"net/http"
)

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.calc.History()
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// ExportHistory streams the ledger file unchanged.
func (h *Handler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.calc.StreamHistory(&buf); err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) ExportHistoryExcel(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.calc.StreamExcel(&buf); err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="history.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) HistoryReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.calc.RenderReport(&buf); err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
