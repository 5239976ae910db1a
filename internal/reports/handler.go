package reports

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type Handler struct {
	repo   *ReportRepository
	logger *slog.Logger
}

func NewHandler(repo *ReportRepository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.repo.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("failed to load dashboard counts", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) HandleExportJSON(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.Customers(r.Context())
	if err != nil {
		h.logger.Error("failed to export customers", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	orders, err := h.repo.Orders(r.Context())
	if err != nil {
		h.logger.Error("failed to export orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="restaurant_data.json"`)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(map[string]any{
		"timestamp": time.Now().UTC(),
		"customers": customers,
		"orders":    orders,
	})
	if err != nil {
		h.logger.Error("failed to encode export", "error", err)
	}
}

func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.Orders(r.Context())
	if err != nil {
		h.logger.Error("failed to export orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders_export.csv"`)

	if err := WriteOrdersCSV(w, orders); err != nil {
		h.logger.Error("failed to write csv export", "error", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
