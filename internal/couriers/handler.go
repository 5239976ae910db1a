package couriers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

type Handler struct {
	repo   *CourierRepository
	logger *slog.Logger
}

func NewHandler(repo *CourierRepository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	couriers, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list couriers", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, couriers)
}

func (h *Handler) HandleAvailable(w http.ResponseWriter, r *http.Request) {
	couriers, err := h.repo.Available(r.Context())
	if err != nil {
		h.logger.Error("failed to list available couriers", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, couriers)
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

func (h *Handler) HandleSetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid courier id")
		return
	}

	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Available == nil {
		h.writeError(w, http.StatusBadRequest, "available is required")
		return
	}

	if err := h.repo.SetAvailability(r.Context(), id, *req.Available); err != nil {
		if errors.Is(err, ErrCourierNotFound) {
			h.writeError(w, http.StatusNotFound, "courier not found")
			return
		}
		h.logger.Error("failed to update courier availability", "error", err, "courier_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("courier availability updated", "courier_id", id, "available", *req.Available)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Availability updated"})
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
