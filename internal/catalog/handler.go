package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/restomate/resto-admin/internal/domain"
)

type Handler struct {
	repo   *CatalogRepository
	logger *slog.Logger
}

func NewHandler(repo *CatalogRepository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

func (h *Handler) HandleRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.repo.Restaurants(r.Context())
	if err != nil {
		h.logger.Error("failed to list restaurants", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) HandleAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.repo.Areas(r.Context())
	if err != nil {
		h.logger.Error("failed to list areas", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, areas)
}

func (h *Handler) HandleMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := strconv.ParseInt(r.PathValue("restaurantId"), 10, 64)
	if err != nil || restaurantID <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	category := r.URL.Query().Get("category")

	items, err := h.repo.Menu(r.Context(), restaurantID, category)
	if err != nil {
		h.logger.Error("failed to list menu", "error", err, "restaurant_id", restaurantID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

type menuItemRequest struct {
	RestaurantID int64  `json:"rest_id"`
	Name         string `json:"item_name"`
	Category     string `json:"category"`
	Price        int64  `json:"price"`
}

func (h *Handler) HandleCreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RestaurantID <= 0 {
		h.writeError(w, http.StatusBadRequest, "rest_id is required")
		return
	}
	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "item_name is required")
		return
	}
	if req.Price < 0 {
		h.writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	item := &domain.MenuItem{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
	}

	if err := h.repo.CreateMenuItem(r.Context(), item); err != nil {
		if errors.Is(err, ErrRestaurantNotFound) {
			h.writeError(w, http.StatusNotFound, "restaurant not found")
			return
		}
		h.logger.Error("failed to create menu item", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("menu item created", "item_id", item.ID, "restaurant_id", item.RestaurantID)
	h.writeJSON(w, http.StatusCreated, map[string]any{"message": "Item added", "id": item.ID})
}

func (h *Handler) HandleDeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.repo.DeleteMenuItem(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound):
			h.writeError(w, http.StatusNotFound, "menu item not found")
		case errors.Is(err, ErrItemInUse):
			h.writeError(w, http.StatusConflict, "Cannot delete: item referenced by orders")
		default:
			h.logger.Error("failed to delete menu item", "error", err, "item_id", id)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("menu item deleted", "item_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
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
