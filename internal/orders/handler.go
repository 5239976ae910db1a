package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/restomate/resto-admin/internal/domain"
	"github.com/restomate/resto-admin/internal/messaging"
)

type Handler struct {
	repo     *OrderRepository
	producer *messaging.Producer
	logger   *slog.Logger

	ordersPlaced    metric.Int64Counter
	premiumUpgrades metric.Int64Counter
}

func NewHandler(repo *OrderRepository, producer *messaging.Producer, logger *slog.Logger) (*Handler, error) {
	meter := otel.Meter("orders")

	placed, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Orders accepted and committed"))
	if err != nil {
		return nil, err
	}

	upgrades, err := meter.Int64Counter("orders.premium_upgrades",
		metric.WithDescription("Customers promoted to premium by an order"))
	if err != nil {
		return nil, err
	}

	return &Handler{
		repo:            repo,
		producer:        producer,
		logger:          logger,
		ordersPlaced:    placed,
		premiumUpgrades: upgrades,
	}, nil
}

type placeOrderRequest struct {
	CustomerID   int64              `json:"cust_id"`
	RestaurantID int64              `json:"rest_id"`
	Items        []domain.OrderLine `json:"items"`
}

type placeOrderResponse struct {
	Message  string `json:"message"`
	OrderID  int64  `json:"order_id"`
	Total    int64  `json:"total"`
	Upgraded bool   `json:"upgraded"`
}

func (h *Handler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CustomerID <= 0 || req.RestaurantID <= 0 {
		h.writeError(w, http.StatusBadRequest, "cust_id and rest_id are required")
		return
	}
	if len(req.Items) == 0 {
		h.writeError(w, http.StatusBadRequest, "no items in order")
		return
	}
	for _, item := range req.Items {
		if item.ItemID <= 0 {
			h.writeError(w, http.StatusBadRequest, "invalid item id")
			return
		}
		if item.Quantity <= 0 {
			h.writeError(w, http.StatusBadRequest, "quantity must be positive")
			return
		}
	}

	result, err := h.repo.Place(r.Context(), req.CustomerID, req.RestaurantID, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			h.writeError(w, http.StatusNotFound, "customer not found")
		case errors.Is(err, ErrRestaurantNotFound):
			h.writeError(w, http.StatusNotFound, "restaurant not found")
		case errors.Is(err, ErrUnknownMenuItem):
			h.writeError(w, http.StatusBadRequest, "unknown menu item in order")
		default:
			h.logger.Error("failed to place order", "error", err, "customer_id", req.CustomerID)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.ordersPlaced.Add(r.Context(), 1)
	if result.Upgraded {
		h.premiumUpgrades.Add(r.Context(), 1)
	}

	if h.producer != nil {
		event := domain.OrderPlacedEvent{
			EventID:      uuid.New().String(),
			OrderID:      result.OrderID,
			CustomerID:   req.CustomerID,
			RestaurantID: req.RestaurantID,
			Total:        result.Total,
			Upgraded:     result.Upgraded,
			Lines:        req.Items,
			Timestamp:    time.Now().UTC(),
		}
		if err := h.producer.Publish(r.Context(), strconv.FormatInt(result.OrderID, 10), event); err != nil {
			h.logger.Error("failed to publish order placed event", "error", err, "order_id", result.OrderID)
		}
	}

	h.logger.Info("order placed",
		"order_id", result.OrderID,
		"customer_id", req.CustomerID,
		"total", result.Total,
		"upgraded", result.Upgraded,
	)
	h.writeJSON(w, http.StatusCreated, placeOrderResponse{
		Message:  "Order placed",
		OrderID:  result.OrderID,
		Total:    result.Total,
		Upgraded: result.Upgraded,
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.repo.ListSummaries(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || customerID <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	entries, err := h.repo.CustomerHistory(r.Context(), customerID)
	if err != nil {
		h.logger.Error("failed to load customer history", "error", err, "customer_id", customerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, entries)
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		h.writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			h.writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, ErrInvalidTransition):
			h.writeError(w, http.StatusConflict, "status transition not allowed")
		default:
			h.logger.Error("failed to update order status", "error", err, "order_id", id)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("order status updated", "order_id", id, "status", req.Status)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
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
