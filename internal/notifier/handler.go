package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/restomate/resto-admin/internal/domain"
)

// Handler reacts to placed orders by finding a courier who could take
// the delivery. It calls back into the admin API rather than the
// database so it stays deployable on its own.
type Handler struct {
	adminURL   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHandler(adminURL string, httpClient *http.Client, logger *slog.Logger) *Handler {
	return &Handler{
		adminURL:   adminURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to unmarshal order placed event: %w", err)
	}

	couriers, err := h.fetchAvailableCouriers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch available couriers: %w", err)
	}

	if len(couriers) == 0 {
		h.logger.Warn("no couriers available",
			"event_id", event.EventID,
			"order_id", event.OrderID,
		)
		return nil
	}

	candidate := couriers[0]
	h.logger.Info("dispatch candidate",
		"event_id", event.EventID,
		"order_id", event.OrderID,
		"customer_id", event.CustomerID,
		"total", event.Total,
		"courier_id", candidate.ID,
		"courier_name", candidate.Name,
		"courier_phone", candidate.Phone,
	)

	return nil
}

func (h *Handler) fetchAvailableCouriers(ctx context.Context) ([]domain.Courier, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.adminURL+"/api/delivery/available", nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("admin api returned status %d: %s", resp.StatusCode, body)
	}

	var couriers []domain.Courier
	if err := json.NewDecoder(resp.Body).Decode(&couriers); err != nil {
		return nil, err
	}

	return couriers, nil
}
