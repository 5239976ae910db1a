package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
)

// PremiumThreshold is the lifetime spend, in cents, a customer must exceed
// before being promoted to premium.
const PremiumThreshold int64 = 100_000

func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusCompleted
}

// CanTransition reports whether an order may move between the two statuses.
// Re-asserting the current status is allowed; callers treat it as a no-op.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	return from == OrderStatusPending && to == OrderStatusCompleted
}

type OrderLine struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type Order struct {
	ID           int64       `json:"order_id"`
	CustomerID   int64       `json:"cust_id"`
	RestaurantID int64       `json:"rest_id"`
	Status       OrderStatus `json:"status"`
	Total        int64       `json:"total"`
	CreatedAt    time.Time   `json:"order_date"`
	Lines        []OrderLine `json:"items,omitempty"`
}

// OrderSummary is the denormalized row served by the order list view.
type OrderSummary struct {
	OrderID        int64       `json:"order_id"`
	CustomerName   string      `json:"customer_name"`
	RestaurantName string      `json:"restaurant_name"`
	OrderDate      time.Time   `json:"order_date"`
	Status         OrderStatus `json:"status"`
	Total          int64       `json:"total"`
}

// HistoryEntry is one row of a customer's order history.
type HistoryEntry struct {
	OrderID        int64       `json:"order_id"`
	RestaurantName string      `json:"rest_name"`
	OrderDate      time.Time   `json:"order_date"`
	Status         OrderStatus `json:"status"`
	Total          int64       `json:"total"`
}

// PlacementResult reports what a committed placement produced. Upgraded is
// true only when this placement flipped the customer's premium flag, not on
// every order past the threshold.
type PlacementResult struct {
	OrderID  int64
	Total    int64
	Upgraded bool
}
