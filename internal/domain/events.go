package domain

import "time"

// OrderPlacedEvent is published after a placement commits. Delivery is
// best-effort; nothing in the API depends on it.
type OrderPlacedEvent struct {
	EventID      string      `json:"event_id"`
	OrderID      int64       `json:"order_id"`
	CustomerID   int64       `json:"cust_id"`
	RestaurantID int64       `json:"rest_id"`
	Total        int64       `json:"total"`
	Upgraded     bool        `json:"upgraded"`
	Lines        []OrderLine `json:"items"`
	Timestamp    time.Time   `json:"timestamp"`
}
