package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/restomate/resto-admin/internal/domain"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrUnknownMenuItem    = errors.New("unknown menu item")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("status transition not allowed")
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Place runs the whole order placement as one transaction: price resolution,
// order + line inserts, lifetime-spend recomputation, and the premium
// promotion. On any error nothing is committed.
//
// Unit prices come from menu_items only; a line referencing an item that
// does not exist, or that belongs to a different restaurant, fails the whole
// order. Duplicate lines for the same item are inserted as separate rows.
func (r *OrderRepository) Place(ctx context.Context, customerID, restaurantID int64, lines []domain.OrderLine) (*domain.PlacementResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// Lock the customer row first. Placements for the same customer
	// serialize here, so the lifetime-spend sum below always includes every
	// previously committed order.
	var wasPremium bool
	err = tx.QueryRowContext(ctx, `
		SELECT is_premium FROM customers WHERE id = $1 FOR UPDATE
	`, customerID).Scan(&wasPremium)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	var restaurantExists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = $1)
	`, restaurantID).Scan(&restaurantExists)
	if err != nil {
		return nil, err
	}
	if !restaurantExists {
		return nil, ErrRestaurantNotFound
	}

	itemIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		itemIDs = append(itemIDs, line.ItemID)
	}

	prices := make(map[int64]int64, len(lines))
	rows, err := tx.QueryContext(ctx, `
		SELECT id, price FROM menu_items
		WHERE restaurant_id = $1 AND id = ANY($2)
	`, restaurantID, pq.Array(itemIDs))
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id, price int64
		if err := rows.Scan(&id, &price); err != nil {
			_ = rows.Close()
			return nil, err
		}
		prices[id] = price
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	var total int64
	for _, line := range lines {
		price, ok := prices[line.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %d", ErrUnknownMenuItem, line.ItemID)
		}
		total += price * int64(line.Quantity)
	}

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, restaurant_id, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`, customerID, restaurantID, domain.OrderStatusPending, total).Scan(&orderID)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, menu_item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, orderID, line.ItemID, line.Quantity, prices[line.ItemID])
		if err != nil {
			return nil, err
		}
	}

	var lifetime int64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM orders WHERE customer_id = $1
	`, customerID).Scan(&lifetime)
	if err != nil {
		return nil, err
	}

	upgraded := false
	if !wasPremium && lifetime > domain.PremiumThreshold {
		if _, err = tx.ExecContext(ctx, `
			UPDATE customers SET is_premium = TRUE WHERE id = $1
		`, customerID); err != nil {
			return nil, err
		}
		upgraded = true
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.PlacementResult{OrderID: orderID, Total: total, Upgraded: upgraded}, nil
}

// UpdateStatus applies a status transition. Re-asserting the current status
// commits without changes so the call stays idempotent for the caller.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var current domain.OrderStatus
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if current == status {
		return tx.Commit()
	}
	if !domain.CanTransition(current, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id); err != nil {
		return err
	}

	return tx.Commit()
}

// ListSummaries returns the denormalized order list, newest first.
func (r *OrderRepository) ListSummaries(ctx context.Context) ([]domain.OrderSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, c.name, r.name, o.created_at, o.status, o.total
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		JOIN restaurants r ON o.restaurant_id = r.id
		ORDER BY o.created_at DESC, o.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	summaries := []domain.OrderSummary{}
	for rows.Next() {
		var s domain.OrderSummary
		if err := rows.Scan(&s.OrderID, &s.CustomerName, &s.RestaurantName, &s.OrderDate, &s.Status, &s.Total); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// CustomerHistory returns one customer's orders, newest first. An unknown
// customer yields an empty list, not an error.
func (r *OrderRepository) CustomerHistory(ctx context.Context, customerID int64) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, r.name, o.created_at, o.status, o.total
		FROM orders o
		JOIN restaurants r ON o.restaurant_id = r.id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC, o.id DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.OrderID, &e.RestaurantName, &e.OrderDate, &e.Status, &e.Total); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
