package reports

import (
	"context"
	"database/sql"
	"time"

	"github.com/restomate/resto-admin/internal/domain"
)

type DashboardCounts struct {
	Customers   int64 `json:"customers"`
	Restaurants int64 `json:"restaurants"`
	Orders      int64 `json:"orders"`
}

// ExportRow is one line of the denormalized order export. Names are
// resolved at export time so the file stands on its own.
type ExportRow struct {
	OrderID        int64     `json:"order_id"`
	CustomerName   string    `json:"customer_name"`
	RestaurantName string    `json:"restaurant_name"`
	OrderDate      time.Time `json:"order_date"`
	Total          int64     `json:"total"`
}

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	var counts DashboardCounts
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM restaurants),
			(SELECT COUNT(*) FROM orders)
	`).Scan(&counts.Customers, &counts.Restaurants, &counts.Orders)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *ReportRepository) Customers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, COALESCE(email, ''), address, area_id, is_premium
		FROM customers ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.AreaID, &c.IsPremium); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *ReportRepository) Orders(ctx context.Context) ([]ExportRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, c.name, rest.name, o.created_at, o.total
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN restaurants rest ON rest.id = o.restaurant_id
		ORDER BY o.created_at DESC, o.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	exportRows := []ExportRow{}
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(&row.OrderID, &row.CustomerName, &row.RestaurantName, &row.OrderDate, &row.Total); err != nil {
			return nil, err
		}
		exportRows = append(exportRows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exportRows, nil
}
