package couriers

import (
	"context"
	"database/sql"
	"errors"

	"github.com/restomate/resto-admin/internal/domain"
)

var ErrCourierNotFound = errors.New("courier not found")

type CourierRepository struct {
	db *sql.DB
}

func NewCourierRepository(db *sql.DB) *CourierRepository {
	return &CourierRepository{db: db}
}

func (r *CourierRepository) List(ctx context.Context) ([]domain.Courier, error) {
	return r.query(ctx, `
		SELECT id, name, phone, area_id, available FROM couriers ORDER BY id
	`)
}

// Available reads from the available_couriers view so the dispatch
// surface stays in one place.
func (r *CourierRepository) Available(ctx context.Context) ([]domain.Courier, error) {
	return r.query(ctx, `
		SELECT id, name, phone, area_id, available FROM available_couriers ORDER BY id
	`)
}

func (r *CourierRepository) query(ctx context.Context, query string) ([]domain.Courier, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	couriers := []domain.Courier{}
	for rows.Next() {
		var c domain.Courier
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.AreaID, &c.Available); err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}

func (r *CourierRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE couriers SET available = $1 WHERE id = $2
	`, available, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCourierNotFound
	}

	return nil
}
