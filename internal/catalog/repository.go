package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/restomate/resto-admin/internal/domain"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrItemInUse          = errors.New("menu item referenced by orders")
)

const pqForeignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, area_id FROM restaurants ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.AreaID); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return restaurants, nil
}

func (r *CatalogRepository) Areas(ctx context.Context) ([]domain.Area, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name FROM areas ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	areas := []domain.Area{}
	for rows.Next() {
		var a domain.Area
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return areas, nil
}

// Menu lists a restaurant's items, optionally narrowed to one category.
// "All" and the empty string both mean no category filter.
func (r *CatalogRepository) Menu(ctx context.Context, restaurantID int64, category string) ([]domain.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, category, price
		FROM menu_items
		WHERE restaurant_id = $1
	`
	args := []any{restaurantID}

	if category != "" && category != "All" {
		query += ` AND category = $2`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Category, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *CatalogRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, name, category, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, item.RestaurantID, item.Name, item.Category, item.Price).Scan(&item.ID)

	if isForeignKeyViolation(err) {
		return ErrRestaurantNotFound
	}
	return err
}

func (r *CatalogRepository) DeleteMenuItem(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM menu_items WHERE id = $1
	`, id)

	if isForeignKeyViolation(err) {
		return ErrItemInUse
	}
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
