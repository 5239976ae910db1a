package customers

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/restomate/resto-admin/internal/domain"
)

var (
	ErrEmailTaken       = errors.New("email already exists")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAreaNotFound     = errors.New("area not found")
	ErrHasOrders        = errors.New("customer has orders")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, name, phone, COALESCE(email, ''), address, area_id, is_premium`

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	return r.query(ctx, `
		SELECT `+customerColumns+` FROM customers ORDER BY id
	`)
}

// Search matches case-insensitive substrings of the customer name.
func (r *CustomerRepository) Search(ctx context.Context, q string) ([]domain.Customer, error) {
	return r.query(ctx, `
		SELECT `+customerColumns+` FROM customers
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
	`, q)
}

func (r *CustomerRepository) query(ctx context.Context, query string, args ...any) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

// Create inserts a customer with the premium flag off. An empty email is
// stored as NULL so the partial unique index only applies to real addresses.
func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (name, phone, email, address, area_id, is_premium)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, FALSE)
		RETURNING id
	`, c.Name, c.Phone, c.Email, c.Address, c.AreaID).Scan(&c.ID)

	switch pqCode(err) {
	case pqUniqueViolation:
		return ErrEmailTaken
	case pqForeignKeyViolation:
		return ErrAreaNotFound
	}
	return err
}

// Update rewrites the editable fields. The premium flag is owned by the
// order aggregator and is deliberately not touchable here.
func (r *CustomerRepository) Update(ctx context.Context, id int64, c *domain.Customer) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $1, phone = $2, email = NULLIF($3, ''), address = $4, area_id = $5
		WHERE id = $6
	`, c.Name, c.Phone, c.Email, c.Address, c.AreaID, id)

	switch pqCode(err) {
	case pqUniqueViolation:
		return ErrEmailTaken
	case pqForeignKeyViolation:
		return ErrAreaNotFound
	}
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Delete removes a customer. The FK from orders is RESTRICT, so a customer
// with order history is refused.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM customers WHERE id = $1
	`, id)

	if pqCode(err) == pqForeignKeyViolation {
		return ErrHasOrders
	}
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}
