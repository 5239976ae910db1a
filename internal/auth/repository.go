package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var ErrUsernameTaken = errors.New("username already exists")

const pqUniqueViolation = "23505"

type userRecord struct {
	ID           int64
	Username     string
	PasswordHash string
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, username, passwordHash).Scan(&id)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return 0, ErrUsernameTaken
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetByUsername returns nil without error when no such user exists, so
// the caller can treat missing user and wrong password the same way.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userRecord, error) {
	var u userRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}
