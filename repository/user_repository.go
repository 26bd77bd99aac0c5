package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"adminSeeder/models"
)

// ErrWriteFailed wraps every failure of a user write: missing table, I/O error,
// constraint violation or a locked database. The driver error stays in the chain.
var ErrWriteFailed = errors.New("write failed")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts u, or replaces the whole row when the username already exists.
// Columns not written here fall back to their defaults; nothing is merged.
func (r *UserRepository) Upsert(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("%w: nil user", ErrWriteFailed)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		u.Username, u.PasswordHash, u.Role)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// GetByUsername returns the user or nil when no row matches.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, status FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// ListByRole returns users holding role, ordered by id.
func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, password_hash, role, status FROM users WHERE role = ? ORDER BY id`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Status); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
