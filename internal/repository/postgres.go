package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a UserRepository over the usuarios table
func NewPostgresRepository(db *sql.DB) UserRepository {
	return &postgresRepository{db: db}
}

// GetBio retrieves the sobre column of a user
func (r *postgresRepository) GetBio(ctx context.Context, userID string) (string, error) {
	query := `SELECT COALESCE(sobre, '') FROM usuarios WHERE id = $1`

	var bio string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&bio)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user bio: %w", err)
	}
	return bio, nil
}

// SetBio overwrites the sobre column of a user
func (r *postgresRepository) SetBio(ctx context.Context, userID, bio string) error {
	query := `UPDATE usuarios SET sobre = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, bio, userID)
	if err != nil {
		return fmt.Errorf("failed to update user bio: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return nil
}
