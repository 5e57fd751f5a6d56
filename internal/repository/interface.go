package repository

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository reads and writes the free-text biography ("sobre") of a user
type UserRepository interface {
	// GetBio returns the current biography, empty when none is set
	GetBio(ctx context.Context, userID string) (string, error)

	// SetBio replaces the biography
	SetBio(ctx context.Context, userID, bio string) error
}
