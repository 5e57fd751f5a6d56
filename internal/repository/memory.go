package repository

import (
	"context"
	"sync"
)

// MemoryRepository keeps biographies in process memory. Unknown users read as an
// empty biography and are created on first write.
type MemoryRepository struct {
	mu   sync.Mutex
	bios map[string]string
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{bios: make(map[string]string)}
}

// GetBio returns the stored biography
func (r *MemoryRepository) GetBio(ctx context.Context, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bios[userID], nil
}

// SetBio replaces the stored biography
func (r *MemoryRepository) SetBio(ctx context.Context, userID, bio string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bios[userID] = bio
	return nil
}
