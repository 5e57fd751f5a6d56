package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	bio, err := repo.GetBio(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, bio)

	require.NoError(t, repo.SetBio(ctx, "1", "Hello"))
	require.NoError(t, repo.SetBio(ctx, "2", "Other"))

	bio, err = repo.GetBio(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", bio)
}
