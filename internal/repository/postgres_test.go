package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB returns a connection to DATABASE_URL or skips the test
func setupTestDB(t *testing.T) *sql.DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("Failed to ping test database: %v", err)
	}
	return db
}

func TestPostgresRepository_Bio(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	var id string
	err := db.QueryRowContext(ctx,
		`INSERT INTO usuarios (nome, email, sobre) VALUES ($1, $2, NULL) RETURNING id::text`,
		"Teste", "teste-repo@example.com").Scan(&id)
	require.NoError(t, err)
	defer db.Exec(`DELETE FROM usuarios WHERE id = $1`, id)

	repo := NewPostgresRepository(db)

	bio, err := repo.GetBio(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, bio)

	require.NoError(t, repo.SetBio(ctx, id, "###Apresentacao\nolá"))
	bio, err = repo.GetBio(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "###Apresentacao\nolá", bio)
}

func TestPostgresRepository_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewPostgresRepository(db)

	_, err := repo.GetBio(context.Background(), "-1")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, repo.SetBio(context.Background(), "-1", "x"), ErrUserNotFound)
}
