package database

import (
	"context"
	"path/filepath"
	"testing"

	"actor-portfolio/internal/config"
	"actor-portfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInquiryStore(t *testing.T) {
	db, err := Open(&config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	store := NewInquiryStore(db)
	ctx := context.Background()

	inquiry := &models.ContactInquiry{
		UUID:    "0b6f6c1e-3f52-4a8e-9d2c-6d1e2f3a4b5c",
		Name:    "Casting Office",
		Email:   "casting@example.com",
		Message: "Audition next week?",
	}
	require.NoError(t, store.Create(ctx, inquiry))
	assert.NotZero(t, inquiry.ID)

	found, err := store.FindByUUID(ctx, inquiry.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.EmailStatusQueued, found.EmailStatus)

	require.NoError(t, store.UpdateEmailStatus(ctx, inquiry.UUID, models.EmailStatusFailed, "smtp down"))
	found, err = store.FindByUUID(ctx, inquiry.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.EmailStatusFailed, found.EmailStatus)
	assert.Equal(t, "smtp down", found.EmailError)

	require.NoError(t, store.Create(ctx, &models.ContactInquiry{
		UUID:  "5d9a2c44-1e7b-4f3a-8c61-0a2b3c4d5e6f",
		Name:  "Agent",
		Email: "agent@example.com",
	}))

	pending, err := store.ListByStatus(ctx, models.EmailStatusFailed, models.EmailStatusDropped)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, inquiry.UUID, pending[0].UUID)

	queued, err := store.ListByStatus(ctx, models.EmailStatusQueued)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, "Agent", queued[0].Name)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}
