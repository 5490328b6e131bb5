package main

import (
	"path/filepath"
	"testing"
	"time"

	"actor-portfolio/internal/config"
	"actor-portfolio/internal/database"
	"actor-portfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), name),
	})
	require.NoError(t, err)
	return db
}

func TestCopyInquiries(t *testing.T) {
	src := openSQLite(t, "src.db")
	dst := openSQLite(t, "dst.db")

	sent := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, src.Create(&[]models.ContactInquiry{
		{ID: 1, UUID: "11111111-1111-4111-8111-111111111111", Name: "Casting", Email: "casting@example.com", EmailStatus: models.EmailStatusSent, CreatedAt: sent},
		{ID: 2, UUID: "22222222-2222-4222-8222-222222222222", Name: "Agent", Email: "agent@example.com"},
	}).Error)

	// Same id as the first source row, different uuid.
	require.NoError(t, dst.Create(&models.ContactInquiry{ID: 1, UUID: "33333333-3333-4333-8333-333333333333", Name: "Local", Email: "local@example.com"}).Error)
	// Same uuid as the second source row.
	require.NoError(t, dst.Create(&models.ContactInquiry{ID: 7, UUID: "22222222-2222-4222-8222-222222222222", Name: "Agent (kept)", Email: "agent@example.com"}).Error)

	read, err := copyInquiries(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, read)

	var rows []models.ContactInquiry
	require.NoError(t, dst.Order("uuid asc").Find(&rows).Error)
	require.Len(t, rows, 3)

	assert.Equal(t, "Casting", rows[0].Name)
	assert.NotEqual(t, uint(1), rows[0].ID)
	assert.Equal(t, models.EmailStatusSent, rows[0].EmailStatus)
	assert.True(t, sent.Equal(rows[0].CreatedAt))
	assert.Equal(t, "Agent (kept)", rows[1].Name)
	assert.Equal(t, "Local", rows[2].Name)

	read, err = copyInquiries(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, read)
	var count int64
	require.NoError(t, dst.Model(&models.ContactInquiry{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestCopyInquiries_EmptySource(t *testing.T) {
	read, err := copyInquiries(openSQLite(t, "src.db"), openSQLite(t, "dst.db"))
	require.NoError(t, err)
	assert.Zero(t, read)
}
