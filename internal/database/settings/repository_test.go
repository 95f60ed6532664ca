package settings

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/carrental/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Setting{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func TestRepository_SetSetting_New(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.SetSetting("currency", "EUR")
	require.NoError(t, err)

	setting, err := repo.GetSetting("currency")
	require.NoError(t, err)
	assert.Equal(t, "currency", setting.Key)
	assert.Equal(t, "EUR", setting.Value)
}

func TestRepository_SetSetting_Update(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.SetSetting("currency", "USD"))
	require.NoError(t, repo.SetSetting("currency", "EUR"))

	setting, err := repo.GetSetting("currency")
	require.NoError(t, err)
	assert.Equal(t, "EUR", setting.Value)
}

func TestRepository_GetSetting_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetSetting("nonexistent")

	assert.Error(t, err)
}

func TestRepository_LastExport_Never(t *testing.T) {
	repo := setupTestDB(t)

	status, err := repo.LastExport()
	require.NoError(t, err)
	assert.Equal(t, "never", status.Status)
	assert.Nil(t, status.RanAt)
}

func TestRepository_RecordExport(t *testing.T) {
	repo := setupTestDB(t)
	at := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	require.NoError(t, repo.RecordExport(at, "success", "/exports/20240601-083000"))

	status, err := repo.LastExport()
	require.NoError(t, err)
	require.NotNil(t, status.RanAt)
	assert.True(t, at.Equal(*status.RanAt))
	assert.Equal(t, "success", status.Status)
	assert.Equal(t, "/exports/20240601-083000", status.Dir)
}
