package customers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/carrental/internal/database"
	"github.com/mrlokans/carrental/internal/entities"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "customers.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := setupTestRepo(t)

	customer := &entities.Customer{Name: "Grace Hopper", Phone: "555-0199", Email: "grace@example.com"}
	require.NoError(t, repo.Create(customer))
	require.NotZero(t, customer.ID)

	loaded, err := repo.GetByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", loaded.Name)
	assert.Equal(t, "555-0199", loaded.Phone)
	assert.Equal(t, "grace@example.com", loaded.Email)
}

func TestRepository_SearchByName(t *testing.T) {
	repo := setupTestRepo(t)
	for _, name := range []string{"Alan Turing", "Ada Lovelace", "Alonzo Church"} {
		require.NoError(t, repo.Create(&entities.Customer{Name: name}))
	}

	found, err := repo.Search("al")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Alan Turing", found[0].Name)
	assert.Equal(t, "Alonzo Church", found[1].Name)

	found, err = repo.Search("lovelace")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	first := &entities.Customer{Name: "Alan Turing"}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(&entities.Customer{Name: "Ada Lovelace"}))

	require.NoError(t, repo.Delete(first.ID))
	assert.ErrorIs(t, repo.Delete(first.ID), gorm.ErrRecordNotFound)

	all, err := repo.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ada Lovelace", all[0].Name)
}
