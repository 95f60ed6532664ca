package exporters

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/carrental/internal/database"
	"github.com/mrlokans/carrental/internal/database/cars"
	"github.com/mrlokans/carrental/internal/database/customers"
	"github.com/mrlokans/carrental/internal/database/rentals"
	"github.com/mrlokans/carrental/internal/entities"
)

func seedDesk(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "export.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	carRepo := cars.NewRepository(db.DB)
	require.NoError(t, carRepo.Create(&entities.Car{Model: "Corolla", Brand: "Toyota", PricePerDay: 40}))
	require.NoError(t, carRepo.Create(&entities.Car{Model: "Model 3, Long Range", Brand: "Tesla", PricePerDay: 95}))

	customerRepo := customers.NewRepository(db.DB)
	require.NoError(t, customerRepo.Create(&entities.Customer{Name: "Ada Lovelace", Phone: "555-0100", Email: "ada@example.com"}))
	require.NoError(t, customerRepo.Create(&entities.Customer{Name: "Alan Turing"}))

	require.NoError(t, rentals.NewRepository(db.DB).Book(&entities.Rental{
		Reference:  "REF00001",
		CarID:      1,
		CustomerID: 1,
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-03",
		TotalPrice: 120,
	}))
	return db
}

func newTestExporter(t *testing.T, db *database.Database) *ListingExporter {
	t.Helper()
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	exporter := NewListingExporter(sqlDB, t.TempDir())
	exporter.now = func() time.Time { return time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC) }
	return exporter
}

func TestListingExporter_Export(t *testing.T) {
	exporter := newTestExporter(t, seedDesk(t))

	result, err := exporter.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "listing-20240305-093000.000", filepath.Base(result.Dir))
	assert.Equal(t, 2, result.Cars)
	assert.Equal(t, 2, result.Customers)
	assert.Equal(t, 1, result.Rentals)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	for _, name := range []string{"cars", "customers", "rentals"} {
		data, err := os.ReadFile(filepath.Join(result.Dir, name+".csv"))
		require.NoError(t, err)
		g.Assert(t, name, data)
	}
}

func TestListingExporter_SameInstantGetsOwnDirectory(t *testing.T) {
	exporter := newTestExporter(t, seedDesk(t))

	first, err := exporter.Export(context.Background())
	require.NoError(t, err)
	second, err := exporter.Export(context.Background())
	require.NoError(t, err)
	third, err := exporter.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "listing-20240305-093000.000", filepath.Base(first.Dir))
	assert.Equal(t, "listing-20240305-093000.000-2", filepath.Base(second.Dir))
	assert.Equal(t, "listing-20240305-093000.000-3", filepath.Base(third.Dir))
	for _, dir := range []string{first.Dir, second.Dir, third.Dir} {
		assert.FileExists(t, filepath.Join(dir, "cars.csv"))
	}
}

func TestListingExporter_EmptyTables(t *testing.T) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "empty.db"), nil)
	require.NoError(t, err)
	defer db.Close()

	result, err := newTestExporter(t, db).Export(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Cars+result.Customers+result.Rentals)

	data, err := os.ReadFile(filepath.Join(result.Dir, "rentals.csv"))
	require.NoError(t, err)
	assert.Equal(t, "rental_id,reference,car_id,customer_id,start_date,end_date,total_price,status\n", string(data))
}

func TestListingExporter_CanceledContext(t *testing.T) {
	exporter := newTestExporter(t, seedDesk(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exporter.Export(ctx)
	assert.Error(t, err)
}
