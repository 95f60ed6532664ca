// Package exporters writes raw listings of the desk's tables to disk.
package exporters

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
)

const dialectSQLite = "sqlite3"

// ExportResult describes one completed listing export.
type ExportResult struct {
	Dir       string `json:"dir"`
	Cars      int    `json:"cars"`
	Customers int    `json:"customers"`
	Rentals   int    `json:"rentals"`
}

type carRow struct {
	ID          int64  `db:"car_id"`
	Model       string `db:"model"`
	Brand       string `db:"brand"`
	PricePerDay int64  `db:"price_per_day"`
	Status      string `db:"status"`
}

type customerRow struct {
	ID    int64  `db:"customer_id"`
	Name  string `db:"name"`
	Phone string `db:"phone"`
	Email string `db:"email"`
}

type rentalRow struct {
	ID         int64  `db:"rental_id"`
	Reference  string `db:"reference"`
	CarID      int64  `db:"car_id"`
	CustomerID int64  `db:"customer_id"`
	StartDate  string `db:"start_date"`
	EndDate    string `db:"end_date"`
	TotalPrice int64  `db:"total_price"`
	Status     string `db:"status"`
}

// ListingExporter dumps cars, customers and rentals as CSV files into a
// fresh timestamped directory under baseDir.
type ListingExporter struct {
	db      *goqu.Database
	baseDir string
	now     func() time.Time
}

func NewListingExporter(db *sql.DB, baseDir string) *ListingExporter {
	return &ListingExporter{
		db:      goqu.New(dialectSQLite, db),
		baseDir: baseDir,
		now:     time.Now,
	}
}

// maxDirAttempts bounds the numeric suffixes tried when exports collide.
const maxDirAttempts = 100

// createDir makes a new listing directory named after the current time to the
// millisecond. Exports started within the same millisecond get a -2, -3 ... suffix
// so they never share files.
func (e *ListingExporter) createDir() (string, error) {
	if err := os.MkdirAll(e.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	base := filepath.Join(e.baseDir, "listing-"+e.now().UTC().Format("20060102-150405.000"))
	dir := base
	for attempt := 2; ; attempt++ {
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) || attempt > maxDirAttempts {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
		dir = base + "-" + strconv.Itoa(attempt)
	}
}

// Export writes cars.csv, customers.csv and rentals.csv.
func (e *ListingExporter) Export(ctx context.Context) (ExportResult, error) {
	dir, err := e.createDir()
	if err != nil {
		return ExportResult{}, err
	}
	result := ExportResult{Dir: dir}

	var cars []carRow
	err = e.db.From("cars").
		Select(
			goqu.C("car_id"),
			text("model"),
			text("brand"),
			number("price_per_day"),
			text("status"),
		).
		Order(goqu.I("car_id").Asc()).
		ScanStructsContext(ctx, &cars)
	if err != nil {
		return result, fmt.Errorf("failed to read cars: %w", err)
	}
	carRecords := make([][]string, 0, len(cars))
	for _, c := range cars {
		carRecords = append(carRecords, []string{
			itoa(c.ID), c.Model, c.Brand, itoa(c.PricePerDay), c.Status,
		})
	}
	if err := writeCSV(filepath.Join(dir, "cars.csv"),
		[]string{"car_id", "model", "brand", "price_per_day", "status"}, carRecords); err != nil {
		return result, err
	}
	result.Cars = len(cars)

	var customers []customerRow
	err = e.db.From("customers").
		Select(goqu.C("customer_id"), text("name"), text("phone"), text("email")).
		Order(goqu.I("customer_id").Asc()).
		ScanStructsContext(ctx, &customers)
	if err != nil {
		return result, fmt.Errorf("failed to read customers: %w", err)
	}
	customerRecords := make([][]string, 0, len(customers))
	for _, c := range customers {
		customerRecords = append(customerRecords, []string{itoa(c.ID), c.Name, c.Phone, c.Email})
	}
	if err := writeCSV(filepath.Join(dir, "customers.csv"),
		[]string{"customer_id", "name", "phone", "email"}, customerRecords); err != nil {
		return result, err
	}
	result.Customers = len(customers)

	var rentals []rentalRow
	err = e.db.From("rentals").
		Select(
			goqu.C("rental_id"),
			text("reference"),
			number("car_id"),
			number("customer_id"),
			text("start_date"),
			text("end_date"),
			number("total_price"),
			text("status"),
		).
		Order(goqu.I("rental_id").Asc()).
		ScanStructsContext(ctx, &rentals)
	if err != nil {
		return result, fmt.Errorf("failed to read rentals: %w", err)
	}
	rentalRecords := make([][]string, 0, len(rentals))
	for _, r := range rentals {
		rentalRecords = append(rentalRecords, []string{
			itoa(r.ID), r.Reference, itoa(r.CarID), itoa(r.CustomerID),
			r.StartDate, r.EndDate, itoa(r.TotalPrice), r.Status,
		})
	}
	if err := writeCSV(filepath.Join(dir, "rentals.csv"),
		[]string{"rental_id", "reference", "car_id", "customer_id", "start_date", "end_date", "total_price", "status"},
		rentalRecords); err != nil {
		return result, err
	}
	result.Rentals = len(rentals)

	return result, nil
}

// Rows written by older versions of the desk may hold NULLs.
func text(col string) exp.AliasedExpression {
	return goqu.COALESCE(goqu.C(col), "").As(col)
}

func number(col string) exp.AliasedExpression {
	return goqu.COALESCE(goqu.C(col), 0).As(col)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
