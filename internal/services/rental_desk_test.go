package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/carrental/internal/database"
	"github.com/mrlokans/carrental/internal/database/rentals"
	"github.com/mrlokans/carrental/internal/entities"
)

func setupDesk(t *testing.T) *RentalDesk {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "desk.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	desk := NewRentalDeskFromDB(db.DB)
	desk.newReference = func() string { return "TESTREF1" }
	return desk
}

func mustAddCar(t *testing.T, desk *RentalDesk, price string) *entities.Car {
	t.Helper()
	car, err := desk.AddCar(CarInput{Model: "Corolla", Brand: "Toyota", Price: price})
	require.NoError(t, err)
	return car
}

func TestAddCar(t *testing.T) {
	desk := setupDesk(t)

	car, err := desk.AddCar(CarInput{Model: "  Corolla ", Brand: "Toyota", Price: " 40 "})
	require.NoError(t, err)
	assert.Equal(t, "Corolla", car.Model)
	assert.Equal(t, 40, car.PricePerDay)
	assert.Equal(t, entities.CarStatusAvailable, car.Status)

	for _, price := range []string{"", "forty", "40.5", "99999999999999999999"} {
		_, err := desk.AddCar(CarInput{Model: "Yaris", Brand: "Toyota", Price: price})
		assert.ErrorIs(t, err, ErrInvalidPrice, "price %q", price)
	}

	discounted, err := desk.AddCar(CarInput{Model: "Yaris", Brand: "Toyota", Price: "-5"})
	require.NoError(t, err, "any integer price is accepted")
	assert.Equal(t, -5, discounted.PricePerDay)

	all, err := desk.ListCars()
	require.NoError(t, err)
	assert.Len(t, all, 2, "rejected cars are not stored")
}

func TestSearchCars_EmptyQueryListsAll(t *testing.T) {
	desk := setupDesk(t)
	mustAddCar(t, desk, "40")
	_, err := desk.AddCar(CarInput{Model: "Focus", Brand: "Ford", Price: "35"})
	require.NoError(t, err)

	all, err := desk.SearchCars("   ")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ford, err := desk.SearchCars("ford")
	require.NoError(t, err)
	require.Len(t, ford, 1)
	assert.Equal(t, "Focus", ford[0].Model)
}

func TestDeleteCar_NotFound(t *testing.T) {
	desk := setupDesk(t)

	err := desk.DeleteCar(77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddCustomer(t *testing.T) {
	desk := setupDesk(t)

	customer, err := desk.AddCustomer(CustomerInput{Name: " Ada ", Phone: "555", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", customer.Name)

	anonymous, err := desk.AddCustomer(CustomerInput{Name: "   ", Phone: "555-0101"})
	require.NoError(t, err, "name is optional")
	assert.Empty(t, anonymous.Name)

	found, err := desk.SearchCustomers("ad")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, desk.DeleteCustomer(customer.ID))
	assert.ErrorIs(t, desk.DeleteCustomer(customer.ID), ErrNotFound)
}

func TestBookRental(t *testing.T) {
	desk := setupDesk(t)
	car := mustAddCar(t, desk, "40")

	rental, err := desk.BookRental(BookingInput{
		CarID:      "1",
		CustomerID: "9",
		StartDate:  "2024-02-28",
		EndDate:    "2024-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "TESTREF1", rental.Reference)
	assert.Equal(t, 120, rental.TotalPrice, "three inclusive days across the leap day")
	assert.Equal(t, entities.RentalStatusActive, rental.Status)
	assert.Equal(t, uint(9), rental.CustomerID, "customer existence is not checked")

	reloaded, err := desk.GetCar(car.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.CarStatusRented, reloaded.Status)

	_, err = desk.BookRental(BookingInput{CarID: "1", CustomerID: "2", StartDate: "2024-04-01", EndDate: "2024-04-01"})
	assert.ErrorIs(t, err, ErrCarNotAvailable)
}

func TestBookRental_Validation(t *testing.T) {
	desk := setupDesk(t)
	mustAddCar(t, desk, "40")

	tests := []struct {
		name    string
		input   BookingInput
		wantErr error
	}{
		{"car id not a number", BookingInput{CarID: "one", CustomerID: "1", StartDate: "2024-01-01", EndDate: "2024-01-02"}, ErrInvalidID},
		{"customer id empty", BookingInput{CarID: "1", CustomerID: "", StartDate: "2024-01-01", EndDate: "2024-01-02"}, ErrInvalidID},
		{"bad start date", BookingInput{CarID: "1", CustomerID: "1", StartDate: "01/01/2024", EndDate: "2024-01-02"}, ErrInvalidDate},
		{"bad end date", BookingInput{CarID: "1", CustomerID: "1", StartDate: "2024-01-01", EndDate: "2024-02-30"}, ErrInvalidDate},
		{"end before start", BookingInput{CarID: "1", CustomerID: "1", StartDate: "2024-01-05", EndDate: "2024-01-01"}, ErrInvalidDateRange},
		{"unknown car", BookingInput{CarID: "42", CustomerID: "1", StartDate: "2024-01-01", EndDate: "2024-01-02"}, ErrCarNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := desk.BookRental(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	active, err := desk.ListRentals(entities.RentalStatusActive)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestBookRental_TotalTooLarge(t *testing.T) {
	desk := setupDesk(t)
	mustAddCar(t, desk, "9223372036854775807")

	_, err := desk.BookRental(BookingInput{CarID: "1", CustomerID: "1", StartDate: "2024-01-01", EndDate: "2024-01-02"})
	assert.ErrorIs(t, err, ErrTotalTooLarge)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Rental total is too large.", Message(err))

	booked, err := desk.ListRentals("")
	require.NoError(t, err)
	assert.Empty(t, booked)
	car, err := desk.GetCar(1)
	require.NoError(t, err)
	assert.True(t, car.IsAvailable(), "car stays available when the total is rejected")
}

func TestBookRental_UnpaddedDates(t *testing.T) {
	desk := setupDesk(t)
	mustAddCar(t, desk, "10")

	rental, err := desk.BookRental(BookingInput{CarID: "1", CustomerID: "1", StartDate: "2024-1-5", EndDate: "2024-1-7"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", rental.StartDate)
	assert.Equal(t, "2024-01-07", rental.EndDate)
	assert.Equal(t, 30, rental.TotalPrice)
}

func TestReturnRental(t *testing.T) {
	desk := setupDesk(t)
	car := mustAddCar(t, desk, "25")
	rental, err := desk.BookRental(BookingInput{CarID: "1", CustomerID: "1", StartDate: "2024-01-01", EndDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 25, rental.TotalPrice)

	returned, err := desk.ReturnRental(rental.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.RentalStatusReturned, returned.Status)

	reloaded, err := desk.GetCar(car.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.CarStatusAvailable, reloaded.Status)

	_, err = desk.ReturnRental(rental.ID)
	assert.ErrorIs(t, err, ErrAlreadyReturned)
	assert.Equal(t, "Car has already been returned.", Message(err))

	_, err = desk.ReturnRental(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRental_ReleasesActiveCar(t *testing.T) {
	desk := setupDesk(t)
	car := mustAddCar(t, desk, "25")
	rental, err := desk.BookRental(BookingInput{CarID: "1", CustomerID: "1", StartDate: "2024-01-01", EndDate: "2024-01-03"})
	require.NoError(t, err)

	require.NoError(t, desk.DeleteRental(rental.ID))

	reloaded, err := desk.GetCar(car.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsAvailable())

	_, err = desk.GetRental(rental.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, desk.DeleteRental(rental.ID), ErrNotFound)
}

// racingRentalStore reports the car as taken at booking time even though the
// preceding read saw it available.
type racingRentalStore struct {
	RentalStore
}

func (racingRentalStore) Book(*entities.Rental) error {
	return rentals.ErrCarUnavailable
}

func TestBookRental_LostRace(t *testing.T) {
	desk := setupDesk(t)
	mustAddCar(t, desk, "40")
	desk.rentals = racingRentalStore{RentalStore: desk.rentals}

	_, err := desk.BookRental(BookingInput{CarID: "1", CustomerID: "1", StartDate: "2024-01-01", EndDate: "2024-01-02"})
	assert.ErrorIs(t, err, ErrCarNotAvailable)
}

func TestParseRentalStatus(t *testing.T) {
	status, err := ParseRentalStatus("active")
	require.NoError(t, err)
	assert.Equal(t, entities.RentalStatusActive, status)

	status, err = ParseRentalStatus("")
	require.NoError(t, err)
	assert.Empty(t, status)

	_, err = ParseRentalStatus("lost")
	assert.Error(t, err)
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsValidation(ErrInvalidPrice))
	assert.True(t, IsValidation(errors.Join(errors.New("ctx"), ErrInvalidDate)))
	assert.False(t, IsValidation(ErrCarNotAvailable))
	assert.True(t, IsConflict(ErrCarNotAvailable))
	assert.True(t, IsConflict(ErrAlreadyReturned))
	assert.Equal(t, "Price must be an integer.", Message(ErrInvalidPrice))
	assert.Equal(t, "Car not available.", Message(ErrCarNotAvailable))
	assert.Empty(t, Message(nil))
}

func TestCarRentals(t *testing.T) {
	desk := setupDesk(t)
	car := mustAddCar(t, desk, "30")
	first, err := desk.BookRental(BookingInput{CarID: "1", CustomerID: "1", StartDate: "2024-01-01", EndDate: "2024-01-02"})
	require.NoError(t, err)
	_, err = desk.ReturnRental(first.ID)
	require.NoError(t, err)
	second, err := desk.BookRental(BookingInput{CarID: "1", CustomerID: "2", StartDate: "2024-02-01", EndDate: "2024-02-01"})
	require.NoError(t, err)

	history, err := desk.CarRentals(car.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID, "newest first")

	_, err = desk.CarRentals(99)
	assert.ErrorIs(t, err, ErrNotFound)
}
