package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/carrental/internal/database/cars"
	"github.com/mrlokans/carrental/internal/database/customers"
	"github.com/mrlokans/carrental/internal/database/rentals"
	"github.com/mrlokans/carrental/internal/entities"
)

var (
	ErrInvalidPrice     = errors.New("price must be an integer")
	ErrInvalidID        = errors.New("id must be an integer")
	ErrInvalidDate      = entities.ErrInvalidDate
	ErrInvalidDateRange = entities.ErrInvalidDateRange
	ErrTotalTooLarge    = entities.ErrTotalTooLarge
	ErrCarNotAvailable  = errors.New("car not available")
	ErrAlreadyReturned  = errors.New("car has already been returned")
	ErrNotFound         = errors.New("not found")
)

// IsValidation reports whether err was caused by bad user input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrTotalTooLarge)
}

// IsConflict reports whether err was caused by the current car or rental state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrCarNotAvailable) || errors.Is(err, ErrAlreadyReturned)
}

// Message returns the operator-facing text for an error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidPrice):
		return "Price must be an integer."
	case errors.Is(err, ErrCarNotAvailable):
		return "Car not available."
	case errors.Is(err, ErrAlreadyReturned):
		return "Car has already been returned."
	case errors.Is(err, ErrTotalTooLarge):
		return "Rental total is too large."
	case errors.Is(err, ErrInvalidID):
		return "Car ID and Customer ID must be integers."
	case errors.Is(err, ErrInvalidDateRange):
		return "End date must not be before start date."
	case errors.Is(err, ErrInvalidDate):
		return "Dates must use the YYYY-MM-DD format."
	case errors.Is(err, ErrNotFound):
		return "Record not found."
	default:
		return err.Error()
	}
}

// RentalDesk is the single entry point for inventory, roster and booking
// operations. All surfaces (web, API, TUI, CLI) go through it.
type RentalDesk struct {
	cars      CarStore
	customers CustomerStore
	rentals   RentalStore

	newReference func() string
}

func NewRentalDesk(carStore CarStore, customerStore CustomerStore, rentalStore RentalStore) *RentalDesk {
	return &RentalDesk{
		cars:         carStore,
		customers:    customerStore,
		rentals:      rentalStore,
		newReference: newBookingReference,
	}
}

// NewRentalDeskFromDB wires the gorm repositories into a RentalDesk.
func NewRentalDeskFromDB(db *gorm.DB) *RentalDesk {
	return NewRentalDesk(
		cars.NewRepository(db),
		customers.NewRepository(db),
		rentals.NewRepository(db),
	)
}

func newBookingReference() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return err
}

// AddCar validates the form and stores a new available car.
func (d *RentalDesk) AddCar(input CarInput) (*entities.Car, error) {
	price, err := strconv.Atoi(strings.TrimSpace(input.Price))
	if err != nil {
		return nil, ErrInvalidPrice
	}

	car := &entities.Car{
		Model:       strings.TrimSpace(input.Model),
		Brand:       strings.TrimSpace(input.Brand),
		PricePerDay: price,
	}
	if err := d.cars.Create(car); err != nil {
		return nil, fmt.Errorf("failed to add car: %w", err)
	}
	return car, nil
}

func (d *RentalDesk) GetCar(id uint) (*entities.Car, error) {
	car, err := d.cars.GetByID(id)
	if err != nil {
		return nil, notFound(err, "car", id)
	}
	return car, nil
}

// DeleteCar removes a car. Rentals that reference it are left untouched.
func (d *RentalDesk) DeleteCar(id uint) error {
	if err := d.cars.Delete(id); err != nil {
		return notFound(err, "car", id)
	}
	return nil
}

func (d *RentalDesk) ListCars() ([]entities.Car, error) {
	return d.cars.List()
}

// SearchCars matches model or brand. An empty query lists everything.
func (d *RentalDesk) SearchCars(query string) ([]entities.Car, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.cars.List()
	}
	return d.cars.Search(query)
}

func (d *RentalDesk) AddCustomer(input CustomerInput) (*entities.Customer, error) {
	customer := &entities.Customer{
		Name:  strings.TrimSpace(input.Name),
		Phone: strings.TrimSpace(input.Phone),
		Email: strings.TrimSpace(input.Email),
	}
	if err := d.customers.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to add customer: %w", err)
	}
	return customer, nil
}

func (d *RentalDesk) GetCustomer(id uint) (*entities.Customer, error) {
	customer, err := d.customers.GetByID(id)
	if err != nil {
		return nil, notFound(err, "customer", id)
	}
	return customer, nil
}

func (d *RentalDesk) DeleteCustomer(id uint) error {
	if err := d.customers.Delete(id); err != nil {
		return notFound(err, "customer", id)
	}
	return nil
}

func (d *RentalDesk) ListCustomers() ([]entities.Customer, error) {
	return d.customers.List()
}

// SearchCustomers matches on name. An empty query lists everything.
func (d *RentalDesk) SearchCustomers(query string) ([]entities.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.customers.List()
	}
	return d.customers.Search(query)
}

// BookRental validates the booking form, prices it against the car's daily
// rate and records an active rental. The car becomes RENTED.
// Availability is checked before the dates are parsed.
func (d *RentalDesk) BookRental(input BookingInput) (*entities.Rental, error) {
	carID, err := parseID(input.CarID)
	if err != nil {
		return nil, err
	}
	customerID, err := parseID(input.CustomerID)
	if err != nil {
		return nil, err
	}

	car, err := d.cars.GetAvailable(carID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotAvailable
		}
		return nil, err
	}

	startDate, err := entities.NormalizeDate(strings.TrimSpace(input.StartDate))
	if err != nil {
		return nil, err
	}
	endDate, err := entities.NormalizeDate(strings.TrimSpace(input.EndDate))
	if err != nil {
		return nil, err
	}
	total, err := entities.TotalPrice(startDate, endDate, car.PricePerDay)
	if err != nil {
		return nil, err
	}

	rental := &entities.Rental{
		Reference:  d.newReference(),
		CarID:      carID,
		CustomerID: customerID,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalPrice: total,
	}
	if err := d.rentals.Book(rental); err != nil {
		if errors.Is(err, rentals.ErrCarUnavailable) {
			return nil, ErrCarNotAvailable
		}
		return nil, fmt.Errorf("failed to book rental: %w", err)
	}
	return rental, nil
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, value)
	}
	return uint(id), nil
}

// ReturnRental closes an active rental and frees its car.
func (d *RentalDesk) ReturnRental(id uint) (*entities.Rental, error) {
	rental, err := d.rentals.Return(id)
	if err != nil {
		if errors.Is(err, rentals.ErrAlreadyReturned) {
			return nil, ErrAlreadyReturned
		}
		return nil, notFound(err, "rental", id)
	}
	rental.Status = entities.RentalStatusReturned
	return rental, nil
}

// DeleteRental removes a rental row. An active rental releases its car first.
func (d *RentalDesk) DeleteRental(id uint) error {
	if _, err := d.rentals.Remove(id); err != nil {
		return notFound(err, "rental", id)
	}
	return nil
}

// CarRentals returns the rental history of a car, newest first.
func (d *RentalDesk) CarRentals(carID uint) ([]entities.Rental, error) {
	if _, err := d.cars.GetByID(carID); err != nil {
		return nil, notFound(err, "car", carID)
	}
	return d.rentals.ListForCar(carID)
}

func (d *RentalDesk) GetRental(id uint) (*entities.Rental, error) {
	rental, err := d.rentals.GetByID(id)
	if err != nil {
		return nil, notFound(err, "rental", id)
	}
	return rental, nil
}

// ListRentals returns rentals, optionally filtered by status.
// An empty status means all rentals.
func (d *RentalDesk) ListRentals(status entities.RentalStatus) ([]entities.Rental, error) {
	if status == "" {
		return d.rentals.List()
	}
	return d.rentals.ListByStatus(status)
}

// ParseRentalStatus accepts ACTIVE/RETURNED in any case. Empty means no filter.
func ParseRentalStatus(value string) (entities.RentalStatus, error) {
	switch entities.RentalStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case "":
		return "", nil
	case entities.RentalStatusActive:
		return entities.RentalStatusActive, nil
	case entities.RentalStatusReturned:
		return entities.RentalStatusReturned, nil
	default:
		return "", fmt.Errorf("unknown rental status %q", value)
	}
}
