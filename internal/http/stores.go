package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/carrental/internal/database/settings"
	"github.com/mrlokans/carrental/internal/entities"
	"github.com/mrlokans/carrental/internal/services"
)

// This file collects the interfaces controllers depend on. Each controller
// takes only the slice it uses; *services.RentalDesk satisfies all of them.

// CarDesk covers the car inventory tab.
type CarDesk interface {
	AddCar(input services.CarInput) (*entities.Car, error)
	GetCar(id uint) (*entities.Car, error)
	DeleteCar(id uint) error
	ListCars() ([]entities.Car, error)
	SearchCars(query string) ([]entities.Car, error)
	CarRentals(carID uint) ([]entities.Rental, error)
}

// CustomerDesk covers the customer roster tab.
type CustomerDesk interface {
	AddCustomer(input services.CustomerInput) (*entities.Customer, error)
	GetCustomer(id uint) (*entities.Customer, error)
	DeleteCustomer(id uint) error
	ListCustomers() ([]entities.Customer, error)
	SearchCustomers(query string) ([]entities.Customer, error)
}

// RentalDesk covers the bookings tab. It needs cars and customers to label
// rentals and fill the booking form.
type RentalDesk interface {
	BookRental(input services.BookingInput) (*entities.Rental, error)
	ReturnRental(id uint) (*entities.Rental, error)
	DeleteRental(id uint) error
	GetRental(id uint) (*entities.Rental, error)
	ListRentals(status entities.RentalStatus) ([]entities.Rental, error)
	ListCars() ([]entities.Car, error)
	ListCustomers() ([]entities.Customer, error)
}

// Desk is everything the router needs.
type Desk interface {
	CarDesk
	CustomerDesk
	RentalDesk
}

// ExportQueue enqueues listing exports and reports task progress.
type ExportQueue interface {
	EnqueueExport(ctx context.Context) (string, error)
	Status(ctx context.Context, id string) (backlite.TaskStatus, error)
}

// ExportStatusReader reads the outcome of the most recent export.
type ExportStatusReader interface {
	LastExport() (settings.ExportStatus, error)
}

var _ Desk = (*services.RentalDesk)(nil)
