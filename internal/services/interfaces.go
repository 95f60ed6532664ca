package services

import "github.com/mrlokans/carrental/internal/entities"

// CarStore provides persistence for the car inventory.
type CarStore interface {
	Create(car *entities.Car) error
	GetByID(id uint) (*entities.Car, error)
	GetAvailable(id uint) (*entities.Car, error)
	List() ([]entities.Car, error)
	Search(query string) ([]entities.Car, error)
	Delete(id uint) error
}

// CustomerStore provides persistence for the customer roster.
type CustomerStore interface {
	Create(customer *entities.Customer) error
	GetByID(id uint) (*entities.Customer, error)
	List() ([]entities.Customer, error)
	Search(query string) ([]entities.Customer, error)
	Delete(id uint) error
}

// RentalStore provides persistence for bookings.
// Book, Return and Remove keep the car status in step with the rental.
type RentalStore interface {
	GetByID(id uint) (*entities.Rental, error)
	List() ([]entities.Rental, error)
	ListByStatus(status entities.RentalStatus) ([]entities.Rental, error)
	ListForCar(carID uint) ([]entities.Rental, error)
	Book(rental *entities.Rental) error
	Return(id uint) (*entities.Rental, error)
	Remove(id uint) (*entities.Rental, error)
}

// CarInput is the raw car form. Price arrives as text and is validated.
type CarInput struct {
	Model string `json:"model" form:"model"`
	Brand string `json:"brand" form:"brand"`
	Price string `json:"price_per_day" form:"price_per_day"`
}

type CustomerInput struct {
	Name  string `json:"name" form:"name"`
	Phone string `json:"phone" form:"phone"`
	Email string `json:"email" form:"email"`
}

// BookingInput is the raw rental form.
type BookingInput struct {
	CarID      string `json:"car_id" form:"car_id"`
	CustomerID string `json:"customer_id" form:"customer_id"`
	StartDate  string `json:"start_date" form:"start_date"`
	EndDate    string `json:"end_date" form:"end_date"`
}
