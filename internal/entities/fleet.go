package entities

import (
	"time"
)

type CarStatus string

const (
	CarStatusAvailable CarStatus = "AVAILABLE"
	CarStatusRented    CarStatus = "RENTED"
)

type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "ACTIVE"
	RentalStatusReturned RentalStatus = "RETURNED"
)

// Column names match the car_rental.db schema so existing files open as-is.
type Car struct {
	ID          uint      `gorm:"primaryKey;column:car_id" json:"id"`
	Model       string    `gorm:"column:model;size:128" json:"model"`
	Brand       string    `gorm:"column:brand;size:128" json:"brand"`
	PricePerDay int       `gorm:"column:price_per_day" json:"price_per_day"`
	Status      CarStatus `gorm:"column:status;size:20;default:AVAILABLE" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Customer struct {
	ID        uint      `gorm:"primaryKey;column:customer_id" json:"id"`
	Name      string    `gorm:"column:name;index;size:256" json:"name"`
	Phone     string    `gorm:"column:phone;size:64" json:"phone"`
	Email     string    `gorm:"column:email;size:255" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rental links a car to a customer for an inclusive date range.
// StartDate and EndDate are stored as YYYY-MM-DD text.
type Rental struct {
	ID         uint         `gorm:"primaryKey;column:rental_id" json:"id"`
	Reference  string       `gorm:"column:reference;index;size:16" json:"reference"`
	CarID      uint         `gorm:"column:car_id;index" json:"car_id"`
	CustomerID uint         `gorm:"column:customer_id;index" json:"customer_id"`
	StartDate  string       `gorm:"column:start_date;size:10" json:"start_date"`
	EndDate    string       `gorm:"column:end_date;size:10" json:"end_date"`
	TotalPrice int          `gorm:"column:total_price" json:"total_price"`
	Status     RentalStatus `gorm:"column:status;size:20;default:ACTIVE" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (Car) TableName() string {
	return "cars"
}

func (Customer) TableName() string {
	return "customers"
}

func (Rental) TableName() string {
	return "rentals"
}

// IsAvailable reports whether the car can be booked.
func (c Car) IsAvailable() bool {
	return c.Status == CarStatusAvailable
}

// IsActive reports whether the rental still holds its car.
func (r Rental) IsActive() bool {
	return r.Status == RentalStatusActive
}
