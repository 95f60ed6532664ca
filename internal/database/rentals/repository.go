// Package rentals provides database operations for rental bookings.
//
// Booking, returning and removing a rental each change two rows (the rental
// and its car), so those three operations run inside a transaction.
package rentals

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/carrental/internal/entities"
)

var (
	// ErrCarUnavailable is returned by Book when the car is missing or already rented.
	ErrCarUnavailable = errors.New("car not available")
	// ErrAlreadyReturned is returned by Return for a rental that is no longer active.
	ErrAlreadyReturned = errors.New("car has already been returned")
)

// Repository handles all rental database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new rentals repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(id uint) (*entities.Rental, error) {
	var rental entities.Rental
	err := r.db.First(&rental, id).Error
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *Repository) List() ([]entities.Rental, error) {
	var rentals []entities.Rental
	err := r.db.Order("rental_id ASC").Find(&rentals).Error
	return rentals, err
}

func (r *Repository) ListByStatus(status entities.RentalStatus) ([]entities.Rental, error) {
	var rentals []entities.Rental
	err := r.db.Where("status = ?", status).Order("rental_id ASC").Find(&rentals).Error
	return rentals, err
}

// ListForCar returns the rentals of one car, newest first.
func (r *Repository) ListForCar(carID uint) ([]entities.Rental, error) {
	var rentals []entities.Rental
	err := r.db.Where("car_id = ?", carID).Order("rental_id DESC").Find(&rentals).Error
	return rentals, err
}

// Book marks the car as rented and inserts the rental.
// The status flip is conditional on the car still being available, so two
// bookings of the same car cannot both succeed.
func (r *Repository) Book(rental *entities.Rental) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Car{}).
			Where("car_id = ? AND status = ?", rental.CarID, entities.CarStatusAvailable).
			Update("status", entities.CarStatusRented)
		if result.Error != nil {
			return fmt.Errorf("failed to reserve car %d: %w", rental.CarID, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCarUnavailable
		}

		rental.Status = entities.RentalStatusActive
		if err := tx.Create(rental).Error; err != nil {
			return fmt.Errorf("failed to create rental: %w", err)
		}
		return nil
	})
}

// Return closes an active rental and makes its car available again.
func (r *Repository) Return(id uint) (*entities.Rental, error) {
	var rental entities.Rental
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rental, id).Error; err != nil {
			return err
		}
		if !rental.IsActive() {
			return ErrAlreadyReturned
		}

		if err := tx.Model(&rental).Update("status", entities.RentalStatusReturned).Error; err != nil {
			return fmt.Errorf("failed to close rental %d: %w", id, err)
		}
		if err := releaseCar(tx, rental.CarID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// Remove deletes a rental. Deleting an active rental releases its car.
func (r *Repository) Remove(id uint) (*entities.Rental, error) {
	var rental entities.Rental
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rental, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entities.Rental{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete rental %d: %w", id, err)
		}
		if rental.IsActive() {
			return releaseCar(tx, rental.CarID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// releaseCar flips a car back to available. A car deleted in the meantime is not an error.
func releaseCar(tx *gorm.DB, carID uint) error {
	err := tx.Model(&entities.Car{}).
		Where("car_id = ?", carID).
		Update("status", entities.CarStatusAvailable).Error
	if err != nil {
		return fmt.Errorf("failed to release car %d: %w", carID, err)
	}
	return nil
}
