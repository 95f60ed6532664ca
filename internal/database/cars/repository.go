// Package cars provides database operations for the car inventory.
//
// # Usage
//
//	repo := cars.NewRepository(db)
//	available, err := repo.GetAvailable(carID)
package cars

import (
	"gorm.io/gorm"

	"github.com/mrlokans/carrental/internal/entities"
)

// Repository handles all car database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cars repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a car. New cars are always available.
func (r *Repository) Create(car *entities.Car) error {
	car.Status = entities.CarStatusAvailable
	return r.db.Create(car).Error
}

// GetByID retrieves a car by its ID.
func (r *Repository) GetByID(id uint) (*entities.Car, error) {
	var car entities.Car
	err := r.db.First(&car, id).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// GetAvailable retrieves a car only if it is currently available.
// Returns gorm.ErrRecordNotFound when the car is missing or rented.
func (r *Repository) GetAvailable(id uint) (*entities.Car, error) {
	var car entities.Car
	err := r.db.Where("car_id = ? AND status = ?", id, entities.CarStatusAvailable).First(&car).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// List returns every car ordered by ID.
func (r *Repository) List() ([]entities.Car, error) {
	var cars []entities.Car
	err := r.db.Order("car_id ASC").Find(&cars).Error
	return cars, err
}

// Search matches model or brand (case-insensitive partial match).
func (r *Repository) Search(query string) ([]entities.Car, error) {
	var cars []entities.Car
	searchPattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(model) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?)", searchPattern, searchPattern).
		Order("car_id ASC").
		Find(&cars).Error
	return cars, err
}

// Delete removes a car. Returns gorm.ErrRecordNotFound if nothing was deleted.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Car{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
