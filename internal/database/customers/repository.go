// Package customers provides database operations for the customer roster.
package customers

import (
	"gorm.io/gorm"

	"github.com/mrlokans/carrental/internal/entities"
)

// Repository handles all customer database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new customers repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(customer *entities.Customer) error {
	return r.db.Create(customer).Error
}

func (r *Repository) GetByID(id uint) (*entities.Customer, error) {
	var customer entities.Customer
	err := r.db.First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *Repository) List() ([]entities.Customer, error) {
	var customers []entities.Customer
	err := r.db.Order("customer_id ASC").Find(&customers).Error
	return customers, err
}

// Search matches the customer name (case-insensitive partial match).
func (r *Repository) Search(query string) ([]entities.Customer, error) {
	var customers []entities.Customer
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Order("customer_id ASC").
		Find(&customers).Error
	return customers, err
}

// Delete removes a customer. Rentals referencing the customer are left untouched.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Customer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
