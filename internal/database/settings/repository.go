// Package settings provides database operations for application settings.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	status, err := repo.LastExport()
package settings

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/carrental/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by key.
func (r *Repository) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSetting creates or updates a setting.
func (r *Repository) SetSetting(key, value string) error {
	var setting entities.Setting
	result := r.db.Where("key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			Key:   key,
			Value: value,
		}
		return r.db.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return r.db.Save(&setting).Error
}

// ExportStatus describes the most recent listing export.
type ExportStatus struct {
	RanAt  *time.Time `json:"ran_at,omitempty"`
	Status string     `json:"status"`
	Dir    string     `json:"dir,omitempty"`
}

// RecordExport stores the outcome of a listing export.
func (r *Repository) RecordExport(at time.Time, status, dir string) error {
	if err := r.SetSetting(entities.SettingKeyLastExportAt, at.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if err := r.SetSetting(entities.SettingKeyLastExportStatus, status); err != nil {
		return err
	}
	return r.SetSetting(entities.SettingKeyLastExportDir, dir)
}

// LastExport returns the recorded export outcome, or status "never" if none ran yet.
func (r *Repository) LastExport() (ExportStatus, error) {
	result := ExportStatus{Status: "never"}

	at, err := r.GetSetting(entities.SettingKeyLastExportAt)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return result, nil
	}
	if err != nil {
		return result, err
	}
	if t, parseErr := time.Parse(time.RFC3339, at.Value); parseErr == nil {
		result.RanAt = &t
	}

	if status, err := r.GetSetting(entities.SettingKeyLastExportStatus); err == nil {
		result.Status = status.Value
	}
	if dir, err := r.GetSetting(entities.SettingKeyLastExportDir); err == nil {
		result.Dir = dir.Value
	}
	return result, nil
}
