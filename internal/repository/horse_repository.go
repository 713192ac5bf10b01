package repository

import (
	"github.com/barnhand/stable-api/internal/models"
	"gorm.io/gorm"
)

// HorseRepository defines the interface for horse data access used by the
// task workflow. Horse CRUD itself goes through the handlers directly.
type HorseRepository interface {
	// FindByID finds a horse by ID
	FindByID(id uint64) (*models.Horse, error)
}

// GormHorseRepository is a GORM implementation of HorseRepository
type GormHorseRepository struct {
	db *gorm.DB
}

// NewHorseRepository creates a new HorseRepository
func NewHorseRepository(db *gorm.DB) HorseRepository {
	return &GormHorseRepository{db: db}
}

// FindByID finds a horse by ID
func (r *GormHorseRepository) FindByID(id uint64) (*models.Horse, error) {
	var horse models.Horse
	if err := r.db.First(&horse, id).Error; err != nil {
		return nil, err
	}
	return &horse, nil
}
