package repository

import (
	"denticare-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DentistProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DentistProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DentistProfile, error)
	FindAll(db *gorm.DB) ([]entity.DentistProfile, error)
	Update(db *gorm.DB, profile *entity.DentistProfile) error
	Delete(db *gorm.DB, userID uuid.UUID) (int64, error)
}
