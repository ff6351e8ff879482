package repository

import (
	"denticare-server/internal/domain/entity"

	"gorm.io/gorm"
)

type TreatmentRepository interface {
	Create(db *gorm.DB, treatment *entity.Treatment) error
	FindByID(db *gorm.DB, id int) (*entity.Treatment, error)
	FindAll(db *gorm.DB) ([]entity.Treatment, error)
	Update(db *gorm.DB, treatment *entity.Treatment) error
	Delete(db *gorm.DB, id int) (int64, error)
}
