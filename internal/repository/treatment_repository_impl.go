package repository

import (
	"errors"

	"denticare-server/internal/domain/entity"
	domainRepo "denticare-server/internal/domain/repository"

	"gorm.io/gorm"
)

type treatmentRepository struct{}

func NewTreatmentRepository() domainRepo.TreatmentRepository {
	return &treatmentRepository{}
}

func (r *treatmentRepository) Create(db *gorm.DB, treatment *entity.Treatment) error {
	return db.Create(treatment).Error
}

func (r *treatmentRepository) FindByID(db *gorm.DB, id int) (*entity.Treatment, error) {
	var treatment entity.Treatment
	err := db.Where("id = ?", id).First(&treatment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &treatment, nil
}

func (r *treatmentRepository) FindAll(db *gorm.DB) ([]entity.Treatment, error) {
	var treatments []entity.Treatment
	err := db.Order("name ASC").Find(&treatments).Error
	if err != nil {
		return nil, err
	}
	return treatments, nil
}

func (r *treatmentRepository) Update(db *gorm.DB, treatment *entity.Treatment) error {
	return db.Save(treatment).Error
}

func (r *treatmentRepository) Delete(db *gorm.DB, id int) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Treatment{})
	return affected.RowsAffected, affected.Error
}
