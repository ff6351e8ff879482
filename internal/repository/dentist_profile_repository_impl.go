package repository

import (
	"errors"

	"denticare-server/internal/domain/entity"
	domainRepo "denticare-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dentistProfileRepository struct{}

func NewDentistProfileRepository() domainRepo.DentistProfileRepository {
	return &dentistProfileRepository{}
}

func (r *dentistProfileRepository) Create(db *gorm.DB, profile *entity.DentistProfile) error {
	return db.Create(profile).Error
}

func (r *dentistProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DentistProfile, error) {
	var profile entity.DentistProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *dentistProfileRepository) FindAll(db *gorm.DB) ([]entity.DentistProfile, error) {
	var profiles []entity.DentistProfile
	err := db.Preload("User").
		Joins("JOIN users ON users.id = dentist_profiles.user_id").
		Where("users.is_active = ?", true).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *dentistProfileRepository) Update(db *gorm.DB, profile *entity.DentistProfile) error {
	return db.Omit("User", "Schedules", "Appointments").Save(profile).Error
}

func (r *dentistProfileRepository) Delete(db *gorm.DB, userID uuid.UUID) (int64, error) {
	affected := db.Where("user_id = ?", userID).Delete(&entity.DentistProfile{})
	return affected.RowsAffected, affected.Error
}
