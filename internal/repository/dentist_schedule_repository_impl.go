package repository

import (
	"errors"
	"time"

	"denticare-server/internal/domain/entity"
	domainRepo "denticare-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dentistScheduleRepository struct{}

func NewDentistScheduleRepository() domainRepo.DentistScheduleRepository {
	return &dentistScheduleRepository{}
}

func (r *dentistScheduleRepository) Create(db *gorm.DB, schedule *entity.DentistSchedule) error {
	return db.Create(schedule).Error
}

func (r *dentistScheduleRepository) FindByID(db *gorm.DB, id int) (*entity.DentistSchedule, error) {
	var schedule entity.DentistSchedule
	err := db.Preload("Dentist.User").Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *dentistScheduleRepository) FindByDentistBetween(db *gorm.DB, dentistID uuid.UUID, from, to time.Time) ([]entity.DentistSchedule, error) {
	var schedules []entity.DentistSchedule
	err := db.
		Where("dentist_id = ? AND work_date BETWEEN ? AND ?", dentistID, from, to).
		Order("work_date ASC, shift ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *dentistScheduleRepository) FindAll(db *gorm.DB) ([]entity.DentistSchedule, error) {
	var schedules []entity.DentistSchedule
	err := db.Preload("Dentist").Preload("Dentist.User").
		Order("work_date ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindCellForUpdate takes a row-level lock on the schedule cell so that two
// concurrent bookers of the same (dentist, date, shift) are serialized; the
// second one sees the first one's appointment row when it re-checks the slot.
func (r *dentistScheduleRepository) FindCellForUpdate(db *gorm.DB, dentistID uuid.UUID, date time.Time, shift entity.Shift) (*entity.DentistSchedule, error) {
	var schedule entity.DentistSchedule
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("dentist_id = ? AND work_date = ? AND shift = ?", dentistID, date, shift).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *dentistScheduleRepository) Update(db *gorm.DB, schedule *entity.DentistSchedule) error {
	return db.Omit("Dentist").Save(schedule).Error
}

func (r *dentistScheduleRepository) Delete(db *gorm.DB, id int) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.DentistSchedule{})
	return affected.RowsAffected, affected.Error
}
