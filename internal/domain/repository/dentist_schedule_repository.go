package repository

import (
	"time"

	"denticare-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DentistScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.DentistSchedule) error
	FindByID(db *gorm.DB, id int) (*entity.DentistSchedule, error)
	FindByDentistBetween(db *gorm.DB, dentistID uuid.UUID, from, to time.Time) ([]entity.DentistSchedule, error)
	FindAll(db *gorm.DB) ([]entity.DentistSchedule, error)
	// FindCellForUpdate loads the schedule cell for (dentist, date, shift)
	// with a row-level lock, serializing concurrent bookers of the same slot.
	FindCellForUpdate(db *gorm.DB, dentistID uuid.UUID, date time.Time, shift entity.Shift) (*entity.DentistSchedule, error)
	Update(db *gorm.DB, schedule *entity.DentistSchedule) error
	Delete(db *gorm.DB, id int) (int64, error)
}
