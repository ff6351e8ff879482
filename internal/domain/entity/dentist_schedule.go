package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleStatus is the administrative approval state of a schedule cell,
// independent of booking state.
type ScheduleStatus string

const (
	ScheduleStatusPending  ScheduleStatus = "pending"
	ScheduleStatusApproved ScheduleStatus = "approved"
)

// DentistSchedule declares that a dentist works a given (date, shift) cell.
// A cell only becomes bookable once it is active and approved.
type DentistSchedule struct {
	ID            int            `gorm:"primaryKey;autoIncrement" json:"id"`
	DentistID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_dentist_schedules_cell,unique" json:"dentist_id"`
	WorkDate      time.Time      `gorm:"type:date;not null;index:idx_dentist_schedules_cell,unique" json:"work_date"`
	Shift         Shift          `gorm:"type:varchar(10);not null;index:idx_dentist_schedules_cell,unique" json:"shift"`
	WeekStartDate time.Time      `gorm:"type:date;not null;index" json:"week_start_date"`
	IsActive      *bool          `gorm:"not null;default:true" json:"is_active"`
	Status        ScheduleStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Dentist DentistProfile `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
}

func (DentistSchedule) TableName() string {
	return "dentist_schedules"
}

// Bookable reports whether this cell may appear in the availability grid.
func (s *DentistSchedule) Bookable() bool {
	return s.IsActive != nil && *s.IsActive && s.Status == ScheduleStatusApproved
}
