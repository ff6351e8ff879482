package repository

import (
	"time"

	"denticare-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Save(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindOccupiedSlots returns the slot-occupying appointments for a dentist
	// in [from, to], i.e. not canceled and not soft-deleted.
	FindOccupiedSlots(db *gorm.DB, dentistID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
	// CountActiveInSlot counts slot-occupying appointments in one
	// (dentist, date, shift) cell; must run inside the reservation
	// transaction. excludeID omits one appointment (the one being
	// relocated); pass 0 for a fresh booking.
	CountActiveInSlot(db *gorm.DB, dentistID uuid.UUID, date time.Time, shift entity.Shift, excludeID int64) (int64, error)
	// RelocateConfirmed moves a still-confirmed appointment to a new
	// (dentist, date, time, shift). Returns affected rows: 0 = the
	// appointment already left confirmed.
	RelocateConfirmed(db *gorm.DB, id int64, dentistID uuid.UUID, date time.Time, timeOfDay string, shift entity.Shift, content string, updatedBy *uuid.UUID) (int64, error)
	// UpdateStatusFromConfirmed transitions the status with a guard on the
	// source state. Returns affected rows: 1 = success, 0 = the appointment
	// was no longer confirmed (stale transition, rejected).
	UpdateStatusFromConfirmed(db *gorm.DB, id int64, status entity.AppointmentStatus, cancelReason string, updatedBy *uuid.UUID) (int64, error)
	SoftDelete(db *gorm.DB, id int64, updatedBy *uuid.UUID) (int64, error)
}
