package repository

import (
	"errors"
	"time"

	"denticare-server/internal/domain/entity"
	domainRepo "denticare-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Dentist", "RescheduledFrom").Save(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Dentist.User").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Dentist.User").
		Where("patient_id = ? AND is_deleted = ?", patientID, false).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Where("is_deleted = ?", false)

	if filter != nil {
		if filter.DentistID != uuid.Nil {
			query = query.Where("dentist_id = ?", filter.DentistID)
		}
		if filter.PatientID != uuid.Nil {
			query = query.Where("patient_id = ?", filter.PatientID)
		}
		if filter.StartAt != "" {
			query = query.Where("appointment_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("appointment_date <= ?", filter.EndAt)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	err := query.
		Preload("Patient").Preload("Dentist.User").
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindOccupiedSlots(db *gorm.DB, dentistID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Where("dentist_id = ? AND appointment_date BETWEEN ? AND ?", dentistID, from, to).
		Where("status != ? AND is_deleted = ?", entity.AppointmentStatusCanceled, false).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountActiveInSlot(db *gorm.DB, dentistID uuid.UUID, date time.Time, shift entity.Shift, excludeID int64) (int64, error) {
	var count int64
	query := db.Model(&entity.Appointment{}).
		Where("dentist_id = ? AND appointment_date = ? AND shift = ?", dentistID, date, shift).
		Where("status != ? AND is_deleted = ?", entity.AppointmentStatusCanceled, false)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// RelocateConfirmed moves the appointment ONLY while it is still confirmed,
// so a reschedule racing a lifecycle transition affects zero rows.
func (r *appointmentRepository) RelocateConfirmed(db *gorm.DB, id int64, dentistID uuid.UUID, date time.Time, timeOfDay string, shift entity.Shift, content string, updatedBy *uuid.UUID) (int64, error) {
	updates := map[string]interface{}{
		"dentist_id":       dentistID,
		"appointment_date": date,
		"appointment_time": timeOfDay,
		"shift":            shift,
		"updated_by":       updatedBy,
	}
	if content != "" {
		updates["content"] = content
	}
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, entity.AppointmentStatusConfirmed, false).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// UpdateStatusFromConfirmed atomically transitions the appointment ONLY if it
// is still confirmed. Returns affected rows: 1 = success, 0 = stale transition
// (the row already left confirmed, or does not exist).
func (r *appointmentRepository) UpdateStatusFromConfirmed(db *gorm.DB, id int64, status entity.AppointmentStatus, cancelReason string, updatedBy *uuid.UUID) (int64, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_by": updatedBy,
	}
	if cancelReason != "" {
		updates["cancel_reason"] = cancelReason
	}
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, entity.AppointmentStatusConfirmed, false).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) SoftDelete(db *gorm.DB, id int64, updatedBy *uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{"is_deleted": true, "updated_by": updatedBy})
	return result.RowsAffected, result.Error
}
