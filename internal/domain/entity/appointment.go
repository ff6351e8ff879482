package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment.
// Confirmed is the initial state; the other three are terminal.
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusAttended  AppointmentStatus = "attended"
	AppointmentStatusAbsented  AppointmentStatus = "absented"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// Appointment type categories
const (
	AppointmentTypeFirstTime    = "first-time"
	AppointmentTypeFollowUp     = "follow-up"
	AppointmentTypeConsultation = "consultation"
	AppointmentTypeTreatment    = "treatment"
)

// PatientCancelLeadTime is the minimum lead time before the appointment
// within which a patient-initiated cancellation is refused.
const PatientCancelLeadTime = 2 * time.Hour

// Appointment represents a booked visit occupying one (dentist, date, shift) slot.
type Appointment struct {
	ID                           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID                    uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DentistID                    uuid.UUID         `gorm:"type:uuid;not null;index" json:"dentist_id"`
	AppointmentDate              time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime              string            `gorm:"type:time;not null" json:"appointment_time"`
	Shift                        Shift             `gorm:"type:varchar(10);not null" json:"shift"`
	Status                       AppointmentStatus `gorm:"type:varchar(10);not null;default:'confirmed';index" json:"status"`
	AppointmentType              string            `gorm:"type:varchar(30);not null" json:"appointment_type"`
	IsNewPatient                 bool              `gorm:"not null;default:false" json:"is_new_patient"`
	RescheduledFromAppointmentID *int64            `gorm:"index" json:"rescheduled_from_appointment_id,omitempty"`
	Content                      string            `gorm:"type:text" json:"content,omitempty"`
	CancelReason                 string            `gorm:"type:varchar(200)" json:"cancel_reason,omitempty"`
	IsDeleted                    bool              `gorm:"not null;default:false;index" json:"-"`
	CreatedBy                    *uuid.UUID        `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy                    *uuid.UUID        `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt                    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient         Patient        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Dentist         DentistProfile `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
	RescheduledFrom *Appointment   `gorm:"foreignKey:RescheduledFromAppointmentID" json:"rescheduled_from,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsConfirmed checks if the appointment is still in its initial state
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsTerminal checks if the appointment has reached a terminal state
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusAttended ||
		a.Status == AppointmentStatusAbsented ||
		a.Status == AppointmentStatusCanceled
}

// OccupiesSlot reports whether this appointment blocks its (dentist, date,
// shift) slot. Canceled appointments free the slot.
func (a *Appointment) OccupiesSlot() bool {
	return !a.IsDeleted && a.Status != AppointmentStatusCanceled
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
// The only legal moves are confirmed -> {attended, absented, canceled}.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	if !a.IsConfirmed() {
		return false
	}
	switch target {
	case AppointmentStatusAttended, AppointmentStatusAbsented, AppointmentStatusCanceled:
		return true
	}
	return false
}

// StartAt combines the appointment date and time into an instant in the
// clinic timezone.
func (a *Appointment) StartAt(loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04:05", a.AppointmentTime)
	if err != nil {
		return time.Time{}, err
	}
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}

// CancellationDeadline is the last instant at which a patient may cancel.
func (a *Appointment) CancellationDeadline(loc *time.Location) (time.Time, error) {
	start, err := a.StartAt(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(-PatientCancelLeadTime), nil
}

// CancelableByPatient applies the patient cancellation policy: the
// appointment must still be confirmed and now must be at least the lead time
// before the appointment start.
func (a *Appointment) CancelableByPatient(now time.Time, loc *time.Location) bool {
	if !a.IsConfirmed() {
		return false
	}
	deadline, err := a.CancellationDeadline(loc)
	if err != nil {
		return false
	}
	return !now.After(deadline)
}

// CancelableByStaff applies the staff cancellation policy: confirmed only,
// no time restriction.
func (a *Appointment) CancelableByStaff() bool {
	return a.IsConfirmed()
}

// RemainingTimeText renders the time left until the cancellation deadline
// for UI display. Purely derived, no side effects.
func (a *Appointment) RemainingTimeText(now time.Time, loc *time.Location) string {
	deadline, err := a.CancellationDeadline(loc)
	if err != nil {
		return ""
	}
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return "cancellation window closed"
	}

	days := int(remaining.Hours()) / 24
	hours := int(remaining.Hours()) % 24
	minutes := int(remaining.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm until cancellation closes", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm until cancellation closes", hours, minutes)
	}
	return fmt.Sprintf("%dm until cancellation closes", minutes)
}
