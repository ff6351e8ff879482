package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// RescheduleAppointmentRequest relocates a confirmed appointment to a new
// dentist/date/time. The status stays confirmed.
type RescheduleAppointmentRequest struct {
	DentistID       uuid.UUID `json:"dentist_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,datetime=15:04:05"`
	Content         string    `json:"content" validate:"omitempty,max=1000"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

type AppointmentListQuery struct {
	DentistID uuid.UUID `json:"dentist_id"`
	StartAt   string    `json:"start_at" validate:"omitempty,datetime=2006-01-02"`
	EndAt     string    `json:"end_at" validate:"omitempty,datetime=2006-01-02"`
	Status    string    `json:"status" validate:"omitempty,oneof=confirmed attended absented canceled"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                           int64                   `json:"id"`
	PatientID                    uuid.UUID               `json:"patient_id"`
	Patient                      *PatientResponse        `json:"patient,omitempty"`
	DentistID                    uuid.UUID               `json:"dentist_id"`
	Dentist                      *DentistProfileResponse `json:"dentist,omitempty"`
	AppointmentDate              string                  `json:"appointment_date"`
	AppointmentTime              string                  `json:"appointment_time"`
	Shift                        string                  `json:"shift"`
	Status                       string                  `json:"status"`
	AppointmentType              string                  `json:"appointment_type"`
	IsNewPatient                 bool                    `json:"is_new_patient"`
	RescheduledFromAppointmentID *int64                  `json:"rescheduled_from_appointment_id,omitempty"`
	Content                      string                  `json:"content,omitempty"`
	CancelReason                 string                  `json:"cancel_reason,omitempty"`
	// CancellationRemaining is the human-readable time left in the patient
	// cancellation window, present only while the appointment is confirmed.
	CancellationRemaining string    `json:"cancellation_remaining,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
