package dto

import "github.com/google/uuid"

// Request DTOs

// BookingFields are the guest-channel booking fields, shared between the
// pre-check endpoint and the full booking call.
type BookingFields struct {
	FullName        string    `json:"full_name" validate:"required,min=2,max=255"`
	Email           string    `json:"email" validate:"required,email"`
	Phone           string    `json:"phone" validate:"required,min=8,max=20,numeric"`
	DentistID       uuid.UUID `json:"dentist_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,datetime=15:04:05"`
	Content         string    `json:"content" validate:"required,max=1000"`
}

// ValidateBookingRequest pre-checks guest booking fields without writing.
type ValidateBookingRequest struct {
	BookingFields
}

// GuestBookingRequest is the full guest booking call, including the
// challenge-response pair. Challenge length is checked by the captcha
// service, not the validator, so a wrong length maps to InvalidCaptcha.
type GuestBookingRequest struct {
	BookingFields
	ChallengeID    string `json:"challenge_id" validate:"required,uuid"`
	ChallengeInput string `json:"challenge_input" validate:"required"`
}

// FollowUpBookingRequest is the staff channel: booking on behalf of an
// existing patient, optionally linked to the prior visit.
type FollowUpBookingRequest struct {
	PatientID           uuid.UUID `json:"patient_id" validate:"required"`
	DentistID           uuid.UUID `json:"dentist_id" validate:"required"`
	AppointmentDate     string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime     string    `json:"appointment_time" validate:"required,datetime=15:04:05"`
	Content             string    `json:"content" validate:"required,max=1000"`
	SourceAppointmentID *int64    `json:"source_appointment_id" validate:"omitempty,min=1"`
}

// Response DTOs

// BookingResponse wraps the created appointment. ExistingPatient signals the
// guest channel caller that their phone already has a patient record and they
// should authenticate for self-service cancellation.
type BookingResponse struct {
	Appointment     *AppointmentResponse `json:"appointment"`
	ExistingPatient bool                 `json:"existing_patient"`
	Notice          string               `json:"notice,omitempty"`
}

type CaptchaResponse struct {
	ChallengeID string `json:"challenge_id"`
	Challenge   string `json:"challenge"`
}
