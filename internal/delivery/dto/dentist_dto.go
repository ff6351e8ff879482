package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateDentistRequest struct {
	FullName       string `json:"full_name" validate:"omitempty,min=2"`
	Specialization string `json:"specialization" validate:"omitempty"`
	Biography      string `json:"biography" validate:"omitempty"`
}

// Response DTOs

type DentistProfileResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	FullName       string    `json:"full_name,omitempty"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Biography      string    `json:"biography,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

type DentistListResponse struct {
	Dentists []DentistProfileResponse `json:"dentists"`
	Total    int                      `json:"total"`
}
