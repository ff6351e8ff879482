package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateScheduleRequest struct {
	DentistID uuid.UUID `json:"dentist_id" validate:"required"`
	WorkDate  string    `json:"work_date" validate:"required,datetime=2006-01-02"`
	Shift     string    `json:"shift" validate:"required,oneof=morning afternoon evening"`
	IsActive  *bool     `json:"is_active" validate:"omitempty"`
}

type UpdateScheduleRequest struct {
	IsActive *bool  `json:"is_active" validate:"omitempty"`
	Status   string `json:"status" validate:"omitempty,oneof=pending approved"`
}

// Response DTOs

type ScheduleResponse struct {
	ID            int                     `json:"id"`
	DentistID     uuid.UUID               `json:"dentist_id"`
	Dentist       *DentistProfileResponse `json:"dentist,omitempty"`
	WorkDate      string                  `json:"work_date"`
	Shift         string                  `json:"shift"`
	WeekStartDate string                  `json:"week_start_date"`
	IsActive      *bool                   `json:"is_active"`
	Status        string                  `json:"status"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
