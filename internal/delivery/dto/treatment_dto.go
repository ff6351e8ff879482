package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateTreatmentRequest struct {
	Name            string          `json:"name" validate:"required,max=255"`
	Description     string          `json:"description" validate:"omitempty"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=5"`
}

type UpdateTreatmentRequest struct {
	Name            string           `json:"name" validate:"omitempty,max=255"`
	Description     string           `json:"description" validate:"omitempty"`
	Price           *decimal.Decimal `json:"price" validate:"omitempty"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,min=5"`
}

// Response DTOs

type TreatmentResponse struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type TreatmentListResponse struct {
	Treatments []TreatmentResponse `json:"treatments"`
	Total      int                 `json:"total"`
}
