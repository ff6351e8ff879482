package dto

import "github.com/google/uuid"

// Response DTOs

// SlotCell is one bookable (date, shift) cell in the weekly grid.
type SlotCell struct {
	Shift     string `json:"shift"`
	StartTime string `json:"start_time"`
	Available bool   `json:"available"`
}

type DaySlots struct {
	Date  string     `json:"date"`
	Cells []SlotCell `json:"cells"`
}

type SlotGridResponse struct {
	DentistID     uuid.UUID  `json:"dentist_id"`
	WeekStartDate string     `json:"week_start_date"`
	WeekOffset    int        `json:"week_offset"`
	Days          []DaySlots `json:"days"`
}
