package converter

import (
	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"

	"github.com/google/uuid"
)

// ScheduleToResponse converts a DentistSchedule entity to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.DentistSchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	response := &dto.ScheduleResponse{
		ID:            schedule.ID,
		DentistID:     schedule.DentistID,
		WorkDate:      schedule.WorkDate.Format("2006-01-02"),
		Shift:         string(schedule.Shift),
		WeekStartDate: schedule.WeekStartDate.Format("2006-01-02"),
		IsActive:      schedule.IsActive,
		Status:        string(schedule.Status),
		CreatedAt:     schedule.CreatedAt,
		UpdatedAt:     schedule.UpdatedAt,
	}

	if schedule.Dentist.UserID != uuid.Nil {
		response.Dentist = DentistProfileToResponse(&schedule.Dentist)
	}

	return response
}

// SchedulesToResponses converts a slice of DentistSchedule entities to slice of ScheduleResponse DTOs
func SchedulesToResponses(schedules []entity.DentistSchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		resp := ScheduleToResponse(&schedule)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
