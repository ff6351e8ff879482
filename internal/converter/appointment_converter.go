package converter

import (
	"time"

	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                           appointment.ID,
		PatientID:                    appointment.PatientID,
		DentistID:                    appointment.DentistID,
		AppointmentDate:              appointment.AppointmentDate.Format("2006-01-02"),
		AppointmentTime:              appointment.AppointmentTime,
		Shift:                        string(appointment.Shift),
		Status:                       string(appointment.Status),
		AppointmentType:              appointment.AppointmentType,
		IsNewPatient:                 appointment.IsNewPatient,
		RescheduledFromAppointmentID: appointment.RescheduledFromAppointmentID,
		Content:                      appointment.Content,
		CancelReason:                 appointment.CancelReason,
		CreatedAt:                    appointment.CreatedAt,
		UpdatedAt:                    appointment.UpdatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Dentist.UserID != uuid.Nil {
		response.Dentist = DentistProfileToResponse(&appointment.Dentist)
	}

	return response
}

// AppointmentToResponseWithRemaining adds the human-readable cancellation
// window text for confirmed appointments.
func AppointmentToResponseWithRemaining(appointment *entity.Appointment, now time.Time, loc *time.Location) *dto.AppointmentResponse {
	response := AppointmentToResponse(appointment)
	if response != nil && appointment.IsConfirmed() {
		response.CancellationRemaining = appointment.RemainingTimeText(now, loc)
	}
	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
