package converter

import (
	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:         patient.ID,
		FullName:   patient.FullName,
		Email:      patient.Email,
		Phone:      patient.Phone,
		Registered: patient.IsRegistered(),
		CreatedAt:  patient.CreatedAt,
		UpdatedAt:  patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
