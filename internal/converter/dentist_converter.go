package converter

import (
	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"

	"github.com/google/uuid"
)

// DentistProfileToResponse converts a DentistProfile entity to DentistProfileResponse DTO
func DentistProfileToResponse(profile *entity.DentistProfile) *dto.DentistProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DentistProfileResponse{
		UserID:         profile.UserID,
		LicenseNumber:  profile.LicenseNumber,
		Specialization: profile.Specialization,
		Biography:      profile.Biography,
	}

	if profile.User.ID != uuid.Nil {
		response.FullName = profile.User.FullName
		response.CreatedAt = profile.User.CreatedAt
		response.UpdatedAt = profile.User.UpdatedAt
	}

	return response
}

// DentistProfilesToResponses converts a slice of DentistProfile entities to slice of DentistProfileResponse DTOs
func DentistProfilesToResponses(profiles []entity.DentistProfile) []dto.DentistProfileResponse {
	responses := make([]dto.DentistProfileResponse, len(profiles))
	for i, profile := range profiles {
		resp := DentistProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
