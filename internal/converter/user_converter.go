package converter

import (
	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"
)

// roleName maps a role ID to its boundary string.
func roleName(roleID int) string {
	switch roleID {
	case entity.RoleIDAdmin:
		return entity.RoleAdmin
	case entity.RoleIDReceptionist:
		return entity.RoleReceptionist
	case entity.RoleIDDentist:
		return entity.RoleDentist
	case entity.RoleIDPatient:
		return entity.RolePatient
	}
	return ""
}

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      roleName(user.RoleID),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DentistProfile != nil {
		response.DentistProfile = DentistProfileToResponse(user.DentistProfile)
	}
	if user.Patient != nil {
		response.Patient = PatientToResponse(user.Patient)
	}

	return response
}
