package usecase

import (
	"denticare-server/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor identifies who is invoking a use case. It is resolved once at the
// HTTP boundary from the authenticated request and passed explicitly; use
// cases never read identity or role from ambient request state.
type Actor struct {
	UserID uuid.UUID
	RoleID int
}

// IsStaff reports whether the actor acts on behalf of the clinic.
func (a Actor) IsStaff() bool {
	return entity.IsStaffRole(a.RoleID)
}

// IsPatient reports whether the actor is an authenticated patient.
func (a Actor) IsPatient() bool {
	return a.RoleID == entity.RoleIDPatient
}
