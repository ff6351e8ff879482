package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"denticare-server/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func requestWithRole(roleID int) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	ctx := context.WithValue(req.Context(), RoleIDKey, roleID)
	return req.WithContext(ctx)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireStaff_AllowsStaffRoles(t *testing.T) {
	for _, roleID := range []int{entity.RoleIDAdmin, entity.RoleIDReceptionist, entity.RoleIDDentist} {
		called := false
		rec := httptest.NewRecorder()

		RequireStaff(okHandler(&called)).ServeHTTP(rec, requestWithRole(roleID))

		assert.True(t, called, "role %d must pass the staff check", roleID)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequireStaff_RejectsPatient(t *testing.T) {
	called := false
	rec := httptest.NewRecorder()

	RequireStaff(okHandler(&called)).ServeHTTP(rec, requestWithRole(entity.RoleIDPatient))

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin_RejectsOtherStaff(t *testing.T) {
	called := false
	rec := httptest.NewRecorder()

	RequireAdmin(okHandler(&called)).ServeHTTP(rec, requestWithRole(entity.RoleIDReceptionist))

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_MissingRoleInContext(t *testing.T) {
	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)

	RequirePatient(okHandler(&called)).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
