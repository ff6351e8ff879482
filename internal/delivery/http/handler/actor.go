package handler

import (
	"context"

	"denticare-server/internal/delivery/http/middleware"
	"denticare-server/internal/usecase"
)

// actorFromContext builds the caller identity from the values the auth
// middleware stashed in the request context.
func actorFromContext(ctx context.Context) (usecase.Actor, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return usecase.Actor{}, false
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{UserID: userID, RoleID: roleID}, true
}
