package user

import "trip-planner-go/internal/domain/apperr"

var (
	ErrUserIDRequired = apperr.Validation("user_id_required", "user id is required")
	ErrUserNotFound   = apperr.NotFound("user_not_found", "user not found")
)
