package trips

import "trip-planner-go/internal/domain/apperr"

var (
	ErrTripNotFound        = apperr.NotFound("trip_not_found", "trip not found")
	ErrMemberNotFound      = apperr.NotFound("member_not_found", "member not found")
	ErrTitleRequired       = apperr.Validation("title_required", "title is required")
	ErrTitleTooLong        = apperr.Validation("title_too_long", "title must be at most 100 characters")
	ErrDestinationRequired = apperr.Validation("destination_required", "destination is required")
	ErrDestinationTooLong  = apperr.Validation("destination_too_long", "destination must be at most 100 characters")
	ErrDatesRequired       = apperr.Validation("dates_required", "start date and end date are required")
	ErrInvalidDateRange    = apperr.Validation("invalid_date_range", "start date must not be after end date")
	ErrNoFieldsToUpdate    = apperr.Validation("no_fields", "no fields to update")
)
