package notes

import "trip-planner-go/internal/domain/apperr"

var (
	ErrNoteNotFound     = apperr.NotFound("note_not_found", "note not found")
	ErrTitleRequired    = apperr.Validation("title_required", "title is required")
	ErrTitleTooLong     = apperr.Validation("title_too_long", "title must be at most 200 characters")
	ErrContentRequired  = apperr.Validation("content_required", "content is required")
	ErrInvalidType      = apperr.Validation("invalid_note_type", "note type must be private or shared")
	ErrNoFieldsToUpdate = apperr.Validation("no_fields", "no fields to update")
)
