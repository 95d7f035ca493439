package packing

import "trip-planner-go/internal/domain/apperr"

var (
	ErrListNotFound         = apperr.NotFound("packing_list_not_found", "packing list not found")
	ErrItemNotFound         = apperr.NotFound("packing_item_not_found", "packing item not found")
	ErrTemplateNotFound     = apperr.NotFound("template_not_found", "template not found")
	ErrTemplateItemNotFound = apperr.NotFound("template_item_not_found", "template item not found")

	ErrSharedListExists  = apperr.Validation("shared_list_exists", "this trip already has a shared packing list")
	ErrPrivateListExists = apperr.Validation("private_list_exists", "you already have a packing list for this trip")

	ErrItemNameRequired     = apperr.Validation("item_name_required", "item name is required")
	ErrItemNameTooLong      = apperr.Validation("item_name_too_long", "item name must be at most 100 characters")
	ErrInvalidQuantity      = apperr.Validation("invalid_quantity", "quantity must be at least 1")
	ErrTemplateNameRequired = apperr.Validation("template_name_required", "template name is required")
	ErrTemplateNameTooLong  = apperr.Validation("template_name_too_long", "template name must be at most 100 characters")
	ErrNoFieldsToUpdate     = apperr.Validation("no_fields", "no fields to update")

	ErrNotTemplateOwner = apperr.Permission("not_template_owner", "this template belongs to another user")
	ErrSharedToTemplate = apperr.Permission("shared_list_template", "only your private packing list can be saved as a template")
)
