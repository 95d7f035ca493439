package shopping

import "trip-planner-go/internal/domain/apperr"

var (
	ErrListNotFound     = apperr.NotFound("shopping_list_not_found", "shopping list not found")
	ErrItemNotFound     = apperr.NotFound("shopping_item_not_found", "shopping item not found")
	ErrListExists       = apperr.Validation("shopping_list_exists", "shopping list already exists for this trip")
	ErrItemNameRequired = apperr.Validation("item_name_required", "item name is required")
	ErrItemNameTooLong  = apperr.Validation("item_name_too_long", "item name must be at most 100 characters")
	ErrInvalidQuantity  = apperr.Validation("invalid_quantity", "quantity must be at least 1")
	ErrNoFieldsToUpdate = apperr.Validation("no_fields", "no fields to update")
)
