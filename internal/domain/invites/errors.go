package invites

import "trip-planner-go/internal/domain/apperr"

var (
	ErrInviteNotFound  = apperr.NotFound("invite_not_found", "invite not found")
	ErrInviteeNotFound = apperr.NotFound("invitee_not_found", "invited user not found")
	ErrNotInvitee      = apperr.Permission("not_invitee", "this invitation is not addressed to you")
	ErrNotPending      = apperr.InvalidState("invite_not_pending", "invitation has already been resolved")
	ErrInviteExpired   = apperr.Expired("invite_expired", "invitation has expired")
	ErrInviteExists    = apperr.Validation("invite_exists", "user has already been invited to this trip")
	ErrAlreadyMember   = apperr.Validation("already_member", "user is already a member of this trip")
	ErrInviteeRequired = apperr.Validation("invitee_required", "invited user is required")
	ErrExpiryInPast    = apperr.Validation("expiry_in_past", "expiry must be in the future")
)
