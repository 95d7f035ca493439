package invites

import (
	"context"
	"time"

	"trip-planner-go/internal/domain/trips"
)

// Repository persists invites. Every state change is a conditional update on
// status = 'pending'; the bool results report whether this call made the
// change.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// Create returns ErrInviteExists when (trip, user) already has an invite.
	Create(ctx context.Context, invite *Invite) error
	Get(ctx context.Context, inviteID string) (*Invite, error)

	// Resolve moves a pending, unexpired invite to status.
	Resolve(ctx context.Context, inviteID string, status Status, now time.Time) (bool, error)
	// MarkExpired moves a pending invite whose expiry is before now to expired.
	MarkExpired(ctx context.Context, inviteID string, now time.Time) (bool, error)
	ExpireOverdueForUser(ctx context.Context, userID string, now time.Time) (int64, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	DeletePending(ctx context.Context, inviteID string) (bool, error)

	ListPendingForUser(ctx context.Context, userID string) ([]Details, error)
	ListSentBy(ctx context.Context, ownerID string) ([]Details, error)
	ListForTrip(ctx context.Context, tripID string) ([]Details, error)

	EnsureMember(ctx context.Context, member *trips.Member) (bool, error)
}

// TripReader is the slice of the membership store invites read outside a
// transaction.
type TripReader interface {
	GetTrip(ctx context.Context, tripID string) (*trips.Trip, error)
	IsMember(ctx context.Context, tripID, userID string) (bool, error)
}

type UserChecker interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	UserIDByEmail(ctx context.Context, email string) (string, bool, error)
}
