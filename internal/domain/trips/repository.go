package trips

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetTrip(ctx context.Context, tripID string) (*Trip, error)
	ListTripsForUser(ctx context.Context, userID string, filter ListFilter) ([]Trip, int64, error)
	CreateTrip(ctx context.Context, trip *Trip) error
	UpdateTrip(ctx context.Context, trip *Trip) error
	DeleteTrip(ctx context.Context, tripID string) (bool, error)
	GetMember(ctx context.Context, tripID, userID string) (*Member, error)
	ListMembers(ctx context.Context, tripID string) ([]MemberProfile, error)
	// EnsureMember inserts the row unless (trip, user) already exists. On
	// conflict member is overwritten with the stored row and created is false.
	EnsureMember(ctx context.Context, member *Member) (created bool, err error)
	TripOwnerID(ctx context.Context, tripID string) (string, error)
	IsMember(ctx context.Context, tripID, userID string) (bool, error)
}
