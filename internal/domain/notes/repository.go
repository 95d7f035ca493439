package notes

import "context"

type Repository interface {
	Create(ctx context.Context, note *Note) error
	Get(ctx context.Context, noteID string) (*Note, error)
	// ListVisible returns the trip's shared notes plus userID's private ones,
	// newest first.
	ListVisible(ctx context.Context, tripID, userID string) ([]Note, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, noteID string) error
}
