package trips

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"trip-planner-go/internal/domain/access"
)

type Service struct {
	repo  Repository
	authz *access.Authorizer
}

func NewService(repo Repository, authz *access.Authorizer) *Service {
	return &Service{repo: repo, authz: authz}
}

func (s *Service) CreateTrip(ctx context.Context, actorID string, input CreateTripInput) (*Trip, error) {
	trip := Trip{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Destination: input.Destination,
		StartDate:   dateOnly(input.StartDate),
		EndDate:     dateOnly(input.EndDate),
		OwnerID:     actorID,
	}
	if err := trip.Validate(); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateTrip(ctx, &trip); err != nil {
			return err
		}

		member := Member{TripID: trip.ID, UserID: actorID}
		NormalizeMemberRole(&trip, &member)
		_, err := tx.EnsureMember(ctx, &member)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.authz.Invalidate(ctx, trip.ID, actorID)
	return &trip, nil
}

func (s *Service) GetTrip(ctx context.Context, actorID, tripID string) (*Trip, error) {
	if err := s.authz.CanView(ctx, actorID, access.Resource{Kind: access.KindTrip, TripID: tripID}); err != nil {
		return nil, err
	}
	return s.repo.GetTrip(ctx, tripID)
}

// ListTrips returns the trips actorID owns or is a member of, newest first.
func (s *Service) ListTrips(ctx context.Context, actorID string, filter ListFilter) ([]Trip, int64, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.ListTripsForUser(ctx, actorID, filter)
}

func (s *Service) UpdateTrip(ctx context.Context, actorID string, input UpdateTripInput) (*Trip, error) {
	if input.Title == nil && input.Destination == nil && input.StartDate == nil && input.EndDate == nil {
		return nil, ErrNoFieldsToUpdate
	}
	if err := s.authz.CanEdit(ctx, actorID, access.Resource{Kind: access.KindTrip, TripID: input.ID}); err != nil {
		return nil, err
	}

	trip, err := s.repo.GetTrip(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		trip.Title = *input.Title
	}
	if input.Destination != nil {
		trip.Destination = *input.Destination
	}
	if input.StartDate != nil {
		trip.StartDate = dateOnly(*input.StartDate)
	}
	if input.EndDate != nil {
		trip.EndDate = dateOnly(*input.EndDate)
	}
	if err := trip.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// DeleteTrip removes the trip; members, invites and every per-trip record
// go with it through ON DELETE CASCADE.
func (s *Service) DeleteTrip(ctx context.Context, actorID, tripID string) error {
	if err := s.authz.CanDelete(ctx, actorID, access.Resource{Kind: access.KindTrip, TripID: tripID}); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteTrip(ctx, tripID)
	if err != nil {
		return err
	}
	s.authz.InvalidateTrip(ctx, tripID)
	if !deleted {
		return ErrTripNotFound
	}
	return nil
}

// AddMember get-or-creates the membership row for userID. The role is
// derived from the trip, never taken from the caller.
func (s *Service) AddMember(ctx context.Context, tripID, userID string) (*Member, bool, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, false, err
	}

	member := Member{TripID: trip.ID, UserID: userID}
	NormalizeMemberRole(trip, &member)
	created, err := s.repo.EnsureMember(ctx, &member)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.authz.Invalidate(ctx, tripID, userID)
	}
	return &member, created, nil
}

func (s *Service) ListMembers(ctx context.Context, actorID, tripID string) ([]MemberProfile, error) {
	if err := s.authz.CanView(ctx, actorID, access.Resource{Kind: access.KindMembers, TripID: tripID}); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, tripID)
}
