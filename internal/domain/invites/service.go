// Package invites implements the trip invitation lifecycle.
//
// An invite starts pending and ends accepted, declined or expired; a pending
// invite can also be cancelled, which deletes it. Expiry is checked lazily
// whenever an invite is read or answered, and a Sweeper can expire overdue
// rows in bulk. All transitions are conditional updates, so concurrent
// callers converge on a single terminal state.
package invites

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-planner-go/internal/domain/access"
	"trip-planner-go/internal/domain/trips"
)

type Event string

const (
	EventCreated   Event = "created"
	EventAccepted  Event = "accepted"
	EventDeclined  Event = "declined"
	EventExpired   Event = "expired"
	EventCancelled Event = "cancelled"
)

// Observer receives lifecycle counts. Implementations must be safe for
// concurrent use.
type Observer interface {
	Transition(event Event, count int64)
}

type nopObserver struct{}

func (nopObserver) Transition(Event, int64) {}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaultTTL sets the expiry applied when Create is given none. Zero
// means such invites never expire.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.defaultTTL = ttl
	}
}

func WithObserver(observer Observer) Option {
	return func(s *Service) {
		if observer != nil {
			s.observer = observer
		}
	}
}

type Service struct {
	repo       Repository
	trips      TripReader
	users      UserChecker
	authz      *access.Authorizer
	defaultTTL time.Duration
	now        func() time.Time
	observer   Observer
}

func NewService(repo Repository, tripReader TripReader, users UserChecker, authz *access.Authorizer, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		trips:    tripReader,
		users:    users,
		authz:    authz,
		now:      func() time.Time { return time.Now().UTC() },
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, actorID, tripID string, input CreateInviteInput) (*Invite, error) {
	if err := s.authz.CanCreate(ctx, actorID, access.Resource{Kind: access.KindInvite, TripID: tripID}); err != nil {
		return nil, err
	}

	inviteeID, err := s.resolveInvitee(ctx, input)
	if err != nil {
		return nil, err
	}

	member, err := s.trips.IsMember(ctx, tripID, inviteeID)
	if err != nil {
		return nil, err
	}
	if member || inviteeID == actorID {
		return nil, ErrAlreadyMember
	}

	now := s.now()
	expiresAt := input.ExpiresAt
	if expiresAt != nil {
		if !expiresAt.After(now) {
			return nil, ErrExpiryInPast
		}
		utc := expiresAt.UTC()
		expiresAt = &utc
	} else if s.defaultTTL > 0 {
		deadline := now.Add(s.defaultTTL)
		expiresAt = &deadline
	}

	invite := Invite{
		ID:        uuid.NewString(),
		TripID:    tripID,
		UserID:    inviteeID,
		InvitedBy: actorID,
		Status:    StatusPending,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := s.repo.Create(ctx, &invite); err != nil {
		return nil, err
	}
	s.observer.Transition(EventCreated, 1)
	return &invite, nil
}

// resolveInvitee must only run after the owner check.
func (s *Service) resolveInvitee(ctx context.Context, input CreateInviteInput) (string, error) {
	if userID := strings.TrimSpace(input.UserID); userID != "" {
		exists, err := s.users.UserExists(ctx, userID)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", ErrInviteeNotFound
		}
		return userID, nil
	}

	if strings.TrimSpace(input.Email) == "" {
		return "", ErrInviteeRequired
	}
	userID, ok, err := s.users.UserIDByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInviteeNotFound
	}
	return userID, nil
}

// Get returns the invite to its invitee or to the trip owner.
func (s *Service) Get(ctx context.Context, actorID, inviteID string) (*Invite, error) {
	invite, err := s.repo.Get(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if invite.UserID != actorID {
		if err := s.authz.CanView(ctx, actorID, access.Resource{Kind: access.KindInvite, TripID: invite.TripID}); err != nil {
			return nil, err
		}
	}
	if invite.IsExpired(s.now()) {
		if _, err := s.MarkExpired(ctx, invite.ID); err != nil {
			return nil, err
		}
		return s.repo.Get(ctx, inviteID)
	}
	return invite, nil
}

// Accept resolves the invite and makes the invitee a member in one
// transaction. An overdue invite is persisted as expired and ErrInviteExpired
// is returned.
func (s *Service) Accept(ctx context.Context, actorID, inviteID string) (*Invite, error) {
	invite, err := s.repo.Get(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if err := invite.checkRespond(actorID); err != nil {
		return nil, err
	}

	now := s.now()
	if invite.IsExpired(now) {
		return nil, s.expire(ctx, invite.ID, now)
	}

	trip, err := s.trips.GetTrip(ctx, invite.TripID)
	if err != nil {
		return nil, err
	}

	lost := false
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		ok, err := tx.Resolve(ctx, invite.ID, StatusAccepted, now)
		if err != nil {
			return err
		}
		if !ok {
			lost = true
			return nil
		}

		member := trips.Member{TripID: invite.TripID, UserID: invite.UserID}
		trips.NormalizeMemberRole(trip, &member)
		_, err = tx.EnsureMember(ctx, &member)
		return err
	})
	if err != nil {
		return nil, err
	}
	if lost {
		return nil, s.resolveLostRace(ctx, invite.ID, now)
	}

	s.authz.Invalidate(ctx, invite.TripID, invite.UserID)
	s.observer.Transition(EventAccepted, 1)

	invite.Status = StatusAccepted
	invite.RespondedAt = &now
	return invite, nil
}

// Decline resolves the invite without any membership change. Like Accept it
// persists and reports expiry first.
func (s *Service) Decline(ctx context.Context, actorID, inviteID string) (*Invite, error) {
	invite, err := s.repo.Get(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if err := invite.checkRespond(actorID); err != nil {
		return nil, err
	}

	now := s.now()
	if invite.IsExpired(now) {
		return nil, s.expire(ctx, invite.ID, now)
	}

	ok, err := s.repo.Resolve(ctx, invite.ID, StatusDeclined, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.resolveLostRace(ctx, invite.ID, now)
	}
	s.observer.Transition(EventDeclined, 1)

	invite.Status = StatusDeclined
	invite.RespondedAt = &now
	return invite, nil
}

// MarkExpired expires the invite if it is pending and overdue. It returns
// true only when this call made the change; repeated or concurrent calls
// are safe.
func (s *Service) MarkExpired(ctx context.Context, inviteID string) (bool, error) {
	invite, err := s.repo.Get(ctx, inviteID)
	if err != nil {
		return false, err
	}
	now := s.now()
	if !invite.IsExpired(now) {
		return false, nil
	}
	ok, err := s.repo.MarkExpired(ctx, invite.ID, now)
	if err != nil {
		return false, err
	}
	if ok {
		s.observer.Transition(EventExpired, 1)
	}
	return ok, nil
}

// Cancel deletes a pending invite. Only the trip owner may cancel, and
// resolved invites cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, actorID, inviteID string) error {
	invite, err := s.repo.Get(ctx, inviteID)
	if err != nil {
		return err
	}
	if err := s.authz.CanDelete(ctx, actorID, access.Resource{Kind: access.KindInvite, TripID: invite.TripID}); err != nil {
		return err
	}
	if invite.Status != StatusPending {
		return ErrNotPending
	}

	ok, err := s.repo.DeletePending(ctx, invite.ID)
	if err != nil {
		return err
	}
	if !ok {
		current, err := s.repo.Get(ctx, invite.ID)
		if err != nil {
			return err
		}
		if current.Status == StatusExpired {
			return ErrInviteExpired
		}
		return ErrNotPending
	}
	s.observer.Transition(EventCancelled, 1)
	return nil
}

// ListPending expires the actor's overdue invites, then returns the ones
// still pending, newest first.
func (s *Service) ListPending(ctx context.Context, actorID string) ([]Details, error) {
	expired, err := s.repo.ExpireOverdueForUser(ctx, actorID, s.now())
	if err != nil {
		return nil, err
	}
	if expired > 0 {
		s.observer.Transition(EventExpired, expired)
	}
	return s.repo.ListPendingForUser(ctx, actorID)
}

// ListSent returns every invite on trips the actor owns, newest first.
func (s *Service) ListSent(ctx context.Context, actorID string) ([]Details, error) {
	return s.repo.ListSentBy(ctx, actorID)
}

func (s *Service) ListForTrip(ctx context.Context, actorID, tripID string) ([]Details, error) {
	if err := s.authz.CanView(ctx, actorID, access.Resource{Kind: access.KindInvite, TripID: tripID}); err != nil {
		return nil, err
	}
	return s.repo.ListForTrip(ctx, tripID)
}

// Sweep expires every overdue pending invite and returns how many changed.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	expired, err := s.repo.ExpireOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		s.observer.Transition(EventExpired, expired)
	}
	return expired, nil
}

func (s *Service) expire(ctx context.Context, inviteID string, now time.Time) error {
	ok, err := s.repo.MarkExpired(ctx, inviteID, now)
	if err != nil {
		return err
	}
	if !ok {
		current, err := s.repo.Get(ctx, inviteID)
		if err != nil {
			return err
		}
		if current.Status != StatusExpired {
			return ErrNotPending
		}
		return ErrInviteExpired
	}
	s.observer.Transition(EventExpired, 1)
	return ErrInviteExpired
}

// resolveLostRace explains a conditional update that matched no row by
// re-reading the invite.
func (s *Service) resolveLostRace(ctx context.Context, inviteID string, now time.Time) error {
	current, err := s.repo.Get(ctx, inviteID)
	if err != nil {
		return err
	}
	if current.IsExpired(now) {
		return s.expire(ctx, inviteID, now)
	}
	if current.Status == StatusExpired {
		return ErrInviteExpired
	}
	return ErrNotPending
}
