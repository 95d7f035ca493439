// Package access decides who may do what with trip-scoped resources.
//
// Two relations are derived from storage for a (trip, user) pair: owner (the
// trip's owner field) and participant (a trip_members row exists). They are
// not exclusive: the owner also has a member row. Every feature module asks
// the Authorizer instead of repeating its own owner/participant checks.
package access

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"trip-planner-go/internal/domain/apperr"
)

type Kind string

const (
	KindTrip         Kind = "trip"
	KindMembers      Kind = "members"
	KindInvite       Kind = "invite"
	KindNote         Kind = "note"
	KindPackingList  Kind = "packing_list"
	KindPackingItem  Kind = "packing_item"
	KindShoppingList Kind = "shopping_list"
	KindShoppingItem Kind = "shopping_item"
)

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Resource describes the thing being acted on. CreatorID is the user a
// private record belongs to; it is ignored for shared records.
type Resource struct {
	Kind      Kind
	TripID    string
	CreatorID string
	Private   bool
}

type Relation struct {
	Owner       bool
	Participant bool
}

func (r Relation) CanAccessTrip() bool {
	return r.Owner || r.Participant
}

type Store interface {
	TripOwnerID(ctx context.Context, tripID string) (string, error)
	IsMember(ctx context.Context, tripID, userID string) (bool, error)
}

var (
	ErrNotParticipant = apperr.Permission("not_participant", "you are not a member of this trip")
	ErrNotOwner       = apperr.Permission("not_owner", "only the trip owner can do this")
	ErrNotCreator     = apperr.Permission("not_creator", "only the creator can do this")
	ErrNotAllowed     = apperr.Permission("not_allowed", "operation not allowed")
)

type Authorizer struct {
	store Store
	cache Cache
	ttl   time.Duration
	group singleflight.Group
	// epoch advances on every invalidation. A lookup that started under an
	// older epoch must not write its result to the cache.
	epoch atomic.Uint64
}

func NewAuthorizer(store Store, cache Cache, ttl time.Duration) *Authorizer {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Authorizer{store: store, cache: cache, ttl: ttl}
}

func (a *Authorizer) Relation(ctx context.Context, tripID, userID string) (Relation, error) {
	if rel, ok := a.cache.Get(ctx, tripID, userID); ok {
		return rel, nil
	}

	value, err, _ := a.group.Do(flightKey(tripID, userID), func() (interface{}, error) {
		epoch := a.epoch.Load()
		ownerID, err := a.store.TripOwnerID(ctx, tripID)
		if err != nil {
			return Relation{}, err
		}
		member, err := a.store.IsMember(ctx, tripID, userID)
		if err != nil {
			return Relation{}, err
		}
		rel := Relation{Owner: ownerID == userID, Participant: member}
		// Only grants are cached.
		if rel.CanAccessTrip() && a.epoch.Load() == epoch {
			a.cache.Set(ctx, tripID, userID, rel, a.ttl)
		}
		return rel, nil
	})
	if err != nil {
		return Relation{}, err
	}
	return value.(Relation), nil
}

func (a *Authorizer) IsOwner(ctx context.Context, tripID, userID string) (bool, error) {
	rel, err := a.Relation(ctx, tripID, userID)
	if err != nil {
		return false, err
	}
	return rel.Owner, nil
}

func (a *Authorizer) IsParticipant(ctx context.Context, tripID, userID string) (bool, error) {
	rel, err := a.Relation(ctx, tripID, userID)
	if err != nil {
		return false, err
	}
	return rel.Participant, nil
}

func (a *Authorizer) CanView(ctx context.Context, actorID string, res Resource) error {
	return a.Check(ctx, actorID, ActionView, res)
}

func (a *Authorizer) CanCreate(ctx context.Context, actorID string, res Resource) error {
	return a.Check(ctx, actorID, ActionCreate, res)
}

func (a *Authorizer) CanEdit(ctx context.Context, actorID string, res Resource) error {
	return a.Check(ctx, actorID, ActionEdit, res)
}

func (a *Authorizer) CanDelete(ctx context.Context, actorID string, res Resource) error {
	return a.Check(ctx, actorID, ActionDelete, res)
}

// Check returns nil when actorID may perform action on res, a permission
// error when not, and the store's error when the trip cannot be loaded.
func (a *Authorizer) Check(ctx context.Context, actorID string, action Action, res Resource) error {
	req := requirementFor(res.Kind, action, res.Private)
	switch req {
	case requireCreator:
		if actorID != "" && res.CreatorID == actorID {
			return nil
		}
		return ErrNotCreator
	case requireDenied:
		return ErrNotAllowed
	}

	rel, err := a.Relation(ctx, res.TripID, actorID)
	if err != nil {
		return err
	}
	switch req {
	case requireOwner:
		if rel.Owner {
			return nil
		}
		return ErrNotOwner
	case requireParticipant:
		if rel.CanAccessTrip() {
			return nil
		}
		return ErrNotParticipant
	}
	return ErrNotAllowed
}

// Invalidate drops the cached relation for (tripID, userID). Lookups already
// in flight still return their result but no longer populate the cache.
func (a *Authorizer) Invalidate(ctx context.Context, tripID, userID string) {
	a.epoch.Add(1)
	a.group.Forget(flightKey(tripID, userID))
	a.cache.Delete(ctx, tripID, userID)
}

func (a *Authorizer) InvalidateTrip(ctx context.Context, tripID string) {
	a.epoch.Add(1)
	a.cache.DeleteTrip(ctx, tripID)
}

func flightKey(tripID, userID string) string {
	return tripID + "|" + userID
}
