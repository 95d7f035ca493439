package packing

import (
	"context"
	"errors"

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

// CreatePrivateList returns the actor's private list for the trip, creating
// it first if needed. created reports whether a new list was made.
func (s *Service) CreatePrivateList(ctx context.Context, actorID, tripID string) (*List, bool, error) {
	res := access.Resource{Kind: access.KindPackingList, TripID: tripID, CreatorID: actorID, Private: true}
	if err := s.authz.CanCreate(ctx, actorID, res); err != nil {
		return nil, false, err
	}
	return s.ensurePrivateList(ctx, s.repo, actorID, tripID)
}

func (s *Service) ensurePrivateList(ctx context.Context, repo Repository, actorID, tripID string) (*List, bool, error) {
	existing, err := repo.FindPrivateList(ctx, tripID, actorID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrListNotFound) {
		return nil, false, err
	}

	owner := actorID
	list := List{ID: uuid.NewString(), TripID: tripID, ListType: ListPrivate, UserID: &owner}
	if err := repo.CreateList(ctx, &list); err != nil {
		if errors.Is(err, ErrPrivateListExists) {
			existing, findErr := repo.FindPrivateList(ctx, tripID, actorID)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &list, true, nil
}

// CreateSharedList creates the trip's single shared list. Only the trip
// owner may do this.
func (s *Service) CreateSharedList(ctx context.Context, actorID, tripID string) (*List, error) {
	if err := s.authz.CanCreate(ctx, actorID, access.Resource{Kind: access.KindPackingList, TripID: tripID}); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindSharedList(ctx, tripID); err == nil {
		return nil, ErrSharedListExists
	} else if !errors.Is(err, ErrListNotFound) {
		return nil, err
	}

	list := List{ID: uuid.NewString(), TripID: tripID, ListType: ListShared}
	if err := s.repo.CreateList(ctx, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *Service) ListForTrip(ctx context.Context, actorID, tripID string) ([]List, error) {
	if err := s.authz.CanView(ctx, actorID, access.Resource{Kind: access.KindPackingList, TripID: tripID}); err != nil {
		return nil, err
	}
	return s.repo.ListVisible(ctx, tripID, actorID)
}

func (s *Service) GetList(ctx context.Context, actorID, listID string) (*ListWithItems, error) {
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanView(ctx, actorID, list.Resource(access.KindPackingList)); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	return &ListWithItems{List: *list, Items: items}, nil
}

func (s *Service) DeleteList(ctx context.Context, actorID, listID string) error {
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return err
	}
	if err := s.authz.CanDelete(ctx, actorID, list.Resource(access.KindPackingList)); err != nil {
		return err
	}
	return s.repo.DeleteList(ctx, list.ID)
}

func (s *Service) AddItem(ctx context.Context, actorID, listID string, input ItemInput) (*Item, error) {
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanCreate(ctx, actorID, list.Resource(access.KindPackingItem)); err != nil {
		return nil, err
	}

	name, quantity, err := normalizeItem(input.Name, input.Quantity)
	if err != nil {
		return nil, err
	}

	addedBy := actorID
	item := Item{ID: uuid.NewString(), ListID: list.ID, ItemName: name, ItemQuantity: quantity, AddedBy: &addedBy}
	if err := s.repo.CreateItems(ctx, []Item{item}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateItem(ctx context.Context, actorID string, input UpdateItemInput) (*Item, error) {
	if input.Name == nil && input.Quantity == nil {
		return nil, ErrNoFieldsToUpdate
	}

	item, list, err := s.loadItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanEdit(ctx, actorID, list.Resource(access.KindPackingItem)); err != nil {
		return nil, err
	}

	name, quantity := item.ItemName, item.ItemQuantity
	if input.Name != nil {
		name = *input.Name
	}
	if input.Quantity != nil {
		quantity = *input.Quantity
		if quantity == 0 {
			return nil, ErrInvalidQuantity
		}
	}
	name, quantity, err = normalizeItem(name, quantity)
	if err != nil {
		return nil, err
	}

	item.ItemName = name
	item.ItemQuantity = quantity
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, actorID, itemID string) error {
	item, list, err := s.loadItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.authz.CanDelete(ctx, actorID, list.Resource(access.KindPackingItem)); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, item.ID)
}

// SetItemPacked needs only view access to the list. packed_by is tracked on
// shared lists only.
func (s *Service) SetItemPacked(ctx context.Context, actorID, itemID string, packed bool) (*Item, error) {
	item, list, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanView(ctx, actorID, list.Resource(access.KindPackingList)); err != nil {
		return nil, err
	}

	item.IsPacked = packed
	item.PackedBy = nil
	if packed && !list.Private() {
		packedBy := actorID
		item.PackedBy = &packedBy
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) loadItem(ctx context.Context, itemID string) (*Item, *List, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	list, err := s.repo.GetList(ctx, item.ListID)
	if err != nil {
		return nil, nil, err
	}
	return item, list, nil
}
