package shopping

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

func listResource(kind access.Kind, tripID string) access.Resource {
	return access.Resource{Kind: kind, TripID: tripID}
}

// CreateList returns the trip's shopping list, creating it when missing.
// Only the trip owner may call it.
func (s *Service) CreateList(ctx context.Context, actorID, tripID string) (*List, bool, error) {
	if err := s.authz.CanCreate(ctx, actorID, listResource(access.KindShoppingList, tripID)); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByTrip(ctx, tripID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrListNotFound) {
		return nil, false, err
	}

	list := List{ID: uuid.NewString(), TripID: tripID}
	if err := s.repo.CreateList(ctx, &list); err != nil {
		if errors.Is(err, ErrListExists) {
			existing, err := s.repo.FindByTrip(ctx, tripID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &list, true, nil
}

func (s *Service) GetList(ctx context.Context, actorID, listID string) (*ListWithItems, error) {
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, actorID, list)
}

func (s *Service) GetListForTrip(ctx context.Context, actorID, tripID string) (*ListWithItems, error) {
	if err := s.authz.CanView(ctx, actorID, listResource(access.KindShoppingList, tripID)); err != nil {
		return nil, err
	}
	list, err := s.repo.FindByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, actorID, list)
}

func (s *Service) withItems(ctx context.Context, actorID string, list *List) (*ListWithItems, error) {
	if err := s.authz.CanView(ctx, actorID, listResource(access.KindShoppingList, list.TripID)); err != nil {
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
	if err := s.authz.CanDelete(ctx, actorID, listResource(access.KindShoppingList, list.TripID)); err != nil {
		return err
	}
	return s.repo.DeleteList(ctx, list.ID)
}

func (s *Service) AddItem(ctx context.Context, actorID, listID string, input ItemInput) (*Item, error) {
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanCreate(ctx, actorID, listResource(access.KindShoppingItem, list.TripID)); err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	name, quantity, err := normalizeItem(input.Name, quantity)
	if err != nil {
		return nil, err
	}

	addedBy := actorID
	item := Item{ID: uuid.NewString(), ListID: list.ID, ItemName: name, ItemQuantity: quantity, AddedBy: &addedBy}
	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateItem(ctx context.Context, actorID string, input UpdateItemInput) (*Item, error) {
	if input.Name == nil && input.Quantity == nil {
		return nil, ErrNoFieldsToUpdate
	}
	item, err := s.authorizedItem(ctx, actorID, access.ActionEdit, input.ID)
	if err != nil {
		return nil, err
	}

	name, quantity := item.ItemName, item.ItemQuantity
	if input.Name != nil {
		name = *input.Name
	}
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	item.ItemName, item.ItemQuantity, err = normalizeItem(name, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, actorID, itemID string) error {
	item, err := s.authorizedItem(ctx, actorID, access.ActionDelete, itemID)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, item.ID)
}

// SetItemPurchased records the actor as purchaser, or clears the purchaser
// when purchased is false.
func (s *Service) SetItemPurchased(ctx context.Context, actorID, itemID string, purchased bool) (*Item, error) {
	item, err := s.authorizedItem(ctx, actorID, access.ActionEdit, itemID)
	if err != nil {
		return nil, err
	}

	item.IsPurchased = purchased
	item.PurchasedBy = nil
	if purchased {
		purchasedBy := actorID
		item.PurchasedBy = &purchasedBy
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) authorizedItem(ctx context.Context, actorID string, action access.Action, itemID string) (*Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.GetList(ctx, item.ListID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Check(ctx, actorID, action, listResource(access.KindShoppingItem, list.TripID)); err != nil {
		return nil, err
	}
	return item, nil
}
