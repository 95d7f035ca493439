package shopping

import "context"

type Repository interface {
	// CreateList returns ErrListExists when the trip already has a list.
	CreateList(ctx context.Context, list *List) error
	GetList(ctx context.Context, listID string) (*List, error)
	FindByTrip(ctx context.Context, tripID string) (*List, error)
	DeleteList(ctx context.Context, listID string) error

	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, itemID string) (*Item, error)
	// ListItems orders unpurchased items first, then newest.
	ListItems(ctx context.Context, listID string) ([]Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, itemID string) error
}
