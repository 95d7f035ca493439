package packing

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// CreateList returns ErrSharedListExists or ErrPrivateListExists when the
	// trip already has the list.
	CreateList(ctx context.Context, list *List) error
	GetList(ctx context.Context, listID string) (*List, error)
	FindPrivateList(ctx context.Context, tripID, userID string) (*List, error)
	FindSharedList(ctx context.Context, tripID string) (*List, error)
	// ListVisible returns the trip's shared list and userID's private list.
	ListVisible(ctx context.Context, tripID, userID string) ([]List, error)
	DeleteList(ctx context.Context, listID string) error

	CreateItems(ctx context.Context, items []Item) error
	GetItem(ctx context.Context, itemID string) (*Item, error)
	// ListItems orders packed items first, then newest.
	ListItems(ctx context.Context, listID string) ([]Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, itemID string) error

	CreateTemplate(ctx context.Context, template *Template) error
	GetTemplate(ctx context.Context, templateID string) (*Template, error)
	ListTemplates(ctx context.Context, userID string) ([]Template, error)
	UpdateTemplate(ctx context.Context, template *Template) error
	DeleteTemplate(ctx context.Context, templateID string) error

	CreateTemplateItems(ctx context.Context, items []TemplateItem) error
	GetTemplateItem(ctx context.Context, itemID string) (*TemplateItem, error)
	ListTemplateItems(ctx context.Context, templateID string) ([]TemplateItem, error)
	UpdateTemplateItem(ctx context.Context, item *TemplateItem) error
	DeleteTemplateItem(ctx context.Context, itemID string) error
}
