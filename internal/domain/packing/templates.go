package packing

import (
	"context"

	"github.com/google/uuid"

	"trip-planner-go/internal/domain/access"
)

// SaveAsTemplate copies the actor's private list into a new template.
func (s *Service) SaveAsTemplate(ctx context.Context, actorID, listID, name string) (*TemplateWithItems, error) {
	list, err := s.repo.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.Private() {
		return nil, ErrSharedToTemplate
	}
	if err := s.authz.CanEdit(ctx, actorID, list.Resource(access.KindPackingList)); err != nil {
		return nil, err
	}

	name, err = normalizeTemplateName(name)
	if err != nil {
		return nil, err
	}

	result := TemplateWithItems{Template: Template{ID: uuid.NewString(), UserID: actorID, Name: name}}
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		items, err := tx.ListItems(ctx, list.ID)
		if err != nil {
			return err
		}
		if err := tx.CreateTemplate(ctx, &result.Template); err != nil {
			return err
		}

		result.Items = make([]TemplateItem, 0, len(items))
		for _, item := range items {
			result.Items = append(result.Items, TemplateItem{
				ID:         uuid.NewString(),
				TemplateID: result.Template.ID,
				Name:       item.ItemName,
				Quantity:   item.ItemQuantity,
			})
		}
		return tx.CreateTemplateItems(ctx, result.Items)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ApplyTemplate copies the template's items into the actor's private list
// for tripID, creating that list when it does not exist yet.
func (s *Service) ApplyTemplate(ctx context.Context, actorID, templateID, tripID string) (*ListWithItems, error) {
	template, err := s.ownedTemplate(ctx, actorID, templateID)
	if err != nil {
		return nil, err
	}
	res := access.Resource{Kind: access.KindPackingList, TripID: tripID, CreatorID: actorID, Private: true}
	if err := s.authz.CanCreate(ctx, actorID, res); err != nil {
		return nil, err
	}

	var result ListWithItems
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		list, _, err := s.ensurePrivateList(ctx, tx, actorID, tripID)
		if err != nil {
			return err
		}

		templateItems, err := tx.ListTemplateItems(ctx, template.ID)
		if err != nil {
			return err
		}
		items := make([]Item, 0, len(templateItems))
		for _, templateItem := range templateItems {
			addedBy := actorID
			items = append(items, Item{
				ID:           uuid.NewString(),
				ListID:       list.ID,
				ItemName:     templateItem.Name,
				ItemQuantity: templateItem.Quantity,
				AddedBy:      &addedBy,
			})
		}
		if err := tx.CreateItems(ctx, items); err != nil {
			return err
		}

		all, err := tx.ListItems(ctx, list.ID)
		if err != nil {
			return err
		}
		result = ListWithItems{List: *list, Items: all}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) CreateTemplate(ctx context.Context, actorID, name string) (*Template, error) {
	name, err := normalizeTemplateName(name)
	if err != nil {
		return nil, err
	}
	template := Template{ID: uuid.NewString(), UserID: actorID, Name: name}
	if err := s.repo.CreateTemplate(ctx, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *Service) ListTemplates(ctx context.Context, actorID string) ([]Template, error) {
	return s.repo.ListTemplates(ctx, actorID)
}

func (s *Service) GetTemplate(ctx context.Context, actorID, templateID string) (*TemplateWithItems, error) {
	template, err := s.ownedTemplate(ctx, actorID, templateID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListTemplateItems(ctx, template.ID)
	if err != nil {
		return nil, err
	}
	return &TemplateWithItems{Template: *template, Items: items}, nil
}

func (s *Service) RenameTemplate(ctx context.Context, actorID, templateID, name string) (*Template, error) {
	template, err := s.ownedTemplate(ctx, actorID, templateID)
	if err != nil {
		return nil, err
	}
	template.Name, err = normalizeTemplateName(name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, actorID, templateID string) error {
	template, err := s.ownedTemplate(ctx, actorID, templateID)
	if err != nil {
		return err
	}
	return s.repo.DeleteTemplate(ctx, template.ID)
}

func (s *Service) AddTemplateItem(ctx context.Context, actorID, templateID string, input ItemInput) (*TemplateItem, error) {
	template, err := s.ownedTemplate(ctx, actorID, templateID)
	if err != nil {
		return nil, err
	}
	name, quantity, err := normalizeItem(input.Name, input.Quantity)
	if err != nil {
		return nil, err
	}

	item := TemplateItem{ID: uuid.NewString(), TemplateID: template.ID, Name: name, Quantity: quantity}
	if err := s.repo.CreateTemplateItems(ctx, []TemplateItem{item}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateTemplateItem(ctx context.Context, actorID string, input UpdateItemInput) (*TemplateItem, error) {
	if input.Name == nil && input.Quantity == nil {
		return nil, ErrNoFieldsToUpdate
	}

	item, err := s.repo.GetTemplateItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedTemplate(ctx, actorID, item.TemplateID); err != nil {
		return nil, err
	}

	name, quantity := item.Name, item.Quantity
	if input.Name != nil {
		name = *input.Name
	}
	if input.Quantity != nil {
		quantity = *input.Quantity
		if quantity == 0 {
			return nil, ErrInvalidQuantity
		}
	}
	item.Name, item.Quantity, err = normalizeItem(name, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTemplateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteTemplateItem(ctx context.Context, actorID, itemID string) error {
	item, err := s.repo.GetTemplateItem(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := s.ownedTemplate(ctx, actorID, item.TemplateID); err != nil {
		return err
	}
	return s.repo.DeleteTemplateItem(ctx, item.ID)
}

func (s *Service) ownedTemplate(ctx context.Context, actorID, templateID string) (*Template, error) {
	template, err := s.repo.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.UserID != actorID {
		return nil, ErrNotTemplateOwner
	}
	return template, nil
}
