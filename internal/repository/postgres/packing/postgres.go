package packing

import (
	"context"
	"errors"

	"gorm.io/gorm"

	packingdomain "trip-planner-go/internal/domain/packing"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(packingdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// CreateList runs in a nested transaction so a unique violation only rolls
// back to the savepoint and the caller's transaction stays usable.
func (r *PostgresRepository) CreateList(ctx context.Context, list *packingdomain.List) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(list).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if list.Private() {
			return packingdomain.ErrPrivateListExists
		}
		return packingdomain.ErrSharedListExists
	}
	return err
}

func (r *PostgresRepository) GetList(ctx context.Context, listID string) (*packingdomain.List, error) {
	return r.firstList(r.db.WithContext(ctx).Where("id = ?", listID))
}

func (r *PostgresRepository) FindPrivateList(ctx context.Context, tripID, userID string) (*packingdomain.List, error) {
	return r.firstList(r.db.WithContext(ctx).
		Where("trip_id = ? AND list_type = ? AND user_id = ?", tripID, packingdomain.ListPrivate, userID))
}

func (r *PostgresRepository) FindSharedList(ctx context.Context, tripID string) (*packingdomain.List, error) {
	return r.firstList(r.db.WithContext(ctx).
		Where("trip_id = ? AND list_type = ?", tripID, packingdomain.ListShared))
}

func (r *PostgresRepository) firstList(query *gorm.DB) (*packingdomain.List, error) {
	var list packingdomain.List
	if err := query.First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, packingdomain.ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r *PostgresRepository) ListVisible(ctx context.Context, tripID, userID string) ([]packingdomain.List, error) {
	var lists []packingdomain.List
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Where("list_type = ? OR (list_type = ? AND user_id = ?)", packingdomain.ListShared, packingdomain.ListPrivate, userID).
		Order("list_type asc, created_at desc").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *PostgresRepository) DeleteList(ctx context.Context, listID string) error {
	return deleteByID(ctx, r.db, &packingdomain.List{}, listID, packingdomain.ErrListNotFound)
}

func (r *PostgresRepository) CreateItems(ctx context.Context, items []packingdomain.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *PostgresRepository) GetItem(ctx context.Context, itemID string) (*packingdomain.Item, error) {
	var item packingdomain.Item
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, packingdomain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) ListItems(ctx context.Context, listID string) ([]packingdomain.Item, error) {
	var items []packingdomain.Item
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("is_packed desc, created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *packingdomain.Item) error {
	result := r.db.WithContext(ctx).
		Model(&packingdomain.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"item_name":     item.ItemName,
			"item_quantity": item.ItemQuantity,
			"is_packed":     item.IsPacked,
			"packed_by":     item.PackedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return packingdomain.ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, itemID string) error {
	return deleteByID(ctx, r.db, &packingdomain.Item{}, itemID, packingdomain.ErrItemNotFound)
}

func (r *PostgresRepository) CreateTemplate(ctx context.Context, template *packingdomain.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *PostgresRepository) GetTemplate(ctx context.Context, templateID string) (*packingdomain.Template, error) {
	var template packingdomain.Template
	if err := r.db.WithContext(ctx).Where("id = ?", templateID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, packingdomain.ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *PostgresRepository) ListTemplates(ctx context.Context, userID string) ([]packingdomain.Template, error) {
	var templates []packingdomain.Template
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *PostgresRepository) UpdateTemplate(ctx context.Context, template *packingdomain.Template) error {
	result := r.db.WithContext(ctx).
		Model(&packingdomain.Template{}).
		Where("id = ?", template.ID).
		Update("name", template.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return packingdomain.ErrTemplateNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTemplate(ctx context.Context, templateID string) error {
	return deleteByID(ctx, r.db, &packingdomain.Template{}, templateID, packingdomain.ErrTemplateNotFound)
}

func (r *PostgresRepository) CreateTemplateItems(ctx context.Context, items []packingdomain.TemplateItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *PostgresRepository) GetTemplateItem(ctx context.Context, itemID string) (*packingdomain.TemplateItem, error) {
	var item packingdomain.TemplateItem
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, packingdomain.ErrTemplateItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) ListTemplateItems(ctx context.Context, templateID string) ([]packingdomain.TemplateItem, error) {
	var items []packingdomain.TemplateItem
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) UpdateTemplateItem(ctx context.Context, item *packingdomain.TemplateItem) error {
	result := r.db.WithContext(ctx).
		Model(&packingdomain.TemplateItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":     item.Name,
			"quantity": item.Quantity,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return packingdomain.ErrTemplateItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTemplateItem(ctx context.Context, itemID string) error {
	return deleteByID(ctx, r.db, &packingdomain.TemplateItem{}, itemID, packingdomain.ErrTemplateItemNotFound)
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id string, notFound error) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
