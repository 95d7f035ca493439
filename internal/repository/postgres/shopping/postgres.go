package shopping

import (
	"context"
	"errors"

	"gorm.io/gorm"

	shoppingdomain "trip-planner-go/internal/domain/shopping"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateList(ctx context.Context, list *shoppingdomain.List) error {
	err := r.db.WithContext(ctx).Create(list).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shoppingdomain.ErrListExists
	}
	return err
}

func (r *PostgresRepository) GetList(ctx context.Context, listID string) (*shoppingdomain.List, error) {
	return r.firstList(r.db.WithContext(ctx).Where("id = ?", listID))
}

func (r *PostgresRepository) FindByTrip(ctx context.Context, tripID string) (*shoppingdomain.List, error) {
	return r.firstList(r.db.WithContext(ctx).Where("trip_id = ?", tripID))
}

func (r *PostgresRepository) firstList(query *gorm.DB) (*shoppingdomain.List, error) {
	var list shoppingdomain.List
	if err := query.First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shoppingdomain.ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r *PostgresRepository) DeleteList(ctx context.Context, listID string) error {
	result := r.db.WithContext(ctx).Delete(&shoppingdomain.List{}, "id = ?", listID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shoppingdomain.ErrListNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *shoppingdomain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) GetItem(ctx context.Context, itemID string) (*shoppingdomain.Item, error) {
	var item shoppingdomain.Item
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shoppingdomain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) ListItems(ctx context.Context, listID string) ([]shoppingdomain.Item, error) {
	var items []shoppingdomain.Item
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("is_purchased asc, created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *shoppingdomain.Item) error {
	result := r.db.WithContext(ctx).
		Model(&shoppingdomain.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"item_name":     item.ItemName,
			"item_quantity": item.ItemQuantity,
			"is_purchased":  item.IsPurchased,
			"purchased_by":  item.PurchasedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shoppingdomain.ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, itemID string) error {
	result := r.db.WithContext(ctx).Delete(&shoppingdomain.Item{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shoppingdomain.ErrItemNotFound
	}
	return nil
}
