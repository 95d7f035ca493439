package shopping

import (
	"strings"
	"time"
	"unicode/utf8"
)

const maxItemNameLength = 100

type List struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	TripID    string    `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (List) TableName() string {
	return "shopping_lists"
}

type Item struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	ListID       string    `gorm:"type:uuid;not null;index"`
	ItemName     string    `gorm:"size:100;not null"`
	ItemQuantity int       `gorm:"not null;default:1"`
	IsPurchased  bool      `gorm:"not null;default:false"`
	AddedBy      *string   `gorm:"type:uuid"`
	PurchasedBy  *string   `gorm:"type:uuid"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Item) TableName() string {
	return "shopping_items"
}

type ListWithItems struct {
	List
	Items []Item
}

type ItemInput struct {
	Name     string
	Quantity int
}

type UpdateItemInput struct {
	ID       string
	Name     *string
	Quantity *int
}

func normalizeItem(name string, quantity int) (string, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, ErrItemNameRequired
	}
	if utf8.RuneCountInString(name) > maxItemNameLength {
		return "", 0, ErrItemNameTooLong
	}
	if quantity < 1 {
		return "", 0, ErrInvalidQuantity
	}
	return name, quantity, nil
}
