package packing

import (
	"strings"
	"time"
	"unicode/utf8"

	"trip-planner-go/internal/domain/access"
)

const (
	ListPrivate = "private"
	ListShared  = "shared"
)

const maxNameLength = 100

type List struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	TripID    string    `gorm:"type:uuid;not null;index"`
	ListType  string    `gorm:"type:varchar(20);not null"`
	UserID    *string   `gorm:"type:uuid"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (List) TableName() string {
	return "packing_lists"
}

func (l *List) Private() bool {
	return l.ListType == ListPrivate
}

// Resource describes the list, or an item on it when kind is
// access.KindPackingItem.
func (l *List) Resource(kind access.Kind) access.Resource {
	res := access.Resource{Kind: kind, TripID: l.TripID, Private: l.Private()}
	if l.UserID != nil {
		res.CreatorID = *l.UserID
	}
	return res
}

type Item struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	ListID       string    `gorm:"type:uuid;not null;index"`
	ItemName     string    `gorm:"size:100;not null"`
	ItemQuantity int       `gorm:"not null;default:1"`
	IsPacked     bool      `gorm:"not null;default:false"`
	AddedBy      *string   `gorm:"type:uuid"`
	PackedBy     *string   `gorm:"type:uuid"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Item) TableName() string {
	return "packing_items"
}

type ListWithItems struct {
	List
	Items []Item
}

type Template struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Template) TableName() string {
	return "packing_list_templates"
}

type TemplateItem struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	TemplateID string `gorm:"type:uuid;not null;index"`
	Name       string `gorm:"size:100;not null"`
	Quantity   int    `gorm:"not null;default:1"`
}

func (TemplateItem) TableName() string {
	return "packing_item_templates"
}

type TemplateWithItems struct {
	Template
	Items []TemplateItem
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

// normalizeItem trims the name and defaults a zero quantity to one.
func normalizeItem(name string, quantity int) (string, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, ErrItemNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", 0, ErrItemNameTooLong
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return "", 0, ErrInvalidQuantity
	}
	return name, quantity, nil
}

func normalizeTemplateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrTemplateNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", ErrTemplateNameTooLong
	}
	return name, nil
}
