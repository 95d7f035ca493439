package notes

import (
	"strings"
	"time"
	"unicode/utf8"

	"trip-planner-go/internal/domain/access"
)

const (
	TypePrivate = "private"
	TypeShared  = "shared"
)

const maxTitleLength = 200

type Note struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	TripID    string    `gorm:"type:uuid;not null;index"`
	UserID    string    `gorm:"type:uuid;not null"`
	Title     string    `gorm:"size:200;not null"`
	NoteType  string    `gorm:"type:varchar(10);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}

func (n *Note) Resource() access.Resource {
	return access.Resource{
		Kind:      access.KindNote,
		TripID:    n.TripID,
		CreatorID: n.UserID,
		Private:   n.NoteType == TypePrivate,
	}
}

func (n *Note) Validate() error {
	n.Title = strings.TrimSpace(n.Title)
	n.NoteType = strings.ToLower(strings.TrimSpace(n.NoteType))
	if n.NoteType == "" {
		n.NoteType = TypePrivate
	}

	if n.Title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(n.Title) > maxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(n.Content) == "" {
		return ErrContentRequired
	}
	if n.NoteType != TypePrivate && n.NoteType != TypeShared {
		return ErrInvalidType
	}
	return nil
}

type CreateNoteInput struct {
	Title    string
	Content  string
	NoteType string
}

type UpdateNoteInput struct {
	ID       string
	Title    *string
	Content  *string
	NoteType *string
}
