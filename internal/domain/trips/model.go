package trips

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

const (
	maxTitleLength       = 100
	maxDestinationLength = 100
)

type Trip struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"size:100;not null"`
	Destination string    `gorm:"size:100;not null"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	OwnerID     string    `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Trip) TableName() string {
	return "trips"
}

type Member struct {
	TripID   string    `gorm:"type:uuid;primaryKey"`
	UserID   string    `gorm:"primaryKey"`
	Role     string    `gorm:"type:varchar(16);not null"`
	JoinedAt time.Time `gorm:"autoCreateTime"`

	Trip Trip `gorm:"foreignKey:TripID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Member) TableName() string {
	return "trip_members"
}

type MemberProfile struct {
	UserID    string
	Role      string
	JoinedAt  time.Time
	Email     *string
	AvatarURL *string
}

type ListFilter struct {
	Query  string
	Limit  int
	Offset int
}

type CreateTripInput struct {
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
}

type UpdateTripInput struct {
	ID          string
	Title       *string
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Validate checks the write-time invariants of a trip.
func (t *Trip) Validate() error {
	t.Title = strings.TrimSpace(t.Title)
	t.Destination = strings.TrimSpace(t.Destination)

	if t.Title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(t.Title) > maxTitleLength {
		return ErrTitleTooLong
	}
	if t.Destination == "" {
		return ErrDestinationRequired
	}
	if utf8.RuneCountInString(t.Destination) > maxDestinationLength {
		return ErrDestinationTooLong
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return ErrDatesRequired
	}
	if t.StartDate.After(t.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// NormalizeMemberRole forces the owner's membership row to role owner and
// anyone else to member.
func NormalizeMemberRole(trip *Trip, member *Member) {
	if trip != nil && member.UserID == trip.OwnerID {
		member.Role = RoleOwner
		return
	}
	member.Role = RoleMember
}

func dateOnly(value time.Time) time.Time {
	y, m, d := value.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
