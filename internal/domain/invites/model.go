package invites

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
	StatusExpired  Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusExpired:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined || s == StatusExpired
}

// CanTransition is the whole state machine: only pending moves, and only to
// a terminal state.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.Terminal()
}

type Invite struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	TripID      string     `gorm:"type:uuid;not null;uniqueIndex:trip_invites_trip_user_key"`
	UserID      string     `gorm:"type:uuid;not null;uniqueIndex:trip_invites_trip_user_key"`
	InvitedBy   string     `gorm:"type:uuid;not null"`
	Status      Status     `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ExpiresAt   *time.Time `gorm:"index"`
	RespondedAt *time.Time
}

func (Invite) TableName() string {
	return "trip_invites"
}

// IsExpired is true only for a pending invite whose expiry is set and has
// passed. Resolved invites never count as expired.
func (i *Invite) IsExpired(now time.Time) bool {
	return i.Status == StatusPending && i.ExpiresAt != nil && i.ExpiresAt.Before(now)
}

// checkRespond validates that actorID may accept or decline the invite in
// its current state. It does not look at expiry.
func (i *Invite) checkRespond(actorID string) error {
	if i.UserID != actorID {
		return ErrNotInvitee
	}
	if i.Status != StatusPending {
		return ErrNotPending
	}
	return nil
}

// Details is an invite joined with the trip and both users' profiles for
// listing.
type Details struct {
	Invite
	TripTitle       string
	TripDestination string
	TripOwnerID     string
	InviteeEmail    *string
	InviterEmail    *string
}

// CreateInviteInput names the invitee by UserID or, when that is blank, by Email.
type CreateInviteInput struct {
	UserID    string
	Email     string
	ExpiresAt *time.Time
}
