package invites

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	invitesdomain "trip-planner-go/internal/domain/invites"
	tripsdomain "trip-planner-go/internal/domain/trips"
	tripsrepo "trip-planner-go/internal/repository/postgres/trips"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(invitesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, invite *invitesdomain.Invite) error {
	err := r.db.WithContext(ctx).Create(invite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return invitesdomain.ErrInviteExists
	}
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, inviteID string) (*invitesdomain.Invite, error) {
	var invite invitesdomain.Invite
	if err := r.db.WithContext(ctx).Where("id = ?", inviteID).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitesdomain.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

func (r *PostgresRepository) Resolve(ctx context.Context, inviteID string, status invitesdomain.Status, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&invitesdomain.Invite{}).
		Where("id = ? AND status = ?", inviteID, invitesdomain.StatusPending).
		Where("expires_at IS NULL OR expires_at >= ?", now).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresRepository) MarkExpired(ctx context.Context, inviteID string, now time.Time) (bool, error) {
	result := r.overdue(ctx, now).
		Where("id = ?", inviteID).
		Update("status", invitesdomain.StatusExpired)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresRepository) ExpireOverdueForUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	result := r.overdue(ctx, now).
		Where("user_id = ?", userID).
		Update("status", invitesdomain.StatusExpired)
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.overdue(ctx, now).Update("status", invitesdomain.StatusExpired)
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) overdue(ctx context.Context, now time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&invitesdomain.Invite{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", invitesdomain.StatusPending, now)
}

func (r *PostgresRepository) DeletePending(ctx context.Context, inviteID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", inviteID, invitesdomain.StatusPending).
		Delete(&invitesdomain.Invite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresRepository) ListPendingForUser(ctx context.Context, userID string) ([]invitesdomain.Details, error) {
	return r.listDetails(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("trip_invites.user_id = ? AND trip_invites.status = ?", userID, invitesdomain.StatusPending)
	})
}

func (r *PostgresRepository) ListSentBy(ctx context.Context, ownerID string) ([]invitesdomain.Details, error) {
	return r.listDetails(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("trips.owner_id = ?", ownerID)
	})
}

func (r *PostgresRepository) ListForTrip(ctx context.Context, tripID string) ([]invitesdomain.Details, error) {
	return r.listDetails(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("trip_invites.trip_id = ?", tripID)
	})
}

func (r *PostgresRepository) listDetails(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]invitesdomain.Details, error) {
	type inviteRow struct {
		ID              string     `gorm:"column:id"`
		TripID          string     `gorm:"column:trip_id"`
		UserID          string     `gorm:"column:user_id"`
		InvitedBy       string     `gorm:"column:invited_by"`
		Status          string     `gorm:"column:status"`
		CreatedAt       time.Time  `gorm:"column:created_at"`
		ExpiresAt       *time.Time `gorm:"column:expires_at"`
		RespondedAt     *time.Time `gorm:"column:responded_at"`
		TripTitle       string     `gorm:"column:trip_title"`
		TripDestination string     `gorm:"column:trip_destination"`
		TripOwnerID     string     `gorm:"column:trip_owner_id"`
		InviteeEmail    *string    `gorm:"column:invitee_email"`
		InviterEmail    *string    `gorm:"column:inviter_email"`
	}

	query := r.db.WithContext(ctx).
		Table("trip_invites").
		Select(`trip_invites.id, trip_invites.trip_id, trip_invites.user_id, trip_invites.invited_by,
			trip_invites.status, trip_invites.created_at, trip_invites.expires_at, trip_invites.responded_at,
			trips.title AS trip_title, trips.destination AS trip_destination, trips.owner_id AS trip_owner_id,
			invitee.email AS invitee_email, inviter.email AS inviter_email`).
		Joins("join trips on trips.id = trip_invites.trip_id").
		Joins("left join user_profiles invitee on invitee.user_id = trip_invites.user_id").
		Joins("left join user_profiles inviter on inviter.user_id = trip_invites.invited_by")

	var rows []inviteRow
	if err := scope(query).Order("trip_invites.created_at desc").Scan(&rows).Error; err != nil {
		return nil, err
	}

	details := make([]invitesdomain.Details, 0, len(rows))
	for _, row := range rows {
		details = append(details, invitesdomain.Details{
			Invite: invitesdomain.Invite{
				ID:          row.ID,
				TripID:      row.TripID,
				UserID:      row.UserID,
				InvitedBy:   row.InvitedBy,
				Status:      invitesdomain.Status(row.Status),
				CreatedAt:   row.CreatedAt,
				ExpiresAt:   row.ExpiresAt,
				RespondedAt: row.RespondedAt,
			},
			TripTitle:       row.TripTitle,
			TripDestination: row.TripDestination,
			TripOwnerID:     row.TripOwnerID,
			InviteeEmail:    row.InviteeEmail,
			InviterEmail:    row.InviterEmail,
		})
	}
	return details, nil
}

// EnsureMember writes through the membership store on the same connection,
// so inside Transaction it shares the invite update's transaction.
func (r *PostgresRepository) EnsureMember(ctx context.Context, member *tripsdomain.Member) (bool, error) {
	return tripsrepo.NewPostgres(r.db).EnsureMember(ctx, member)
}
