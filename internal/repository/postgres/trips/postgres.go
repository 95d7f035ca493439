package trips

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tripsdomain "trip-planner-go/internal/domain/trips"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(tripsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetTrip(ctx context.Context, tripID string) (*tripsdomain.Trip, error) {
	var trip tripsdomain.Trip
	if err := r.db.WithContext(ctx).Where("id = ?", tripID).First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripsdomain.ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *PostgresRepository) ListTripsForUser(ctx context.Context, userID string, filter tripsdomain.ListFilter) ([]tripsdomain.Trip, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&tripsdomain.Trip{}).
		Where("trips.owner_id = ? OR EXISTS (SELECT 1 FROM trip_members WHERE trip_members.trip_id = trips.id AND trip_members.user_id = ?)", userID, userID)
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("trips.title ILIKE ? OR trips.destination ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var trips []tripsdomain.Trip
	if err := query.Order("trips.created_at desc").Find(&trips).Error; err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

func (r *PostgresRepository) CreateTrip(ctx context.Context, trip *tripsdomain.Trip) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(trip).Error
}

func (r *PostgresRepository) UpdateTrip(ctx context.Context, trip *tripsdomain.Trip) error {
	result := r.db.WithContext(ctx).
		Model(&tripsdomain.Trip{}).
		Where("id = ?", trip.ID).
		Updates(map[string]interface{}{
			"title":       trip.Title,
			"destination": trip.Destination,
			"start_date":  trip.StartDate,
			"end_date":    trip.EndDate,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tripsdomain.ErrTripNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTrip(ctx context.Context, tripID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&tripsdomain.Trip{}, "id = ?", tripID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) GetMember(ctx context.Context, tripID, userID string) (*tripsdomain.Member, error) {
	var member tripsdomain.Member
	if err := r.db.WithContext(ctx).Where("trip_id = ? AND user_id = ?", tripID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripsdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, tripID string) ([]tripsdomain.MemberProfile, error) {
	type memberRow struct {
		UserID    string    `gorm:"column:user_id"`
		Role      string    `gorm:"column:role"`
		JoinedAt  time.Time `gorm:"column:joined_at"`
		Email     *string   `gorm:"column:email"`
		AvatarURL *string   `gorm:"column:avatar_url"`
	}

	var rows []memberRow
	if err := r.db.WithContext(ctx).
		Table("trip_members").
		Select("trip_members.user_id, trip_members.role, trip_members.joined_at, user_profiles.email, user_profiles.avatar_url").
		Joins("left join user_profiles on user_profiles.user_id = trip_members.user_id").
		Where("trip_members.trip_id = ?", tripID).
		Order("CASE WHEN trip_members.role = 'owner' THEN 0 ELSE 1 END, trip_members.joined_at desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]tripsdomain.MemberProfile, 0, len(rows))
	for _, row := range rows {
		members = append(members, tripsdomain.MemberProfile{
			UserID:    row.UserID,
			Role:      row.Role,
			JoinedAt:  row.JoinedAt,
			Email:     row.Email,
			AvatarURL: row.AvatarURL,
		})
	}
	return members, nil
}

func (r *PostgresRepository) EnsureMember(ctx context.Context, member *tripsdomain.Member) (bool, error) {
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trip_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(member)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	existing, err := r.GetMember(ctx, member.TripID, member.UserID)
	if err != nil {
		return false, err
	}
	*member = *existing
	return false, nil
}

func (r *PostgresRepository) TripOwnerID(ctx context.Context, tripID string) (string, error) {
	var trip tripsdomain.Trip
	if err := r.db.WithContext(ctx).Select("owner_id").Where("id = ?", tripID).First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", tripsdomain.ErrTripNotFound
		}
		return "", err
	}
	return trip.OwnerID, nil
}

func (r *PostgresRepository) IsMember(ctx context.Context, tripID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&tripsdomain.Member{}).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
