package notes

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	notesdomain "trip-planner-go/internal/domain/notes"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *notesdomain.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *PostgresRepository) Get(ctx context.Context, noteID string) (*notesdomain.Note, error) {
	var note notesdomain.Note
	if err := r.db.WithContext(ctx).Where("id = ?", noteID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notesdomain.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *PostgresRepository) ListVisible(ctx context.Context, tripID, userID string) ([]notesdomain.Note, error) {
	var notes []notesdomain.Note
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Where("note_type = ? OR user_id = ?", notesdomain.TypeShared, userID).
		Order("created_at desc").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *notesdomain.Note) error {
	note.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&notesdomain.Note{}).
		Where("id = ?", note.ID).
		Updates(map[string]interface{}{
			"title":      note.Title,
			"content":    note.Content,
			"note_type":  note.NoteType,
			"updated_at": note.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notesdomain.ErrNoteNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, noteID string) error {
	result := r.db.WithContext(ctx).Delete(&notesdomain.Note{}, "id = ?", noteID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notesdomain.ErrNoteNotFound
	}
	return nil
}
