package notes

import (
	"context"

	"github.com/google/uuid"

	"trip-planner-go/internal/domain/access"
)

type Service struct {
	repo  Repository
	authz *access.Authorizer
}

func NewService(repo Repository, authz *access.Authorizer) *Service {
	return &Service{repo: repo, authz: authz}
}

func (s *Service) Create(ctx context.Context, actorID, tripID string, input CreateNoteInput) (*Note, error) {
	if err := s.authz.CanCreate(ctx, actorID, access.Resource{Kind: access.KindNote, TripID: tripID}); err != nil {
		return nil, err
	}

	note := Note{
		ID:       uuid.NewString(),
		TripID:   tripID,
		UserID:   actorID,
		Title:    input.Title,
		Content:  input.Content,
		NoteType: input.NoteType,
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Service) List(ctx context.Context, actorID, tripID string) ([]Note, error) {
	if err := s.authz.CanView(ctx, actorID, access.Resource{Kind: access.KindNote, TripID: tripID}); err != nil {
		return nil, err
	}
	return s.repo.ListVisible(ctx, tripID, actorID)
}

func (s *Service) Get(ctx context.Context, actorID, noteID string) (*Note, error) {
	note, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanView(ctx, actorID, note.Resource()); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) Update(ctx context.Context, actorID string, input UpdateNoteInput) (*Note, error) {
	if input.Title == nil && input.Content == nil && input.NoteType == nil {
		return nil, ErrNoFieldsToUpdate
	}

	note, err := s.repo.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanEdit(ctx, actorID, note.Resource()); err != nil {
		return nil, err
	}

	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if input.NoteType != nil {
		note.NoteType = *input.NoteType
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) Delete(ctx context.Context, actorID, noteID string) error {
	note, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return err
	}
	if err := s.authz.CanDelete(ctx, actorID, note.Resource()); err != nil {
		return err
	}
	return s.repo.Delete(ctx, noteID)
}
