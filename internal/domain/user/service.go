package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) UpsertProfile(ctx context.Context, userID, email, avatarURL string) error {
	if userID == "" {
		return ErrUserIDRequired
	}

	profile := Profile{UserID: userID}
	if email != "" {
		profile.Email = &email
	}
	if avatarURL != "" {
		profile.AvatarURL = &avatarURL
	}

	return s.repo.UpsertProfile(ctx, &profile)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.repo.GetProfile(ctx, userID)
}

// UserExists reports whether a profile has been recorded for userID.
// Malformed ids never match.
func (s *Service) UserExists(ctx context.Context, userID string) (bool, error) {
	if _, err := uuid.Parse(strings.TrimSpace(userID)); err != nil {
		return false, nil
	}
	return found(s.repo.GetProfile(ctx, strings.TrimSpace(userID)))
}

// UserIDByEmail looks a profile up by case-insensitive email.
func (s *Service) UserIDByEmail(ctx context.Context, email string) (string, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", false, nil
	}
	profile, err := s.repo.FindByEmail(ctx, email)
	if ok, err := found(profile, err); !ok {
		return "", false, err
	}
	return profile.UserID, true, nil
}

func found(profile *Profile, err error) (bool, error) {
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile != nil, nil
}
