package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"trip-planner-go/internal/config"
	"trip-planner-go/pkg/logger"
)

var (
	errNoToken       = errors.New("missing bearer token")
	errTokenRejected = errors.New("token rejected by identity provider")
	errNotConfigured = errors.New("auth not configured")
)

// ProfileSaver mirrors identities into user_profiles so invitees can be
// looked up by email.
type ProfileSaver interface {
	UpsertProfile(ctx context.Context, userID, email, avatarURL string) error
}

// SupabaseAuth resolves the bearer token of every request against the
// Supabase /auth/v1/user endpoint, or injects a fixed user when AUTH_SKIP is set.
type SupabaseAuth struct {
	identify func(r *http.Request) (User, error)
	profiles ProfileSaver
	log      logger.Logger
}

func NewSupabaseAuth(cfg config.SupabaseConfig, profiles ProfileSaver, log logger.Logger) *SupabaseAuth {
	a := &SupabaseAuth{profiles: profiles, log: log}
	if cfg.SkipAuth {
		a.identify = mockIdentity(User{
			ID:        strings.TrimSpace(cfg.MockUserID),
			Email:     strings.TrimSpace(cfg.MockUserEmail),
			Name:      strings.TrimSpace(cfg.MockUserName),
			AvatarURL: strings.TrimSpace(cfg.MockUserAvatar),
		})
		return a
	}

	client := &supabaseClient{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.PublishableKey,
		http:    &http.Client{Timeout: cfg.AuthTimeout},
	}
	if client.http.Timeout <= 0 {
		client.http.Timeout = defaultAuthTimeout
	}
	a.identify = client.identify
	return a
}

func (a *SupabaseAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.identify(r)
		switch {
		case errors.Is(err, errNotConfigured):
			a.log.Critical("auth: not configured", "err", err)
			writeError(w, http.StatusInternalServerError, "auth_not_configured", err.Error())
			return
		case errors.Is(err, errNoToken), errors.Is(err, errTokenRejected):
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		case err != nil:
			a.log.InternalError("auth: identity lookup failed", err, "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}

		if a.profiles != nil {
			if err := a.profiles.UpsertProfile(r.Context(), user.ID, user.Email, user.AvatarURL); err != nil {
				a.log.InternalError("auth: upsert profile failed", err, "user_id", user.ID)
			}
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func mockIdentity(user User) func(*http.Request) (User, error) {
	return func(*http.Request) (User, error) {
		if user.ID == "" {
			return User{}, fmt.Errorf("%w: AUTH_MOCK_USER_ID is empty", errNotConfigured)
		}
		return user, nil
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" || strings.ContainsAny(token, " \t") || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return token, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	type errorBody struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error errorBody `json:"error"`
	}{Error: errorBody{Code: code, Message: message}})
}
