package middleware

import "context"

// User is the authenticated caller. Only ID is guaranteed to be set.
type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

type contextKey struct{}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(contextKey{}).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}
