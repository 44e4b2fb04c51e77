package context

import (
	"context"
)

// UserContext carries the authenticated caller's identity.
type UserContext struct {
	UserID   string
	Username string
}

type userKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns UserContext from context or nil.
func GetUser(ctx context.Context) *UserContext {
	if user, ok := ctx.Value(userKey{}).(*UserContext); ok {
		return user
	}
	return nil
}
