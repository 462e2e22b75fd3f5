package session

import (
	"context"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

type ctxKey struct{}

// WithUser returns a context carrying the authenticated principal.
// The HTTP auth middleware attaches it after verifying the token.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFrom extracts the principal attached by WithUser, or nil.
func UserFrom(ctx context.Context) *entity.User {
	user, _ := ctx.Value(ctxKey{}).(*entity.User)
	return user
}

// ContextResolver resolves the acting principal from the request
// context. It is the multi-principal counterpart of Store for the HTTP
// surface, satisfying the same session contract.
type ContextResolver struct{}

func NewContextResolver() *ContextResolver {
	return &ContextResolver{}
}

func (r *ContextResolver) Current(ctx context.Context) *entity.User {
	return UserFrom(ctx)
}

func (r *ContextResolver) IsAdmin(ctx context.Context) bool {
	return UserFrom(ctx).IsAdmin()
}

func (r *ContextResolver) IsStudent(ctx context.Context) bool {
	return UserFrom(ctx).IsStudent()
}
