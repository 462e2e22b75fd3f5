package usecasecontract

import (
	"context"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// ISession resolves the principal on whose behalf an operation runs.
// The session store satisfies it for embedded single-principal use;
// the HTTP layer satisfies it with a request-scoped resolver.
type ISession interface {
	Current(ctx context.Context) *entity.User
	IsAdmin(ctx context.Context) bool
	IsStudent(ctx context.Context) bool
}
