package usecasecontract

import (
	"context"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// IAuthUseCase defines the interface for authentication operations.
type IAuthUseCase interface {
	Register(ctx context.Context, name, email, password string, role entity.UserRole) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, string, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error)
}
