package contract

import (
	"context"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// IUserRepository persists auth identities and profile records. The two
// are stored separately: a profile can lag behind identity creation.
type IUserRepository interface {
	CreateCredential(ctx context.Context, cred *entity.Credential) error
	GetCredentialByEmail(ctx context.Context, email string) (*entity.Credential, error)

	CreateProfile(ctx context.Context, user *entity.User) error
	GetProfileByID(ctx context.Context, id string) (*entity.User, error)
	GetProfileByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*entity.User, error)
}
