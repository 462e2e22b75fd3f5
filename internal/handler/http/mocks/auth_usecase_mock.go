package mocks

import (
	"context"
	"errors"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
	usecasecontract "github.com/coursehub-io/coursehub/internal/usecase/contract"
)

// MockAuthUsecase is a mock implementation of the IAuthUseCase interface
type MockAuthUsecase struct {
	// Control mock behavior
	ShouldFailRegister      bool
	ShouldFailLogin         bool
	ShouldFailAuthenticate  bool
	ShouldFailRefreshToken  bool
	ShouldFailLogout        bool
	ShouldFailGetByID       bool
	ShouldFailUpdateProfile bool

	// Return values
	MockUser         entity.User
	MockAccessToken  string
	MockRefreshToken string
}

// Ensure MockAuthUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IAuthUseCase = (*MockAuthUsecase)(nil)

func NewMockAuthUsecase() *MockAuthUsecase {
	return &MockAuthUsecase{
		MockUser: entity.User{
			ID:    "mock-user-id",
			Name:  "Test User",
			Email: "test@example.com",
			Role:  entity.UserRoleStudent,
		},
		MockAccessToken:  "mock_access_token",
		MockRefreshToken: "mock_refresh_token",
	}
}

func (m *MockAuthUsecase) Register(ctx context.Context, name, email, password string, role entity.UserRole) (*entity.User, error) {
	if m.ShouldFailRegister {
		return nil, errors.New("user creation failed")
	}
	return &m.MockUser, nil
}

func (m *MockAuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	if m.ShouldFailLogin {
		return nil, "", "", apperr.ErrInvalidCredentials
	}
	return &m.MockUser, m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if m.ShouldFailAuthenticate {
		return nil, errors.New("authentication failed")
	}
	return &m.MockUser, nil
}

func (m *MockAuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	if m.ShouldFailRefreshToken {
		return "", "", errors.New("refresh failed")
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if m.ShouldFailLogout {
		return errors.New("logout failed")
	}
	return nil
}

func (m *MockAuthUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID {
		return nil, apperr.ErrUserNotFound
	}
	return &m.MockUser, nil
}

func (m *MockAuthUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	if m.ShouldFailUpdateProfile {
		return nil, errors.New("update profile failed")
	}
	user := m.MockUser
	if name, ok := updates["name"].(string); ok {
		user.Name = name
	}
	return &user, nil
}
