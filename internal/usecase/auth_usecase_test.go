package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/contract"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
	"github.com/coursehub-io/coursehub/internal/session"
)

// fakeUserRepo keeps credentials and profiles in memory. ProfileLag
// makes the first N profile reads miss, mimicking a lagging trigger.
type fakeUserRepo struct {
	credentials map[string]entity.Credential // by email
	profiles    map[string]entity.User       // by id

	ProfileLag      int
	ShouldFailCreds bool
}

var _ contract.IUserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		credentials: make(map[string]entity.Credential),
		profiles:    make(map[string]entity.User),
	}
}

func (r *fakeUserRepo) CreateCredential(ctx context.Context, cred *entity.Credential) error {
	r.credentials[cred.Email] = *cred
	return nil
}

func (r *fakeUserRepo) GetCredentialByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	if r.ShouldFailCreds {
		return nil, errors.New("gateway down")
	}
	if cred, ok := r.credentials[email]; ok {
		return &cred, nil
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeUserRepo) CreateProfile(ctx context.Context, user *entity.User) error {
	r.profiles[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetProfileByID(ctx context.Context, id string) (*entity.User, error) {
	if r.ProfileLag > 0 {
		r.ProfileLag--
		return nil, apperr.ErrNotFound
	}
	if user, ok := r.profiles[id]; ok {
		return &user, nil
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeUserRepo) GetProfileByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.profiles {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*entity.User, error) {
	user, ok := r.profiles[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		user.Name = name
	}
	if _, ok := updates["role"]; ok {
		return nil, errors.New("role is immutable")
	}
	r.profiles[id] = user
	return &user, nil
}

type fakeTokenRepo struct {
	tokens map[string]entity.Token // by id

	RevokeAllCalls int
}

var _ contract.ITokenRepository = (*fakeTokenRepo)(nil)

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]entity.Token)}
}

func (r *fakeTokenRepo) CreateToken(ctx context.Context, token *entity.Token) error {
	r.tokens[token.ID] = *token
	return nil
}

func (r *fakeTokenRepo) GetTokenByUserID(ctx context.Context, userID string) (*entity.Token, error) {
	for _, t := range r.tokens {
		if t.UserID == userID && !t.Revoke {
			tok := t
			return &tok, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeTokenRepo) UpdateToken(ctx context.Context, tokenID string, tokenHash string, expiry time.Time) error {
	t, ok := r.tokens[tokenID]
	if !ok {
		return apperr.ErrNotFound
	}
	t.TokenHash = tokenHash
	t.ExpiresAt = expiry
	r.tokens[tokenID] = t
	return nil
}

func (r *fakeTokenRepo) RevokeToken(ctx context.Context, id string) error {
	t, ok := r.tokens[id]
	if !ok {
		return apperr.ErrNotFound
	}
	t.Revoke = true
	r.tokens[id] = t
	return nil
}

func (r *fakeTokenRepo) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	r.RevokeAllCalls++
	for id, t := range r.tokens {
		if t.UserID == userID && t.TokenType == tokenType {
			t.Revoke = true
			r.tokens[id] = t
		}
	}
	return nil
}

// fakeHasher uses reversible prefixes instead of real hashing.
type fakeHasher struct{}

var _ contract.IHasher = (*fakeHasher)(nil)

func (fakeHasher) HashPassword(password string) (string, error) { return "pw:" + password, nil }
func (fakeHasher) ComparePasswordHash(password, hash string) error {
	if hash != "pw:"+password {
		return errors.New("password verification failed")
	}
	return nil
}
func (fakeHasher) HashString(s string) string { return "sha:" + s }
func (fakeHasher) CheckHash(s, hash string) bool { return hash == "sha:"+s }

// fakeJWT issues tokens of the form "<kind>:<userID>".
type fakeJWT struct{}

var _ JWTService = (*fakeJWT)(nil)

func (fakeJWT) GenerateAccessToken(userID string, role entity.UserRole) (string, error) {
	return "access:" + userID, nil
}
func (fakeJWT) GenerateRefreshToken(userID string, role entity.UserRole) (string, error) {
	return "refresh:" + userID, nil
}
func (fakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	return parseFakeToken(token, "access:")
}
func (fakeJWT) ParseRefreshToken(token string) (*entity.Claims, error) {
	return parseFakeToken(token, "refresh:")
}

func parseFakeToken(token, prefix string) (*entity.Claims, error) {
	if !strings.HasPrefix(token, prefix) {
		return nil, errors.New("invalid token")
	}
	return &entity.Claims{UserID: strings.TrimPrefix(token, prefix)}, nil
}

type fakeConfig struct{}

func (fakeConfig) GetAppBaseURL() string                { return "http://localhost:8080" }
func (fakeConfig) GetAccessTokenExpiry() time.Duration  { return 15 * time.Minute }
func (fakeConfig) GetRefreshTokenExpiry() time.Duration { return 7 * 24 * time.Hour }
func (fakeConfig) GetProfileFetchAttempts() int         { return 3 }
func (fakeConfig) GetProfileFetchBackoff() time.Duration {
	return time.Millisecond
}

type fakeValidator struct{}

func (fakeValidator) ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("invalid email")
	}
	return nil
}

func (fakeValidator) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

func newAuthFixture() (*AuthUsecase, *fakeUserRepo, *fakeTokenRepo, *session.Store) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	sessions := session.NewStore()
	uc := NewAuthUsecase(userRepo, tokenRepo, fakeHasher{}, fakeJWT{}, sessions, testLogger{}, fakeConfig{}, fakeValidator{}, &fakeUUIDGen{})
	return uc, userRepo, tokenRepo, sessions
}

func registerAlice(t *testing.T, uc *AuthUsecase) *entity.User {
	t.Helper()
	user, err := uc.Register(context.Background(), "Alice", "alice@example.com", "Str0ngPassw0rd", entity.UserRoleStudent)
	require.NoError(t, err)
	return user
}

func TestRegisterCreatesCredentialAndProfile(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()

	user := registerAlice(t, uc)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, entity.UserRoleStudent, user.Role)

	cred, err := userRepo.GetCredentialByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "pw:Str0ngPassw0rd", cred.PasswordHash)
	assert.Contains(t, userRepo.profiles, cred.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _, _ := newAuthFixture()
	registerAlice(t, uc)

	_, err := uc.Register(context.Background(), "Alice Again", "alice@example.com", "Str0ngPassw0rd", entity.UserRoleStudent)
	assert.Error(t, err)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	uc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, "A", "not-an-email", "Str0ngPassw0rd", entity.UserRoleStudent)
	assert.Error(t, err)

	_, err = uc.Register(ctx, "A", "a@example.com", "short", entity.UserRoleStudent)
	assert.Error(t, err)
}

func TestRegisterSurvivesProfileLag(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	// Every bounded fetch attempt misses, forcing the manual fallback.
	userRepo.ProfileLag = 10

	user := registerAlice(t, uc)
	assert.Equal(t, "Alice", user.Name)
	assert.Contains(t, userRepo.profiles, user.ID)
}

func TestLoginPublishesSession(t *testing.T) {
	uc, _, tokenRepo, sessions := newAuthFixture()
	registered := registerAlice(t, uc)

	user, accessToken, refreshToken, err := uc.Login(context.Background(), "alice@example.com", "Str0ngPassw0rd")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "access:"+user.ID, accessToken)
	assert.Equal(t, "refresh:"+user.ID, refreshToken)

	current := sessions.Current(context.Background())
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)

	stored, err := tokenRepo.GetTokenByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "sha:"+refreshToken, stored.TokenHash)
}

func TestLoginFailures(t *testing.T) {
	uc, userRepo, _, sessions := newAuthFixture()
	registerAlice(t, uc)
	ctx := context.Background()

	_, _, _, err := uc.Login(ctx, "", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, _, _, err = uc.Login(ctx, "nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	_, _, _, err = uc.Login(ctx, "alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	userRepo.ShouldFailCreds = true
	_, _, _, err = uc.Login(ctx, "alice@example.com", "Str0ngPassw0rd")
	assert.ErrorIs(t, err, apperr.ErrUnavailable)

	// No failed attempt may leave a published identity behind.
	assert.Nil(t, sessions.Current(ctx))
}

func TestLogoutClearsSessionAndRevokesTokens(t *testing.T) {
	uc, _, tokenRepo, sessions := newAuthFixture()
	registerAlice(t, uc)
	ctx := context.Background()

	user, _, refreshToken, err := uc.Login(ctx, "alice@example.com", "Str0ngPassw0rd")
	require.NoError(t, err)
	require.NotNil(t, sessions.Current(ctx))

	require.NoError(t, uc.Logout(ctx, refreshToken))
	assert.Nil(t, sessions.Current(ctx))
	assert.Equal(t, 1, tokenRepo.RevokeAllCalls)

	_, err = tokenRepo.GetTokenByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLogoutWithGarbageTokenStillClears(t *testing.T) {
	uc, _, _, sessions := newAuthFixture()
	sessions.Set(&entity.User{ID: "u1", Role: entity.UserRoleStudent})

	require.NoError(t, uc.Logout(context.Background(), "garbage"))
	assert.Nil(t, sessions.Current(context.Background()))
}

func TestRefreshTokenRotation(t *testing.T) {
	uc, _, tokenRepo, _ := newAuthFixture()
	registerAlice(t, uc)
	ctx := context.Background()

	user, _, refreshToken, err := uc.Login(ctx, "alice@example.com", "Str0ngPassw0rd")
	require.NoError(t, err)

	newAccess, newRefresh, err := uc.RefreshToken(ctx, refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "access:"+user.ID, newAccess)

	stored, err := tokenRepo.GetTokenByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "sha:"+newRefresh, stored.TokenHash)
}

func TestRefreshWithRevokedToken(t *testing.T) {
	uc, _, tokenRepo, _ := newAuthFixture()
	registerAlice(t, uc)
	ctx := context.Background()

	user, _, refreshToken, err := uc.Login(ctx, "alice@example.com", "Str0ngPassw0rd")
	require.NoError(t, err)
	require.NoError(t, tokenRepo.RevokeAllTokensForUser(ctx, user.ID, entity.TokenTypeRefresh))

	_, _, err = uc.RefreshToken(ctx, refreshToken)
	assert.Error(t, err)
}

func TestUpdateProfileWhitelistsFields(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	user := registerAlice(t, uc)

	updated, err := uc.UpdateProfile(context.Background(), user.ID, map[string]interface{}{
		"name": "Alice B.",
		"role": "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, entity.UserRoleStudent, updated.Role)
	assert.Equal(t, entity.UserRoleStudent, userRepo.profiles[user.ID].Role)
}

func TestGetUserByIDMissing(t *testing.T) {
	uc, _, _, _ := newAuthFixture()
	_, err := uc.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}
