package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/contract"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
	"github.com/coursehub-io/coursehub/internal/session"
	usecasecontract "github.com/coursehub-io/coursehub/internal/usecase/contract"
)

// AuthUsecase implements authentication and profile management. It is
// the only writer of the session store: successful logins publish the
// resolved identity, logout clears it.
type AuthUsecase struct {
	userRepo      contract.IUserRepository
	tokenRepo     contract.ITokenRepository
	hasher        contract.IHasher
	jwtService    JWTService
	sessions      *session.Store
	logger        usecasecontract.IAppLogger
	config        usecasecontract.IConfigProvider
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
}

// NewAuthUsecase creates a new AuthUsecase instance.
func NewAuthUsecase(
	userRepo contract.IUserRepository,
	tokenRepo contract.ITokenRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	sessions *session.Store,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		hasher:        hasher,
		jwtService:    jwtService,
		sessions:      sessions,
		logger:        logger,
		config:        cfg,
		validator:     validator,
		uuidGenerator: uuidGenerator,
	}
}

// check if AuthUsecase implements the IAuthUseCase
var _ usecasecontract.IAuthUseCase = (*AuthUsecase)(nil)

// Register creates an auth identity and its profile record. The profile
// may be materialized by a lagging trigger elsewhere, so the fetch is
// retried a bounded number of times before falling back to creating the
// profile directly.
func (uc *AuthUsecase) Register(ctx context.Context, name, email, password string, role entity.UserRole) (*entity.User, error) {
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", err)
	}
	if err := uc.validator.ValidatePasswordStrength(password); err != nil {
		return nil, fmt.Errorf("weak password: %w", err)
	}
	if name == "" {
		name = localPart(email)
	}
	if role == "" {
		role = entity.DefaultRole()
	}
	if !entity.ValidRole(string(role)) {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	existing, err := uc.userRepo.GetCredentialByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing credential: %v", err)
		return nil, apperr.ErrUnavailable
	}
	if existing != nil {
		return nil, fmt.Errorf("user with email %s already exists", email)
	}

	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process password")
	}

	cred := &entity.Credential{
		ID:           uc.uuidGenerator.NewUUID(),
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.CreateCredential(ctx, cred); err != nil {
		uc.logger.Errorf("failed to create credential: %v", err)
		return nil, fmt.Errorf("failed to register user")
	}

	user, err := uc.resolveProfile(ctx, cred.ID, name, email, role)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// resolveProfile waits for the profile record to show up, then creates
// it manually once the attempts are exhausted.
func (uc *AuthUsecase) resolveProfile(ctx context.Context, id, name, email string, role entity.UserRole) (*entity.User, error) {
	attempts := uc.config.GetProfileFetchAttempts()
	if attempts < 1 {
		attempts = 1
	}
	backoff := uc.config.GetProfileFetchBackoff()

	for i := 0; i < attempts; i++ {
		profile, err := uc.userRepo.GetProfileByID(ctx, id)
		if err == nil && profile != nil {
			return profile, nil
		}
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			uc.logger.Warningf("profile fetch attempt %d failed: %v", i+1, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	user := &entity.User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := uc.userRepo.CreateProfile(ctx, user); err != nil {
		uc.logger.Errorf("manual profile creation failed for %s: %v", id, err)
		return nil, apperr.ErrProfileCreationFailed
	}
	return user, nil
}

// Login validates credentials and publishes the resolved identity. The
// login supersedes any in-flight attempt first, so a slower earlier
// attempt can never overwrite this one's published identity.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	if email == "" || password == "" {
		return nil, "", "", apperr.ErrInvalidCredentials
	}

	gen := uc.sessions.Supersede()

	cred, err := uc.userRepo.GetCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", "", apperr.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve credential for login: %v", err)
		return nil, "", "", apperr.ErrUnavailable
	}

	if err := uc.hasher.ComparePasswordHash(password, cred.PasswordHash); err != nil {
		return nil, "", "", apperr.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetProfileByID(ctx, cred.ID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			uc.logger.Errorf("failed to retrieve profile for login: %v", err)
			return nil, "", "", apperr.ErrUnavailable
		}
		// Profile record not materialized yet; fabricate one from the
		// authenticated identity and persist it best-effort.
		user = &entity.User{
			ID:        cred.ID,
			Email:     cred.Email,
			Name:      localPart(cred.Email),
			Role:      entity.DefaultRole(),
			CreatedAt: cred.CreatedAt,
		}
		if err := uc.userRepo.CreateProfile(ctx, user); err != nil {
			uc.logger.Warningf("profile backfill failed for %s: %v", cred.ID, err)
		}
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return nil, "", "", errors.New("failed to generate token")
	}
	refreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate refresh token: %v", err)
		return nil, "", "", errors.New("failed to generate token")
	}

	refreshTokenExpiry := uc.config.GetRefreshTokenExpiry()
	tokenEntity := &entity.Token{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypeRefresh,
		TokenHash: uc.hasher.HashString(refreshToken),
		ExpiresAt: time.Now().Add(refreshTokenExpiry),
		CreatedAt: time.Now(),
		Revoke:    false,
	}
	if err := uc.tokenRepo.CreateToken(ctx, tokenEntity); err != nil {
		uc.logger.Errorf("failed to store refresh token for user %s: %v", user.ID, err)
		return nil, "", "", errors.New("failed to store token")
	}

	if !uc.sessions.SetAt(gen, user) {
		// A later login or a logout superseded this attempt while the
		// gateway calls were in flight; the result is discarded.
		uc.logger.Infof("stale login result for %s discarded", user.ID)
	}
	return user, accessToken, refreshToken, nil
}

// Authenticate resolves the principal from an access token.
func (uc *AuthUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	user, err := uc.userRepo.GetProfileByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, apperr.ErrUnavailable
	}
	return user, nil
}

// RefreshToken rotates an access/refresh token pair.
func (uc *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}

	storedToken, err := uc.tokenRepo.GetTokenByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", "", errors.New("refresh token not found or invalidated, please log in again")
		}
		uc.logger.Errorf("failed to retrieve stored refresh token: %v", err)
		return "", "", apperr.ErrUnavailable
	}

	if storedToken.Revoke {
		return "", "", errors.New("refresh token has been revoked, please log in again")
	}
	if !uc.hasher.CheckHash(refreshToken, storedToken.TokenHash) {
		uc.logger.Warnf("refresh token mismatch for user %s", claims.UserID)
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", errors.New("invalid refresh token")
	}
	if storedToken.ExpiresAt.Before(time.Now()) {
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", errors.New("refresh token expired, please log in again")
	}

	user, err := uc.userRepo.GetProfileByID(ctx, claims.UserID)
	if err != nil {
		return "", "", apperr.ErrUserNotFound
	}

	newAccessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate new access token during refresh: %v", err)
		return "", "", errors.New("failed to generate new access token")
	}
	newRefreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate new refresh token during refresh: %v", err)
		return "", "", errors.New("failed to generate new refresh token")
	}

	err = uc.tokenRepo.UpdateToken(ctx, storedToken.ID, uc.hasher.HashString(newRefreshToken), time.Now().Add(uc.config.GetRefreshTokenExpiry()))
	if err != nil {
		uc.logger.Errorf("failed to update refresh token in db: %v", err)
		return "", "", errors.New("failed to update token")
	}

	return newAccessToken, newRefreshToken, nil
}

// Logout revokes the refresh token best-effort and clears the local
// session unconditionally. Remote failures are logged, never surfaced:
// logout is infallible from the caller's perspective.
func (uc *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	defer uc.sessions.Clear()

	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		uc.logger.Warnf("failed to parse refresh token on logout, assuming it's already invalid: %v", err)
		return nil
	}

	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, claims.UserID, entity.TokenTypeRefresh); err != nil {
		uc.logger.Warnf("failed to revoke refresh tokens for user %s on logout: %v", claims.UserID, err)
	}
	return nil
}

// GetUserByID fetches a profile record.
func (uc *AuthUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user by ID: %v", err)
		return nil, apperr.ErrUnavailable
	}
	return user, nil
}

// UpdateProfile lets the owning user change their name or avatar. Role
// and email are not self-changeable and are dropped from the updates.
func (uc *AuthUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	allowed := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		switch k {
		case "name", "avatar_url":
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return uc.GetUserByID(ctx, userID)
	}

	user, err := uc.userRepo.UpdateProfile(ctx, userID, allowed)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		uc.logger.Errorf("failed to update profile for user %s: %v", userID, err)
		return nil, errors.New("failed to update profile")
	}
	return user, nil
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
