package usecasecontract

import (
	"time"
)

// IConfigProvider exposes the configuration values the usecases need.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	// GetProfileFetchAttempts bounds the retries while waiting for a
	// profile record to materialize after registration.
	GetProfileFetchAttempts() int
	GetProfileFetchBackoff() time.Duration
}
