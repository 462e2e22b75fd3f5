package config

import (
	"os"
	"strconv"
	"time"

	usecasecontract "github.com/coursehub-io/coursehub/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	AppBaseURL           string
	AccessTokenExpiry    time.Duration
	RefreshTokenExpiry   time.Duration
	ProfileFetchAttempts int
	ProfileFetchBackoff  time.Duration
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() usecasecontract.IConfigProvider {
	return &Config{
		AppBaseURL:           getEnv("APP_BASE_URL", "http://localhost:8080"),
		AccessTokenExpiry:    time.Minute * time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRY_MINUTES", 15)),
		RefreshTokenExpiry:   time.Hour * time.Duration(getEnvAsInt("REFRESH_TOKEN_EXPIRY_HOURS", 168)), // 7 days
		ProfileFetchAttempts: getEnvAsInt("PROFILE_FETCH_ATTEMPTS", 3),
		ProfileFetchBackoff:  time.Millisecond * time.Duration(getEnvAsInt("PROFILE_FETCH_BACKOFF_MS", 200)),
	}
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

// GetAccessTokenExpiry returns the expiry duration for access tokens.
func (c *Config) GetAccessTokenExpiry() time.Duration {
	return c.AccessTokenExpiry
}

// GetRefreshTokenExpiry returns the expiry duration for refresh tokens.
func (c *Config) GetRefreshTokenExpiry() time.Duration {
	return c.RefreshTokenExpiry
}

// GetProfileFetchAttempts returns how many times a freshly registered
// profile is fetched before falling back to manual creation.
func (c *Config) GetProfileFetchAttempts() int {
	return c.ProfileFetchAttempts
}

// GetProfileFetchBackoff returns the wait between profile fetch attempts.
func (c *Config) GetProfileFetchBackoff() time.Duration {
	return c.ProfileFetchBackoff
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
