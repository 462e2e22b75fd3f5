package dto

// Request DTOs for auth and profile handlers

// RegisterRequest defines the structure for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,userrole"`
}

// LoginRequest defines the structure for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token for rotation and logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateUserRequest defines the structure for updating the current profile
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}
