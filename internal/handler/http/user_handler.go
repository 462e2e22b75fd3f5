package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
	"github.com/coursehub-io/coursehub/internal/handler/http/dto"
	usecasecontract "github.com/coursehub-io/coursehub/internal/usecase/contract"
)

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	Register(*gin.Context)
	Login(*gin.Context)
	GetUser(*gin.Context)
	GetCurrentUser(*gin.Context)
	UpdateUser(*gin.Context)
	RefreshToken(*gin.Context)
	Logout(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	authUsecase usecasecontract.IAuthUseCase
}

func NewUserHandler(authUsecase usecasecontract.IAuthUseCase) *UserHandler {
	return &UserHandler{
		authUsecase: authUsecase,
	}
}

// Register handles user registration (signup)
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	role := entity.DefaultRole()
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	user, err := h.authUsecase.Register(c.Request.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		ErrorHandler(c, http.StatusConflict, err.Error())
		return
	}

	SuccessHandler(c, http.StatusCreated, dto.ToUserResponse(*user))
}

// Login handles user authentication
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, accessToken, refreshToken, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}

	response := dto.LoginResponse{
		User:         dto.ToUserResponse(*user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	SuccessHandler(c, http.StatusOK, response)
}

// GetUser handles retrieving user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("id")
	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		ErrorHandler(c, http.StatusNotFound, "User not found")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

// GetCurrentUser handles retrieving the current authenticated user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID.(string))
	if err != nil {
		ErrorHandler(c, http.StatusNotFound, "User not found")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

// UpdateUser handles updating the current user's profile
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.UpdateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	updates := updateUserRequestToMap(req)
	updatedUser, err := h.authUsecase.UpdateProfile(c.Request.Context(), userID.(string), updates)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*updatedUser))
}

// RefreshToken handles token refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.RefreshToken == "" {
		ErrorHandler(c, http.StatusBadRequest, "Refresh token required")
		return
	}

	newAccessToken, newRefreshToken, err := h.authUsecase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ErrorHandler(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	response := gin.H{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	}

	SuccessHandler(c, http.StatusOK, response)
}

// Logout handles user logout. Logout always succeeds from the client's
// point of view: server-side revocation is best effort.
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid or missing refresh token")
		return
	}

	_ = h.authUsecase.Logout(c.Request.Context(), req.RefreshToken)
	MessageHandler(c, http.StatusOK, "Logged out successfully")
}

func updateUserRequestToMap(req dto.UpdateUserRequest) map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	return updates
}
