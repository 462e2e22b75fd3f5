package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	handler "github.com/coursehub-io/coursehub/internal/handler/http"
	dto "github.com/coursehub-io/coursehub/internal/handler/http/dto"
	mocks "github.com/coursehub-io/coursehub/internal/handler/http/mocks"
	validatorinfra "github.com/coursehub-io/coursehub/internal/infrastructure/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validatorinfra.RegisterCustomValidators()
	os.Exit(m.Run())
}

func setupUserRouter(h handler.UserHandlerInterface) *gin.Engine {
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/refresh-token", h.RefreshToken)
	r.POST("/logout", h.Logout)
	r.GET("/users/:id", h.GetUser)
	r.GET("/me", h.GetCurrentUser)
	r.PUT("/me", h.UpdateUser)
	return r
}

func jsonRequest(method, path string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	payload := dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123",
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/register", payload))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "mock-user-id")
	assert.Contains(t, w.Body.String(), "test@example.com")
}

func TestRegister_ValidationFail(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	// Password too short to pass binding validation.
	payload := dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "short",
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/register", payload))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Field validation for 'Password' failed on the 'min' tag")
}

func TestRegister_BadRole(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	payload := dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123",
		Role:     "superuser",
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/register", payload))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Field validation for 'Role' failed on the 'userrole' tag")
}

func TestRegister_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	mockUsecase.ShouldFailRegister = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	payload := dto.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123",
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/register", payload))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	payload := dto.LoginRequest{
		Email:    "test@example.com",
		Password: "Password123",
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/login", payload))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock_access_token")
	assert.Contains(t, w.Body.String(), "mock_refresh_token")
}

func TestLogin_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	mockUsecase.ShouldFailLogin = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	payload := dto.LoginRequest{
		Email:    "test@example.com",
		Password: "wrongpassword",
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/login", payload))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestRefreshToken(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	payload := dto.RefreshTokenRequest{RefreshToken: "some_refresh_token"}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/refresh-token", payload))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock_access_token")
}

func TestRefreshToken_MissingToken(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/refresh-token", dto.RefreshTokenRequest{}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Refresh token required")
}

func TestRefreshToken_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	mockUsecase.ShouldFailRefreshToken = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	payload := dto.RefreshTokenRequest{RefreshToken: "expired_token"}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/refresh-token", payload))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired refresh token")
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	mockUsecase.ShouldFailLogout = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	payload := dto.RefreshTokenRequest{RefreshToken: "whatever"}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/logout", payload))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out successfully")
}

func TestGetUser(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/mock-user-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Test User")
}

func TestGetUser_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	mockUsecase.ShouldFailGetByID = true
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/missing-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestGetCurrentUser_Unauthenticated(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)
	r := setupUserRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not authenticated")
}

func TestGetCurrentUser(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)

	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		c.Set("userID", "mock-user-id")
		h.GetCurrentUser(c)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock-user-id")
}

func TestUpdateUser(t *testing.T) {
	mockUsecase := mocks.NewMockAuthUsecase()
	h := handler.NewUserHandler(mockUsecase)

	r := gin.New()
	r.PUT("/me", func(c *gin.Context) {
		c.Set("userID", "mock-user-id")
		h.UpdateUser(c)
	})

	name := "Renamed User"
	payload := dto.UpdateUserRequest{Name: &name}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("PUT", "/me", payload))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed User")
}
