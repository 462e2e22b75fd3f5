package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coursehub-io/coursehub/internal/session"
	"github.com/coursehub-io/coursehub/internal/usecase"
	usecasecontract "github.com/coursehub-io/coursehub/internal/usecase/contract"
)

// AuthMiddleWare validates the Bearer token, loads the principal and
// attaches it to both the gin context and the request context so the
// usecase layer can resolve the session without touching HTTP types.
func AuthMiddleWare(jwtService usecase.JWTService, authUsecase usecasecontract.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := jwtService.ParseAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := authUsecase.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", string(user.Role))
		c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), user))

		c.Next()
	}
}

// OptionalAuthMiddleWare resolves the principal when a valid Bearer
// token is present but lets anonymous requests through. Used on routes
// whose response varies by session without requiring one.
func OptionalAuthMiddleWare(jwtService usecase.JWTService, authUsecase usecasecontract.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := jwtService.ParseAccessToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		if user, err := authUsecase.GetUserByID(c.Request.Context(), claims.UserID); err == nil {
			c.Set("userID", user.ID)
			c.Set("userRole", string(user.Role))
			c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), user))
		}

		c.Next()
	}
}
