package middleware

import (
	"net/http"
	"strings"

	"streamvault/internal/core/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards protected routes. A missing Authorization header
// or a non-Bearer scheme is 401; a present but unverifiable or expired
// token is 403. Both responses carry no body.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Expired and malformed both reject with 403; the split from 401
		// tells the caller a token was seen but not accepted.
		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		// Store identity in context for handlers and logging
		c.Set("user_id", string(claims.UserID))
		c.Set("email", claims.Email)
		c.Next()
	}
}
