// File: /middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photoshare-api/services"
)

// AuthMiddleware requires a valid Bearer token and stores its user id in
// the context under "user_id".
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Access denied. No token provided.")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			abortUnauthorized(c, "Access denied. Invalid token format.")
			return
		}

		userID, err := tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				abortUnauthorized(c, "Token expired. Please login again.")
				return
			}
			abortUnauthorized(c, "Invalid token.")
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error: message,
		Code:  http.StatusUnauthorized,
	})
}
