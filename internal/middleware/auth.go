package middleware

import (
	"net/http"
	"strings"

	"github.com/Yashraj221B/chemical-management-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

const usernameContextKey = "username"

// UsernameFromContext returns the authenticated username or an empty string.
func UsernameFromContext(c *gin.Context) string {
	value, ok := c.Get(usernameContextKey)
	if !ok {
		return ""
	}
	username, ok := value.(string)
	if !ok {
		return ""
	}
	return username
}

// AuthMiddleware gates a route behind a valid bearer token. A missing or
// malformed Authorization header is 401; a token that fails verification is
// 403. The claims are not cross-checked against current user state.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"detail": "Authorization header is required",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"detail": "Authorization header must be in the format 'Bearer {token}'",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"detail": "Invalid token",
			})
			c.Abort()
			return
		}

		c.Set(usernameContextKey, claims.Username)
		c.Next()
	}
}
