package middleware

import (
	"net/http"
	"strings"

	"project-board-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the JWT in the Authorization header and stores
// the caller's identity in the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		// Fallback for WebSocket/browser clients that cannot set custom
		// headers: allow the token as a query param.
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// bearerToken extracts the token from a "Bearer <token>" header value.
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
