package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alfrdzley/openmusic-api-v3/internal/shared/response"
	"github.com/alfrdzley/openmusic-api-v3/pkg/jwt"
)

// ContextUserID is the gin context key carrying the authenticated user id.
const ContextUserID = "userID"

// Auth verifies the bearer access token and stores the actor identity in the
// context. Everything past this middleware may assume a verified actor.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.VerifyAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated actor id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
