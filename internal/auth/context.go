package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderUserID carries the caller identity set by the upstream gateway.
const HeaderUserID = "X-User-Id"

const userIDKey = "user_id"

// RequireUser copies the caller identity into the gin context and rejects
// requests without one.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	// Check if added to context by middleware
	if val := c.GetString(userIDKey); val != "" {
		return val
	}
	// Fallback to header
	return c.GetHeader(HeaderUserID)
}
