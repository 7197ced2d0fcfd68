package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"

	// AnonymousUser marks an unauthenticated caller. Anonymous requests are
	// valid; identity only scopes the persisted rows.
	AnonymousUser = "No Login"
)

// Identity resolves the caller's opaque identifier from an optional bearer
// credential. The token itself is the upstream-resolved identity; this layer
// never inspects or validates it.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		userID := AnonymousUser
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if strings.HasPrefix(header, "Bearer ") {
			if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
				userID = token
			}
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the identity set by the Identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
