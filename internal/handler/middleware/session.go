package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionHeader   = "X-Session-ID"
	ctxSessionIDKey = "session_id"
)

// RequireSession binds the guest session header into the request context.
// Guest carts and guest orders are scoped to this caller-generated id.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(sessionHeader))
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "X-Session-ID header required",
			})
			c.Abort()
			return
		}

		c.Set(ctxSessionIDKey, sessionID)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get(ctxSessionIDKey)
	if !exists {
		return "", false
	}

	id, ok := sessionID.(string)
	return id, ok && id != ""
}
