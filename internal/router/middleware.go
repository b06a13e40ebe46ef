package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vovantri123/glamora-store-api/pkg/backend"
)

const sessionHeader = "X-Session-ID"

// SessionMiddleware resolves the shopper's session id from the request
// header, minting a fresh one for first-time visitors. The id is always
// echoed back so the storefront can persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(sessionHeader))
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		c.Set("sessionID", sessionID)
		c.Header(sessionHeader, sessionID)
		c.Next()
	}
}

// AuthForwardingMiddleware lifts the shopper's bearer token into the request
// context so the backend client forwards it on every upstream call.
func AuthForwardingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(authz, "Bearer "); ok && token != "" {
			ctx := backend.WithAuthToken(c.Request.Context(), token)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString("sessionID")
}
