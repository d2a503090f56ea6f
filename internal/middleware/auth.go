package middleware

import (
	"strings"

	"github.com/boardlink/core/internal/pkg/jwt"
	"github.com/boardlink/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyUserID holds the authenticated caller's user id.
	ContextKeyUserID = "user_id"
	// ContextKeyBearer holds the caller's raw token. Store queries that must
	// run under the caller's own row-level policy use it as the capability.
	ContextKeyBearer = "bearer_token"
)

// Auth returns a middleware that verifies the caller's bearer token. The
// raw token is kept in the context as the request-scoped principal; it is
// forwarded to the backing store so authorization stays delegated to the
// store's own row-level policy.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		claims, err := jwt.ParseUserToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ContextKeyUserID, claims.Subject)
		c.Set(ContextKeyBearer, token)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user id from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CallerToken extracts the caller's raw bearer token from context.
func CallerToken(c *gin.Context) string {
	v, _ := c.Get(ContextKeyBearer)
	token, _ := v.(string)
	return token
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
