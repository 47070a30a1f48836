package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUsername is the gin context key under which Identify stores the
// resolved username.
const ContextUsername = "username"

// Verifier validates a token string and returns the username it asserts.
// Following Go convention: the interface is defined by the consumer
// (middleware), not the provider (Manager).
type Verifier interface {
	Verify(token string) (string, error)
}

// Identify returns a middleware that resolves the caller's identity from
// the Authorization header, best effort. On success the username is stored
// in the gin context; on any failure (missing header, malformed token, bad
// signature) the request proceeds without an identity. This middleware
// never rejects a request: access decisions belong to RequireAuth and
// RequireOwner.
func Identify(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenStr := strings.TrimPrefix(auth, "Bearer ")
			if username, err := v.Verify(tokenStr); err == nil {
				c.Set(ContextUsername, username)
			}
		}
		c.Next()
	}
}

// RequireAuth returns a middleware that aborts with 401 when no identity
// was resolved for the request.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := resolvedUsername(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// RequireOwner returns a middleware that aborts with 401 when no identity
// was resolved, and with 403 when the resolved username does not equal the
// named path parameter. It must stay total over the absent-identity case:
// the guard can be reached without Identify having run or succeeded.
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := resolvedUsername(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if username != c.Param(param) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// resolvedUsername reads the identity attached by Identify, if any.
func resolvedUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUsername)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
