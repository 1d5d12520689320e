package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key carrying the authenticated renter
// id for the request.
const UserIDKey = "auth_user_id"

// Identity lifts the principal id injected by the upstream auth
// gateway into the request context. Credential verification happens at
// the gateway; this service trusts the header.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader("X-User-Id")); id != "" {
			c.Set(UserIDKey, id)
		}
		c.Next()
	}
}

// PrincipalID returns the authenticated renter id, or "" when the
// request is anonymous.
func PrincipalID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
