package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserEmailKey is the gin context key holding the caller's email.
const UserEmailKey = "user_email"

// EmailHeader is the request header carrying the caller-supplied identity.
// The value is trusted as-is; this system performs no authentication.
const EmailHeader = "X-User-Email"

// Identity extracts the user email from the request header and stores it
// in the context. Requests without one are rejected before any handler or
// external call runs.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader(EmailHeader))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + EmailHeader + " header"})
			c.Abort()
			return
		}

		c.Set(UserEmailKey, email)
		c.Next()
	}
}

// UserEmail returns the email placed in the context by Identity.
func UserEmail(c *gin.Context) string {
	return c.GetString(UserEmailKey)
}
