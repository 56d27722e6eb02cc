package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates the /admin surface.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_only"})
			return
		}
		c.Next()
	}
}

// RequireVerifiedEmail blocks users that have not confirmed their email yet.
// They can still hit logout and the verification endpoints.
func RequireVerifiedEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c).EmailVerifiedAt == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "email_not_verified"})
			return
		}
		c.Next()
	}
}
