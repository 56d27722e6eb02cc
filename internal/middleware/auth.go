package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-api/internal/identity"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/token"
)

const (
	ContextActor = "actor"
	ContextUser  = "currentUser"
	ContextToken = "bearerToken"
)

// AuthMiddleware resolves the Authorization header against the server-side
// token store and places the caller's Actor and User in the request context.
func AuthMiddleware(tokens *token.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		bearer := parts[1]

		user, err := tokens.Authenticate(c.Request.Context(), bearer)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrMalformed):
				log.Printf("auth: malformed token from %s", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_format"})
			case errors.Is(err, token.ErrExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_expired"})
			case errors.Is(err, token.ErrNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication_failed"})
			}
			return
		}

		role, ok := identity.ParseRole(user.Role)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_role"})
			return
		}

		c.Set(ContextActor, identity.Actor{
			ID:           user.ID,
			Role:         role,
			IsSuperAdmin: user.IsSuperAdmin,
		})
		c.Set(ContextUser, user)
		c.Set(ContextToken, bearer)

		c.Next()
	}
}

// ActorFrom returns the resolved Actor; the auth middleware guarantees it.
func ActorFrom(c *gin.Context) identity.Actor {
	return c.MustGet(ContextActor).(identity.Actor)
}

// UserFrom returns the authenticated user record.
func UserFrom(c *gin.Context) *models.User {
	return c.MustGet(ContextUser).(*models.User)
}
