package http

import (
	"net/http"
	"strings"

	"store-service/internal/auth"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Authenticate resolves the bearer token into an actor. Requests without
// an Authorization header continue as anonymous; a malformed or invalid
// token is rejected outright.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(actorKey, auth.Anonymous)
			c.Next()
			return
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		actor, err := auth.ParseToken(secret, strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

func actorFrom(c *gin.Context) auth.Actor {
	if v, ok := c.Get(actorKey); ok {
		return v.(auth.Actor)
	}
	return auth.Anonymous
}

// Authorize evaluates the policy table before the handler runs:
// anonymous actors get 401, authenticated but unprivileged ones 403.
func Authorize(resource auth.Resource, op auth.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		if auth.Allowed(actor, resource, op) {
			c.Next()
			return
		}
		if !actor.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	}
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}
