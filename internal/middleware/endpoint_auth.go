package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/authz"
	apierrors "github.com/barnhand/stable-api/internal/errors"
)

// RequireEndpointAccess checks the actor's role against the endpoint table.
// The key is the request method plus the route template (c.FullPath), so
// ":id" segments match the configured rules. Unlisted endpoints deny every
// role.
func RequireEndpointAccess(checker *authz.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		designation, ok := GetDesignation(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !checker.CanAccessEndpoint(designation, c.Request.Method, c.FullPath()) {
			apierrors.Forbidden(c, "Your role does not have access to this endpoint")
			c.Abort()
			return
		}

		c.Next()
	}
}
