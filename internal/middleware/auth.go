package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/constants"
	apierrors "github.com/barnhand/stable-api/internal/errors"
	"github.com/barnhand/stable-api/internal/utils"
)

// RequireAuth validates the bearer credential and stores the actor identity
// in the request context. Verification is stateless; handlers that need the
// live role or approval flag re-fetch the employee record.
func RequireAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthorized(c, "Invalid authorization format")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1], jwtSecret)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEmployeeID, claims.EmployeeID)
		c.Set(constants.ContextKeyEmail, claims.Email)
		c.Set(constants.ContextKeyDesignation, claims.Designation)
		c.Next()
	}
}

// GetEmployeeID retrieves the current employee ID from context.
func GetEmployeeID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyEmployeeID)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetDesignation retrieves the current actor's designation from context.
func GetDesignation(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyDesignation)
	if !exists {
		return "", false
	}
	designation, ok := value.(string)
	return designation, ok
}
