// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	appctx "gescom/internal/core/context"
	"gescom/internal/core/security"
)

// RequirePermission middleware checks if the user has the capability.
// Explicit token grants win; otherwise the role lookup table decides.
// Admins bypass checks entirely.
func RequirePermission(perm security.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if appctx.GetUser(ctx) == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if err := security.GetScope(ctx).RequirePermission(perm); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAnyPermission middleware checks if the user has any of the
// capabilities.
func RequireAnyPermission(perms ...security.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if appctx.GetUser(ctx) == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		scope := security.GetScope(ctx)
		for _, perm := range perms {
			if scope.HasPermission(perm) {
				c.Next()
				return
			}
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("required_permissions", perms),
		)
		c.Abort()
	}
}
