// Package security provides authorization and access control.
package security

import (
	"context"
	"fmt"

	"gescom/internal/core/apperror"
	appctx "gescom/internal/core/context"
)

// AccessScope defines what the current request is allowed to do.
// Built from the authenticated user and used for authorization decisions
// and for consistent logging/audit context.
type AccessScope struct {
	// UserID is the authenticated user
	UserID string

	// Email of the authenticated user (for audit entries)
	Email string

	// IsAdmin bypasses permission checks
	IsAdmin bool

	// Roles assigned to the user
	Roles []string

	// Permissions resolved for the user (capability strings)
	Permissions []string
}

// NewAccessScope creates AccessScope from context.
func NewAccessScope(ctx context.Context) *AccessScope {
	user := appctx.GetUser(ctx)
	if user == nil {
		return &AccessScope{}
	}

	return &AccessScope{
		UserID:      user.UserID,
		Email:       user.Email,
		IsAdmin:     user.IsAdmin,
		Roles:       user.Roles,
		Permissions: user.Permissions,
	}
}

// HasPermission checks if the scope grants a capability.
// Explicit grants from the token win; otherwise the role lookup table
// decides.
func (s *AccessScope) HasPermission(perm Permission) bool {
	if s.IsAdmin {
		return true
	}
	for _, p := range s.Permissions {
		if p == string(perm) {
			return true
		}
	}
	return RolesGrant(s.Roles, perm)
}

// RequirePermission returns error if the capability is missing.
func (s *AccessScope) RequirePermission(perm Permission) error {
	if !s.HasPermission(perm) {
		return apperror.NewForbidden(
			fmt.Sprintf("permission %s required", perm),
		).WithDetail("permission", string(perm))
	}
	return nil
}

// --- Context-based scope access ---

type scopeKey struct{}

// WithScope adds AccessScope to context.
func WithScope(ctx context.Context, scope *AccessScope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// GetScope returns AccessScope from context.
func GetScope(ctx context.Context) *AccessScope {
	if v, ok := ctx.Value(scopeKey{}).(*AccessScope); ok {
		return v
	}
	return NewAccessScope(ctx)
}
