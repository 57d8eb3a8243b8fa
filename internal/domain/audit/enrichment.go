// Package audit provides utilities for audit field enrichment in domain entities.
package audit

import (
	"context"

	"gescom/internal/core/security"
)

// EnrichCreatedBy sets CreatedBy and UpdatedBy from the context user.
// Use in BeforeCreate hooks. No-op when no user is authenticated.
func EnrichCreatedBy(ctx context.Context, createdBy, updatedBy *string) {
	userID := security.GetUserID(ctx)
	if userID != "" && createdBy != nil && updatedBy != nil {
		*createdBy = userID
		*updatedBy = userID
	}
}

// EnrichUpdatedBy sets only UpdatedBy from the context user.
// Use in BeforeUpdate hooks.
func EnrichUpdatedBy(ctx context.Context, updatedBy *string) {
	userID := security.GetUserID(ctx)
	if userID != "" && updatedBy != nil {
		*updatedBy = userID
	}
}
