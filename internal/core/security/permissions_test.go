package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolesGrant(t *testing.T) {
	tests := []struct {
		name    string
		roles   []string
		perm    Permission
		granted bool
	}{
		{"admin bypasses everything", []string{"admin"}, PermUsersManage, true},
		{"manager can cancel purchases", []string{"manager"}, PermPurchasesVoid, true},
		{"seller can create sales", []string{"seller"}, PermSalesWrite, true},
		{"seller cannot cancel sales", []string{"seller"}, PermSalesVoid, false},
		{"seller cannot write products", []string{"seller"}, PermProductsWrite, false},
		{"viewer is read only", []string{"viewer"}, PermSalesWrite, false},
		{"viewer can read reports", []string{"viewer"}, PermReportsRead, true},
		{"multiple roles union", []string{"viewer", "seller"}, PermSalesWrite, true},
		{"unknown role grants nothing", []string{"ghost"}, PermProductsRead, false},
		{"no roles", nil, PermProductsRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.granted, RolesGrant(tt.roles, tt.perm))
		})
	}
}

func TestCapabilitiesFor_Deduplicates(t *testing.T) {
	caps := CapabilitiesFor([]string{"manager", "seller"})

	seen := make(map[Permission]int)
	for _, c := range caps {
		seen[c]++
	}
	for perm, n := range seen {
		assert.Equal(t, 1, n, "capability %s appears more than once", perm)
	}
	assert.Contains(t, caps, PermSalesWrite)
	assert.Contains(t, caps, PermPurchasesVoid)
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("admin"))
	assert.True(t, IsValidRole("viewer"))
	assert.False(t, IsValidRole("superuser"))
	assert.False(t, IsValidRole(""))
}

func TestAccessScope_HasPermission(t *testing.T) {
	scope := &AccessScope{Roles: []string{"seller"}}
	assert.True(t, scope.HasPermission(PermSalesWrite))
	assert.False(t, scope.HasPermission(PermSalesVoid))

	// Explicit token grants win over the role table.
	scope.Permissions = []string{string(PermSalesVoid)}
	assert.True(t, scope.HasPermission(PermSalesVoid))

	admin := &AccessScope{IsAdmin: true}
	assert.True(t, admin.HasPermission(PermUsersManage))
}
