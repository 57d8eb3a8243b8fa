package security

// Permission is a capability string of the form "resource:action".
// Authorization is an explicit lookup: role → set of capabilities.
// Adding a finer-grained role never touches call sites.
type Permission string

const (
	PermProductsRead   Permission = "products:read"
	PermProductsWrite  Permission = "products:write"
	PermClientsRead    Permission = "clients:read"
	PermClientsWrite   Permission = "clients:write"
	PermPurchasesRead  Permission = "purchases:read"
	PermPurchasesWrite Permission = "purchases:create"
	PermPurchasesVoid  Permission = "purchases:cancel"
	PermSalesRead      Permission = "sales:read"
	PermSalesWrite     Permission = "sales:create"
	PermSalesVoid      Permission = "sales:cancel"
	PermStockRead      Permission = "stock:read"
	PermAlertsRead     Permission = "alerts:read"
	PermReportsRead    Permission = "reports:read"
	PermAuditRead      Permission = "audit:read"
	PermUsersManage    Permission = "users:manage"
)

// Role defines a named set of capabilities.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleSeller  Role = "seller"
	RoleViewer  Role = "viewer"
)

// roleGrants is the permission lookup table. The admin role is not
// listed: it bypasses checks entirely (see AccessScope.HasPermission).
var roleGrants = map[Role][]Permission{
	RoleManager: {
		PermProductsRead, PermProductsWrite,
		PermClientsRead, PermClientsWrite,
		PermPurchasesRead, PermPurchasesWrite, PermPurchasesVoid,
		PermSalesRead, PermSalesWrite, PermSalesVoid,
		PermStockRead, PermAlertsRead, PermReportsRead, PermAuditRead,
	},
	RoleSeller: {
		PermProductsRead,
		PermClientsRead, PermClientsWrite,
		PermSalesRead, PermSalesWrite,
		PermStockRead, PermAlertsRead,
	},
	RoleViewer: {
		PermProductsRead, PermClientsRead,
		PermPurchasesRead, PermSalesRead,
		PermStockRead, PermAlertsRead, PermReportsRead,
	},
}

// KnownRoles lists the assignable roles.
func KnownRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleSeller, RoleViewer}
}

// IsValidRole reports whether the code names a known role.
func IsValidRole(code string) bool {
	switch Role(code) {
	case RoleAdmin, RoleManager, RoleSeller, RoleViewer:
		return true
	}
	return false
}

// RolesGrant reports whether any of the roles grants the capability.
func RolesGrant(roles []string, perm Permission) bool {
	for _, r := range roles {
		if Role(r) == RoleAdmin {
			return true
		}
		for _, p := range roleGrants[Role(r)] {
			if p == perm {
				return true
			}
		}
	}
	return false
}

// CapabilitiesFor resolves the full capability set for a role list.
// Used when issuing tokens so clients can adapt their UI.
func CapabilitiesFor(roles []string) []Permission {
	seen := make(map[Permission]bool)
	var result []Permission
	for _, r := range roles {
		for _, p := range roleGrants[Role(r)] {
			if !seen[p] {
				seen[p] = true
				result = append(result, p)
			}
		}
	}
	return result
}
