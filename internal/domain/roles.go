package domain

// UserRoleType identifies what a caller is allowed to do
type UserRoleType string

const (
	// RoleAdmin can manage snapshots: delete, purge, trigger syncs
	RoleAdmin UserRoleType = "admin"
	// RoleAgent is a travel consultant reading cotations
	RoleAgent UserRoleType = "agent"
	// RoleEngine is the pricing engine service identity (API key callers)
	RoleEngine UserRoleType = "engine"
)

// IsValidRole reports whether the string names a known role
func IsValidRole(role string) bool {
	switch UserRoleType(role) {
	case RoleAdmin, RoleAgent, RoleEngine:
		return true
	}
	return false
}
