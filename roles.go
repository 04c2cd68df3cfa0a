package crm

// UserRole is the user's role name as the backend reports it
type UserRole = string

const (
	// RoleSuperAdmin has every administrative capability
	RoleSuperAdmin UserRole = "super_admin"
	// RoleAdminRRHH is the HR administration tier
	RoleAdminRRHH UserRole = "admin_rrhh"
	// RoleAdmin is the generic administration tier
	RoleAdmin UserRole = "admin"
	// RoleEmployee is the default non administrative role
	RoleEmployee UserRole = "employee"
	// RoleInstructor is a non administrative role used by training deployments
	RoleInstructor UserRole = "instructor"
)

// adminRoles is the single canonical admin allow-list. Every admin check in
// the package goes through this table; do not inline copies of it.
var adminRoles = map[UserRole]bool{
	RoleSuperAdmin: true,
	RoleAdminRRHH:  true,
	RoleAdmin:      true,
}

// AdminRoles returns the administrative role names in tier order
func AdminRoles() []UserRole {
	return []UserRole{RoleSuperAdmin, RoleAdminRRHH, RoleAdmin}
}

// IsAdminRole reports whether role belongs to the administrative tier
func IsAdminRole(role UserRole) bool {
	return adminRoles[role]
}

// LandingRoute returns the dashboard a role should land on when it cannot
// reach the page it asked for. Administrative roles land on the admin
// dashboard, everyone else on the employee dashboard.
func LandingRoute(role UserRole, cfg Config) string {
	if IsAdminRole(role) {
		return cfg.GetAdminLandingRoute()
	}
	return cfg.GetEmployeeLandingRoute()
}
