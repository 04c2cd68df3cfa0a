package crm

// TemplateUserKey is the view context key the shell stores the user under
var TemplateUserKey = "current_user"

// TemplateHelpers returns helper functions for the shell's view engine. The
// helpers close over the session store so templates always reflect the
// current session.
//
// In templates:
//
//	{% if is_authenticated() %}
//	{% if is_admin() %}
//	{% if can("ventas", "crear") %}
func TemplateHelpers(store *SessionStore) map[string]any {
	return map[string]any{
		"is_authenticated": func() bool {
			_, ok := store.CurrentUser()
			return ok
		},
		"is_admin":       store.IsAdmin,
		"is_super_admin": store.IsSuperAdmin,
		"can":            store.HasPermission,
		"user_name": func() string {
			if user, ok := store.CurrentUser(); ok {
				return user.Name
			}
			return ""
		},
		"user_role": func() string {
			if user, ok := store.CurrentUser(); ok {
				return user.RoleName
			}
			return ""
		},

		// Role constants for easy template access
		"roles": map[string]string{
			"super_admin": RoleSuperAdmin,
			"admin_rrhh":  RoleAdminRRHH,
			"admin":       RoleAdmin,
			"employee":    RoleEmployee,
		},
	}
}
