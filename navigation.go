package crm

// NavEntry is one entry in the shell's navigation. An entry can be gated by
// role tier, by an exact permission grant, or both.
type NavEntry struct {
	Title      string
	Route      string
	Icon       string
	AdminOnly  bool
	SuperAdmin bool
	Module     string
	Action     string
}

// visible reports whether the session may see this entry
func (e NavEntry) visible(store *SessionStore) bool {
	if _, ok := store.CurrentUser(); !ok {
		return false
	}

	if e.SuperAdmin && !store.IsSuperAdmin() {
		return false
	}

	if e.AdminOnly && !store.IsAdmin() {
		return false
	}

	if e.Module != "" && !store.HasPermission(e.Module, e.Action) {
		return false
	}

	return true
}

// Navigation filters a fixed entry set through the session store's query
// interface. It holds no state of its own; visibility is recomputed per call
// so a login or logout is reflected on the next render.
type Navigation struct {
	store   *SessionStore
	entries []NavEntry
}

// NewNavigation builds a navigation over the given entries. With no entries
// the stock admin/employee layout applies.
func NewNavigation(store *SessionStore, entries ...NavEntry) *Navigation {
	if len(entries) == 0 {
		entries = DefaultNavEntries()
	}
	return &Navigation{store: store, entries: entries}
}

// VisibleEntries returns the entries the current session may see, in order
func (n *Navigation) VisibleEntries() []NavEntry {
	visible := make([]NavEntry, 0, len(n.entries))
	for _, e := range n.entries {
		if e.visible(n.store) {
			visible = append(visible, e)
		}
	}
	return visible
}

// DefaultNavEntries is the stock sidebar layout of the admin shell
func DefaultNavEntries() []NavEntry {
	return []NavEntry{
		{Title: "Dashboard", Route: "/admin/dashboard", Icon: "home", AdminOnly: true},
		{Title: "Empleados", Route: "/admin/employees", Icon: "users", AdminOnly: true},
		{Title: "Usuarios", Route: "/admin/users", Icon: "user-cog", SuperAdmin: true},
		{Title: "Permisos", Route: "/admin/permissions", Icon: "shield", SuperAdmin: true},
		{Title: "Ventas", Route: "/admin/ventas", Icon: "trending-up", AdminOnly: true, Module: "ventas", Action: "ver"},
		{Title: "Finanzas", Route: "/admin/finanzas", Icon: "dollar-sign", AdminOnly: true, Module: "finanzas", Action: "ver"},
		{Title: "Proyectos", Route: "/admin/proyectos", Icon: "briefcase", AdminOnly: true},
		{Title: "Calendario", Route: "/admin/calendario", Icon: "calendar", AdminOnly: true},
		{Title: "Asistencia", Route: "/admin/asistencia", Icon: "clock", AdminOnly: true},
		{Title: "Auditoría", Route: "/admin/audit", Icon: "list", SuperAdmin: true},
		{Title: "Mi Dashboard", Route: "/employee/dashboard", Icon: "home"},
	}
}
