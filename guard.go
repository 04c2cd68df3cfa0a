package crm

// GuardAction is what the guard decided to do with a navigation
type GuardAction int

const (
	// GuardWait means the session is still bootstrapping; render a neutral
	// placeholder, do not redirect.
	GuardWait GuardAction = iota
	// GuardAllow means the guarded content may render
	GuardAllow
	// GuardRedirect means navigation must be sent to Decision.Target
	GuardRedirect
)

func (a GuardAction) String() string {
	switch a {
	case GuardWait:
		return "wait"
	case GuardAllow:
		return "allow"
	case GuardRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one guard evaluation
type Decision struct {
	Action GuardAction
	Target string
}

// Guard gates navigation targets against the session store. Evaluation is a
// strict priority chain: loading beats unauthenticated beats forced password
// change beats role mismatch beats success. Reordering these checks changes
// observable behavior; a must-change-password admin, for example, must never
// reach an admin page before changing their password.
type Guard struct {
	store *SessionStore
	cfg   Config
	roles []UserRole
}

// GuardOption customizes guard construction
type GuardOption func(*Guard)

// WithRequiredRoles restricts the guarded target to the given role names.
// Without it the guard only enforces authentication and the password gate.
func WithRequiredRoles(roles ...UserRole) GuardOption {
	return func(g *Guard) {
		g.roles = roles
	}
}

// NewGuard builds a guard bound to the store's config routes
func NewGuard(store *SessionStore, cfg Config, opts ...GuardOption) *Guard {
	if store == nil {
		panic("Missing SessionStore in route guard...")
	}

	g := &Guard{store: store, cfg: cfg}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Evaluate decides what to do with a navigation to path. It is a pure read
// over the store state and never fails; a role mismatch is a redirect to the
// role's landing page, not an error.
func (g *Guard) Evaluate(path string) Decision {
	if g.store.Loading() {
		return Decision{Action: GuardWait}
	}

	user, ok := g.store.CurrentUser()
	if !ok {
		return Decision{Action: GuardRedirect, Target: g.cfg.GetLoginRoute()}
	}

	if user.MustChangePassword && path != g.cfg.GetChangePasswordRoute() {
		return Decision{Action: GuardRedirect, Target: g.cfg.GetChangePasswordRoute()}
	}

	if len(g.roles) > 0 && !g.roleAllowed(user.RoleName) {
		return Decision{Action: GuardRedirect, Target: LandingRoute(user.RoleName, g.cfg)}
	}

	return Decision{Action: GuardAllow}
}

func (g *Guard) roleAllowed(role UserRole) bool {
	for _, allowed := range g.roles {
		if allowed == role {
			return true
		}
	}
	return false
}
