package crm

import (
	"github.com/goliatone/go-router"
)

// ShellGuard adapts a Guard into the server-rendered shell's routing layer.
// It evaluates the guard on every request to a protected route and turns the
// decision into a response: a neutral placeholder while the session is still
// bootstrapping, a redirect, or the guarded handler itself with the user
// stashed in the request context.
type ShellGuard struct {
	guard  *Guard
	Logger Logger
}

// NewShellGuard wraps guard for router consumption
func NewShellGuard(guard *Guard) *ShellGuard {
	if guard == nil {
		panic("Missing Guard in shell guard...")
	}
	return &ShellGuard{guard: guard, Logger: defLogger{}}
}

// Middleware returns the route middleware enforcing the guard
func (s *ShellGuard) Middleware() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			decision := s.guard.Evaluate(ctx.Path())

			switch decision.Action {
			case GuardWait:
				// Session bootstrap still in flight. Never redirect off a
				// half-loaded session; answer with a neutral placeholder.
				return ctx.Status(router.StatusOK).SendString("loading")

			case GuardRedirect:
				s.Logger.Debug("guard redirect %s -> %s", ctx.Path(), decision.Target)
				return ctx.Redirect(decision.Target, router.StatusSeeOther)

			default:
				if user, ok := s.guard.store.CurrentUser(); ok {
					ctx.SetContext(WithContext(ctx.Context(), user))
					// PassLocalsToViews exposes the user to templates
					ctx.Locals(TemplateUserKey, user)
				}
				return hf(ctx)
			}
		}
	}
}

// ProtectedRoute builds a one-off middleware with its own role allow-list,
// leaving the receiver's guard untouched. Handy when a single shell mounts
// admin-only and any-role routes off the same session store.
func (s *ShellGuard) ProtectedRoute(roles ...UserRole) router.MiddlewareFunc {
	scoped := NewGuard(s.guard.store, s.guard.cfg, WithRequiredRoles(roles...))
	return NewShellGuard(scoped).Middleware()
}
