package crm

import (
	"context"
	"fmt"
)

// Logger is the minimal logging surface the package needs
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetIdentityPath() string
	GetLoginPath() string
	GetLogoutPath() string
	GetChangePasswordPath() string
	GetLoginRoute() string
	GetChangePasswordRoute() string
	GetAdminLandingRoute() string
	GetEmployeeLandingRoute() string
}

// TokenStore persists the bearer token between page loads. Implementations
// must tolerate Clear being called when no token is stored.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// LoginPayload is what the login endpoint consumes
type LoginPayload interface {
	GetIdentifier() string
	GetPassword() string
}

// Identity is the read-only view of the authenticated user that consumers
// (navigation shell, guard, pages) query against.
type Identity interface {
	GetID() string
	DisplayName() string
	Role() string
	ForcePasswordChange() bool
	Can(module, action string) bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CRM "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] CRM "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CRM "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CRM "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
