package crm

import "os"

const (
	// EnvBaseURL overrides the backend origin
	EnvBaseURL = "CRM_API_URL"

	defaultBaseURL = "http://localhost:3000"

	defaultIdentityPath = "/api/auth/me"
	defaultLoginPath    = "/api/auth/login"
	defaultLogoutPath   = "/api/auth/logout"
	defaultPasswordPath = "/api/auth/change-password"

	defaultLoginRoute          = "/login"
	defaultChangePasswordRoute = "/change-password"
	defaultAdminLandingRoute   = "/admin/dashboard"
	defaultEmployeeLanding     = "/employee/dashboard"
)

// BaseConfig is the default Config implementation. The zero value falls back
// to the development origin and the backend's stock route layout.
type BaseConfig struct {
	BaseURL             string
	IdentityPath        string
	LoginPath           string
	LogoutPath          string
	ChangePasswordPath  string
	LoginRoute          string
	ChangePasswordRoute string
	AdminLandingRoute   string
	EmployeeLanding     string
}

var _ Config = (*BaseConfig)(nil)

// NewConfig resolves the backend origin once: the environment override wins,
// otherwise the local development default applies.
func NewConfig() *BaseConfig {
	cfg := &BaseConfig{}
	if url := os.Getenv(EnvBaseURL); url != "" {
		cfg.BaseURL = url
	}
	return cfg
}

func (c *BaseConfig) GetBaseURL() string {
	return defString(c.BaseURL, defaultBaseURL)
}

func (c *BaseConfig) GetIdentityPath() string {
	return defString(c.IdentityPath, defaultIdentityPath)
}

func (c *BaseConfig) GetLoginPath() string {
	return defString(c.LoginPath, defaultLoginPath)
}

func (c *BaseConfig) GetLogoutPath() string {
	return defString(c.LogoutPath, defaultLogoutPath)
}

func (c *BaseConfig) GetChangePasswordPath() string {
	return defString(c.ChangePasswordPath, defaultPasswordPath)
}

func (c *BaseConfig) GetLoginRoute() string {
	return defString(c.LoginRoute, defaultLoginRoute)
}

func (c *BaseConfig) GetChangePasswordRoute() string {
	return defString(c.ChangePasswordRoute, defaultChangePasswordRoute)
}

func (c *BaseConfig) GetAdminLandingRoute() string {
	return defString(c.AdminLandingRoute, defaultAdminLandingRoute)
}

func (c *BaseConfig) GetEmployeeLandingRoute() string {
	return defString(c.EmployeeLanding, defaultEmployeeLanding)
}

func defString(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
