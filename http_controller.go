package crm

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// LoginRequest payload
type LoginRequest struct {
	Identifier string `form:"identifier" json:"identifier"`
	Password   string `form:"password" json:"password"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Identifier
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

type ShellControllerRoutes struct {
	Login          string
	Logout         string
	ChangePassword string
}

type ShellControllerViews struct {
	Login          string
	ChangePassword string
}

// ShellController serves the shell's own pages: login, logout and the forced
// password change. Every other page is a guarded view over backend data.
type ShellController struct {
	Debug          bool
	Logger         Logger
	Session        *SessionStore
	PasswordChange *ChangePasswordHandler
	Config         Config
	Routes         *ShellControllerRoutes
	Views          *ShellControllerViews
}

type ShellControllerOption func(*ShellController) *ShellController

func WithControllerLogger(logger Logger) ShellControllerOption {
	return func(c *ShellController) *ShellController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerDebug(debug bool) ShellControllerOption {
	return func(c *ShellController) *ShellController {
		c.Debug = debug
		return c
	}
}

func NewShellController(session *SessionStore, handler *ChangePasswordHandler, cfg Config, opts ...ShellControllerOption) *ShellController {
	c := &ShellController{
		Logger:         defLogger{},
		Session:        session,
		PasswordChange: handler,
		Config:         cfg,
		Routes: &ShellControllerRoutes{
			Login:          cfg.GetLoginRoute(),
			Logout:         "/logout",
			ChangePassword: cfg.GetChangePasswordRoute(),
		},
		Views: &ShellControllerViews{
			Login:          "login",
			ChangePassword: "change_password",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Session == nil {
		panic("Missing SessionStore in shell controller...")
	}

	if c.PasswordChange == nil {
		panic("Missing ChangePasswordHandler in shell controller...")
	}

	return c
}

// RegisterShellRoutes mounts the controller on a router
func RegisterShellRoutes[T any](app router.Router[T], controller *ShellController) {
	app.Get(controller.Routes.Login, controller.LoginShow).SetName("sign-in.get")
	app.Post(controller.Routes.Login, controller.LoginPost).SetName("sign-in.post")
	app.Get(controller.Routes.Logout, controller.LogOut).SetName("sign-out.get")
	app.Get(controller.Routes.ChangePassword, controller.ChangePasswordShow).SetName("pwd-change.get")
	app.Post(controller.Routes.ChangePassword, controller.ChangePasswordPost).SetName("pwd-change.post")
}

func (a *ShellController) LoginShow(ctx router.Context) error {
	return ctx.Render(a.Views.Login, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

func (a *ShellController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)
	errs := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("Login bind error: %s", err)
		return ctx.Render(a.Views.Login, router.ViewContext{
			"errors": map[string]string{"authentication": "Invalid request"},
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": err.Error(),
		})
	}

	if a.Debug {
		fmt.Println("======= SHELL LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("==========================")
	}

	result, err := a.Session.Login(ctx.Context(), payload)
	if err != nil {
		// Login failures are the one path surfaced to the user
		errs["authentication"] = ServerMessageFromError(err)
		return ctx.Render(a.Views.Login, router.ViewContext{
			"errors": errs,
			"record": payload,
		})
	}

	redirect := result.RedirectTo
	if redirect == "" {
		redirect = LandingRoute(result.RoleName, a.Config)
	}

	return ctx.Redirect(redirect, router.StatusSeeOther)
}

func (a *ShellController) LogOut(ctx router.Context) error {
	a.Session.Logout(ctx.Context())
	return ctx.Redirect(a.Routes.Login, router.StatusTemporaryRedirect)
}

func (a *ShellController) ChangePasswordShow(ctx router.Context) error {
	return ctx.Render(a.Views.ChangePassword, router.ViewContext{
		"errors": nil,
	})
}

func (a *ShellController) ChangePasswordPost(ctx router.Context) error {
	msg := ChangePasswordMessage{}

	if err := ctx.Bind(&msg); err != nil {
		a.Logger.Error("Change password bind error: %s", err)
		return ctx.Render(a.Views.ChangePassword, router.ViewContext{
			"errors": map[string]string{"request": "Invalid request"},
		})
	}

	if err := a.PasswordChange.Execute(ctx.Context(), msg); err != nil {
		return ctx.Render(a.Views.ChangePassword, router.ViewContext{
			"errors": map[string]string{"change": ServerMessageFromError(err)},
		})
	}

	user, _ := a.Session.CurrentUser()
	role := ""
	if user != nil {
		role = user.RoleName
	}

	return ctx.Redirect(LandingRoute(role, a.Config), router.StatusSeeOther)
}
