package crm

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	"github.com/goliatone/go-router"
)

// NewViewEngine builds the shell's django view engine rooted at dir, with
// the session-aware template helpers pre-registered.
func NewViewEngine(dir string, store *SessionStore) *django.Engine {
	engine := django.New(dir, ".html")

	for name, fn := range TemplateHelpers(store) {
		engine.AddFunc(name, fn)
	}

	return engine
}

// NewShellServer builds the fiber-backed router the shell mounts its routes
// on. The view engine is optional; pass nil for API-only shells.
func NewShellServer(engine *django.Engine) router.Server[*fiber.App] {
	return router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		cfg := fiber.Config{
			UnescapePath:      true,
			StrictRouting:     false,
			PassLocalsToViews: true,
		}

		if engine != nil {
			cfg.Views = engine
		}

		return router.DefaultFiberOptions(fiber.New(cfg))
	})
}
