package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"fruitstand/internal/config"
	"fruitstand/internal/http/handlers"
	"fruitstand/internal/http/middleware"
	applog "fruitstand/internal/log"
	"fruitstand/web"
)

// BodyLimit caps request bodies at 1 MiB.
const BodyLimit = 1 << 20

// New builds the Fiber app: middleware, routes, static assets, then the 404
// fallback. Middleware must stay ahead of the routes for method override to
// work.
func New(cfg config.Config, deps *handlers.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 web.Engine(),
		ErrorHandler:          handlers.ErrorHandler,
		BodyLimit:             BodyLimit,
		DisableStartupMessage: true,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${method} ${path} ${status} ${bytesSent} - ${latency}\n",
		Output: applog.Writer(),
	}))
	app.Use(helmet.New())
	app.Use(middleware.MethodOverride())

	// ---------- App handlers ----------
	deps.Register(app)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// ---------- Static assets & 404 ----------
	app.Use(filesystem.New(filesystem.Config{Root: web.Public(cfg.StaticDir)}))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Title": "Not Found", "Message": "Page not found"}, web.Layout)
	})
	return app
}
