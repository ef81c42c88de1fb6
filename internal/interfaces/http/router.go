package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Lecheria-api/internal/application/auth"
	"github.com/jhoicas/Lecheria-api/internal/application/collection"
	"github.com/jhoicas/Lecheria-api/internal/domain/entity"
	"github.com/jhoicas/Lecheria-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	EntryUC   *collection.EntryUseCase
	SummaryUC *collection.SummaryUseCase
	ExportUC  *collection.ExportUseCase
	JWTSecret string
	Logger    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Logger)
	api := app.Group("/api")
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	// Rutas heredadas del cliente móvil
	app.Post("/signup", authHandler.Signup)
	app.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	authMW := AuthMiddleware(deps.JWTSecret)
	milkHandler := NewMilkHandler(deps.EntryUC, deps.SummaryUC, deps.ExportUC, deps.Logger)

	collectorOnly := RequireRole(entity.RoleCollector, entity.RoleAdmin)
	accountAccess := RequireAccountAccess("account_no")

	api.Post("/milk-entry", authMW, collectorOnly, milkHandler.CreateEntry)
	api.Get("/milk-summary/:account_no", authMW, accountAccess, milkHandler.Summary)
	api.Get("/milk-summary/:account_no/export", authMW, accountAccess, milkHandler.Export)

	// Rutas heredadas del cliente móvil, mismas reglas de acceso
	app.Post("/milk-entry", authMW, collectorOnly, milkHandler.CreateEntry)
	app.Get("/milk-summary/:account_no", authMW, accountAccess, milkHandler.Summary)
}
