package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/http/handlers"
	"github.com/spec-kit/license-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Licenses       *handlers.LicensesHandler
	Admin          *handlers.AdminHandler
	Releases       *handlers.ReleasesHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Accounts.Register)
	authGroup.Post("/login", cfg.Accounts.Login)

	licenseGroup := app.Group("/license")
	licenseGroup.Get("/offline-policy", cfg.Licenses.OfflinePolicy)
	licenseGroup.Post("/validate", cfg.AuthMiddleware.Handle, auth.RequireAccount(), cfg.Licenses.Validate)

	adminGroup := app.Group("/admin")
	adminGroup.Post("/login", cfg.Admin.Login)

	adminProtected := adminGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	adminProtected.Get("/users", cfg.Admin.ListAccounts)
	adminProtected.Patch("/users/:id", cfg.Admin.SetAccountActive)
	adminProtected.Post("/users/:id/license", cfg.Admin.AssignLicense)
	adminProtected.Delete("/users/:id/license", cfg.Admin.RevokeLicense)
	adminProtected.Post("/users/:id/license/add-time", cfg.Admin.AddLicenseTime)
	adminProtected.Get("/version", cfg.Admin.GetRelease)
	adminProtected.Put("/version", cfg.Admin.UpdateRelease)

	app.Get("/version", cfg.Releases.Version)
	app.Get("/version/config", cfg.Releases.Config)

	app.Get("/stats/user-count", cfg.Stats.UserCount)
}
