package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pokewiki/internal/api/http/handlers"
	"github.com/spec-kit/pokewiki/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Account        *handlers.AccountHandler
	Pokedex        *handlers.PokedexHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	account := app.Group("/account")
	account.Put("/profile", cfg.AuthMiddleware.Handle, cfg.Account.UpdateProfile)
	account.Put("/password", cfg.Account.UpdatePassword)

	app.Get("/pokedex/pokemon/:name", cfg.Pokedex.Pokemon)
}
