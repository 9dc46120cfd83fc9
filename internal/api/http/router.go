package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-portal/internal/api/http/handlers"
	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Chat              *handlers.ChatHandler
	Analyst           *handlers.AnalystHandler
	Admin             *handlers.AdminHandler
	SessionMiddleware *session.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/google/start", cfg.Auth.StartLogin)
	authGroup.Post("/google/login", cfg.Auth.CompleteLogin)

	portal := app.Group("/portal", cfg.SessionMiddleware.Handle)
	portal.Get("/home", cfg.Auth.Home)

	chat := app.Group("/chat", cfg.SessionMiddleware.Handle, session.RequireRole(domain.RoleColaborador))
	chat.Post("/", cfg.Chat.Submit)
	chat.Get("/history", cfg.Chat.History)
	chat.Post("/reset", cfg.Chat.Reset)

	analyst := app.Group("/analyst", cfg.SessionMiddleware.Handle, session.RequireRole(domain.RoleAnalista))
	analyst.Get("/conversaciones", cfg.Analyst.ListTickets)
	analyst.Get("/conversaciones/:id", cfg.Analyst.GetTicket)
	analyst.Put("/tickets/:id/status", cfg.Analyst.UpdateStatus)
	analyst.Put("/tickets/:id/derivar", cfg.Analyst.Escalate)

	admin := app.Group("/admin", cfg.SessionMiddleware.Handle, session.RequireRole(domain.RoleAdmin))
	admin.Get("/servicios", cfg.Admin.ListServicios)
	admin.Post("/servicios", cfg.Admin.CreateServicio)
	admin.Put("/servicios/:id", cfg.Admin.UpdateServicio)
	admin.Delete("/servicios/:id", cfg.Admin.DeleteServicio)

	admin.Get("/clientes", cfg.Admin.ListClientes)
	admin.Get("/clientes/:id", cfg.Admin.GetCliente)
	admin.Post("/clientes", cfg.Admin.CreateCliente)
	admin.Put("/clientes/:id", cfg.Admin.UpdateCliente)
	admin.Delete("/clientes/:id", cfg.Admin.DeleteCliente)
}
