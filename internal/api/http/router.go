package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gis-site-service/internal/api/http/handlers"
	"github.com/spec-kit/gis-site-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Contact        *handlers.ContactHandler
	Messages       *handlers.MessagesHandler
	EmailConfig    *handlers.EmailConfigHandler
	AuthMiddleware *auth.AuthMiddleware
	// SubmitLimit guards the public contact form; nil disables it.
	SubmitLimit fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	admin := func(h fiber.Handler) []fiber.Handler {
		return []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAdmin(), h}
	}

	authGroup := app.Group("/auth/admin")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", admin(cfg.Auth.Me)...)
	authGroup.Put("/password", admin(cfg.Auth.ChangePassword)...)

	contact := app.Group("/contact")

	// public
	contact.Get("/info", cfg.Contact.GetInfo)
	contact.Get("/departments", cfg.AuthMiddleware.Optional, cfg.Contact.ListDepartments)
	contact.Get("/social", cfg.AuthMiddleware.Optional, cfg.Contact.ListSocialLinks)
	submit := []fiber.Handler{}
	if cfg.SubmitLimit != nil {
		submit = append(submit, cfg.SubmitLimit)
	}
	contact.Post("/message", append(submit, cfg.Messages.Submit)...)

	// admin only; guarded per route so unknown /contact paths stay 404
	contact.Put("/info", admin(cfg.Contact.UpdateInfo)...)

	contact.Post("/departments", admin(cfg.Contact.CreateDepartment)...)
	contact.Get("/departments/:id", admin(cfg.Contact.GetDepartment)...)
	contact.Put("/departments/:id", admin(cfg.Contact.UpdateDepartment)...)
	contact.Delete("/departments/:id", admin(cfg.Contact.DeleteDepartment)...)

	contact.Post("/social", admin(cfg.Contact.CreateSocialLink)...)
	contact.Get("/social/:id", admin(cfg.Contact.GetSocialLink)...)
	contact.Put("/social/:id", admin(cfg.Contact.UpdateSocialLink)...)
	contact.Delete("/social/:id", admin(cfg.Contact.DeleteSocialLink)...)

	contact.Get("/messages", admin(cfg.Messages.List)...)
	contact.Get("/messages/stats", admin(cfg.Messages.Stats)...)
	contact.Get("/messages/:id", admin(cfg.Messages.Get)...)
	contact.Put("/messages/:id/status", admin(cfg.Messages.UpdateStatus)...)
	contact.Post("/messages/:id/reply", admin(cfg.Messages.Reply)...)
	contact.Delete("/messages/:id", admin(cfg.Messages.Delete)...)

	contact.Get("/email-config", admin(cfg.EmailConfig.Get)...)
	contact.Get("/email-config/all", admin(cfg.EmailConfig.List)...)
	contact.Put("/email-config", admin(cfg.EmailConfig.Save)...)
	contact.Delete("/email-config", admin(cfg.EmailConfig.Delete)...)
	contact.Post("/email-config/cc", admin(cfg.EmailConfig.AddCC)...)
	contact.Delete("/email-config/cc/:email", admin(cfg.EmailConfig.RemoveCC)...)
}
