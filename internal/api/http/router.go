package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/launch-watch/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Leads   *handlers.LeadHandler
	Metrics fiber.Handler
}

// RegisterRoutes wires the append endpoint, probes and metrics.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	health := app.Group("/health")
	health.Get("/live", cfg.Health.Live)
	health.Get("/ready", cfg.Health.Ready)

	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	leads := app.Group("/leads")
	leads.Get("", cfg.Leads.Probe)
	leads.Post("", cfg.Leads.Append)
}
